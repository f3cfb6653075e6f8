package echoapi

import (
	"bytes"
	"io/ioutil"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jkuniv/studentportal/core"
	"github.com/jkuniv/studentportal/core/student"
)

type studentApi struct {
	opts *Options
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := studentApi{opts: opts}

	sg := g.Group("/students")

	// un-authed: self-service registration
	sg.POST("", api.register)

	// authed: own record
	ag := sg.Group("", jwt)
	ag.GET("/me", api.me)
	ag.GET("/me/report", api.report)

	// admin only
	ag.GET("", api.query, adminMiddleware())
	ag.GET("/export", api.export, adminMiddleware())
	ag.GET("/template", api.template, adminMiddleware())
	ag.POST("/import", api.bulkImport, adminMiddleware())
	ag.PUT("/admin-password", api.changeAdminPassword, adminMiddleware())
	ag.DELETE("/:username", api.destroy, adminMiddleware())
	ag.PUT("/:username/password", api.resetPassword, adminMiddleware())
}

// register accepts a multipart form: the NewStudent fields plus the "photo"
// and "sign" image files. The images are written to the upload area before
// the insert that references them.
func (api *studentApi) register(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.opts.Validate, api.opts.StudentSvc); err != nil {
		return err
	}

	photo, photoName, err := formImage(ctx, "photo")
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "photo", Error: "a photo upload is required"})
	}
	sign, signName, err := formImage(ctx, "sign")
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "sign", Error: "a signature upload is required"})
	}

	photoPath, err := api.opts.Uploads.SavePhoto(data.Username, photo, photoName)
	if err != nil {
		return errors.Wrap(err, "saving photo")
	}
	signPath, err := api.opts.Uploads.SaveSignature(data.Username, sign, signName)
	if err != nil {
		return errors.Wrap(err, "saving signature")
	}

	rec, err := api.opts.StudentSvc.Register(data, photoPath, signPath)
	if err != nil {
		if errors.Cause(err) == student.ErrUsernameExists {
			return core.NewValidationError(err, core.FieldError{Field: "username", Error: err.Error()})
		}
		return errors.Wrap(err, "registering student")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *studentApi) me(ctx echo.Context) error {
	rec, err := api.contextStudent(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

// report streams the student's PDF report. Missing images degrade to the
// composer's alternate text, never to an error.
func (api *studentApi) report(ctx echo.Context) error {
	rec, err := api.contextStudent(ctx)
	if err != nil {
		return err
	}

	var photo, sign []byte
	if rec.PhotoPath != "" {
		photo, _ = api.opts.Uploads.Load(rec.PhotoPath)
	}
	if rec.SignPath != "" {
		sign, _ = api.opts.Uploads.Load(rec.SignPath)
	}

	doc, err := api.opts.Composer.Compose(rec, photo, sign)
	if err != nil {
		return errors.Wrap(err, "composing report")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="student_detail.pdf"`)
	return ctx.Blob(http.StatusOK, "application/pdf", doc)
}

func (api *studentApi) query(ctx echo.Context) error {
	records, err := api.opts.StudentSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if records == nil {
		records = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *studentApi) export(ctx echo.Context) error {
	var buf bytes.Buffer
	if err := api.opts.TransferSvc.Export(&buf); err != nil {
		return errors.Wrap(err, "exporting students")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="all_students.csv"`)
	return ctx.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func (api *studentApi) template(ctx echo.Context) error {
	var buf bytes.Buffer
	if err := api.opts.TransferSvc.Template(&buf); err != nil {
		return errors.Wrap(err, "writing template")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="students_template.csv"`)
	return ctx.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func (api *studentApi) bulkImport(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "file", Error: "a CSV upload is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening upload")
	}
	defer func() { _ = f.Close() }()

	imported, rowErrs, err := api.opts.TransferSvc.Import(f)
	if err != nil {
		return err
	}
	if rowErrs == nil {
		rowErrs = []string{}
	}
	return ctx.JSON(http.StatusOK, ImportResponse{Imported: imported, Errors: rowErrs})
}

func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.opts.StudentSvc.Delete(ctx.Param("username")); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) resetPassword(ctx echo.Context) error {
	var data ResetPasswordRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResetPasswordRequest")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}
	if err := api.opts.StudentSvc.ResetPassword(ctx.Param("username"), data.Password); err != nil {
		return errors.Wrap(err, "resetting password")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "password reset"})
}

func (api *studentApi) changeAdminPassword(ctx echo.Context) error {
	var data ResetPasswordRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResetPasswordRequest")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}
	if err := api.opts.StudentSvc.ChangeAdminPassword(data.Password); err != nil {
		return errors.Wrap(err, "changing admin password")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "admin password changed"})
}

func (api *studentApi) contextStudent(ctx echo.Context) (student.Student, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return student.Student{}, err
	}
	rec, err := api.opts.StudentSvc.GetByUsername(claims.Username)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return student.Student{}, errHttpNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting context student")
	}
	return rec, nil
}

func formImage(ctx echo.Context, field string) ([]byte, string, error) {
	fh, err := ctx.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	data, err := readMultipartFile(fh)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Filename, nil
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ioutil.ReadAll(f)
}
