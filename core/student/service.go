package student

import (
	"github.com/pkg/errors"

	"github.com/jkuniv/studentportal/core"
)

var (
	// errors
	ErrNotFound       = errors.New("student not found")
	ErrUsernameExists = errors.New("a student with this username already exists")
	ErrAdminProtected = errors.New("the admin account cannot be modified this way")
)

type (
	Repository interface {
		CheckUsernameUniqueness(username string) error
		CreateStudent(s Student) error
		GetStudentByUsername(username string) (Student, error)
		GetStudentByCredentials(username, password string) (Student, error)
		// QueryAllStudents returns records in storage-native order; no sort
		// order is guaranteed.
		QueryAllStudents() ([]Student, error)
		// UpdateStudentPassword is a no-op for an absent username.
		UpdateStudentPassword(username, password string) error
		// DeleteStudentByUsername is a no-op for an absent username.
		DeleteStudentByUsername(username string) error
	}

	Service struct {
		repo Repository
		log  core.Logger
		conf *core.Config
	}
)

func NewService(repo Repository, logger core.Logger, conf *core.Config) *Service {
	return &Service{repo: repo, log: logger, conf: conf}
}

func (svc *Service) CheckUsernameUniqueness(uname string) error {
	if err := svc.repo.CheckUsernameUniqueness(uname); err != nil {
		if errors.Cause(err) == ErrUsernameExists {
			return core.NewValidationError(err, core.FieldError{Field: "username", Error: err.Error()})
		}
		return err
	}
	return nil
}

// BootstrapAdmin seeds the well-known admin record if it is absent.
// Bootstrap must never prevent startup: every failure is logged and
// deliberately ignored.
func (svc *Service) BootstrapAdmin() {
	_, err := svc.repo.GetStudentByUsername(AdminUsername)
	if err == nil {
		return
	}
	if errors.Cause(err) != ErrNotFound {
		svc.log.Warn("admin bootstrap: lookup failed", err)
		return
	}
	admin := Student{
		Username: AdminUsername,
		Password: svc.conf.AdminDefaultPassword,
		Name:     "Administrator",
		Gender:   string(GenderOther),
		Degree:   "Admin",
		Branch:   "Admin",
		Semester: "NA",
		Year:     "NA",
	}
	if err := svc.repo.CreateStudent(admin); err != nil {
		svc.log.Warn("admin bootstrap: create failed", err)
	}
}

// Register persists a validated registration. The image blobs are saved by
// the caller beforehand; only their paths are stored here. There is no
// transactional linkage between the saved blobs and the inserted row: a
// crash in between leaves an orphaned file or a dangling path (known
// limitation, see README).
func (svc *Service) Register(ns NewStudent, photoPath, signPath string) (Student, error) {
	s := ns.student(photoPath, signPath)
	if err := svc.repo.CreateStudent(s); err != nil {
		return Student{}, err
	}
	return s, nil
}

func (svc *Service) GetByUsername(uname string) (Student, error) {
	return svc.repo.GetStudentByUsername(core.CleanString(uname, true /* lower */))
}

// GetByCredentials matches on exact string equality of both fields.
// Passwords are stored and compared in clear; see the README note.
func (svc *Service) GetByCredentials(uname, pwd string) (Student, error) {
	return svc.repo.GetStudentByCredentials(core.CleanString(uname, true /* lower */), pwd)
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

// Delete removes a record. The admin account is protected; deleting an
// absent username is a no-op.
func (svc *Service) Delete(uname string) error {
	uname = core.CleanString(uname, true /* lower */)
	if uname == AdminUsername {
		return ErrAdminProtected
	}
	return svc.repo.DeleteStudentByUsername(uname)
}

// ResetPassword sets a student's password. The admin account is refused
// here; use ChangeAdminPassword for the explicit admin operation.
func (svc *Service) ResetPassword(uname, newPwd string) error {
	uname = core.CleanString(uname, true /* lower */)
	if uname == AdminUsername {
		return ErrAdminProtected
	}
	return svc.repo.UpdateStudentPassword(uname, newPwd)
}

// ChangeAdminPassword is the one sanctioned way to change the admin
// account's password.
func (svc *Service) ChangeAdminPassword(newPwd string) error {
	if !IsStrongPassword(newPwd) {
		return core.NewValidationError(nil, core.FieldError{Field: "password", Error: strongPwdText})
	}
	return svc.repo.UpdateStudentPassword(AdminUsername, newPwd)
}
