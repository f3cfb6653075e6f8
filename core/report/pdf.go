package report

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"

	"github.com/jkuniv/studentportal/core/student"
)

const (
	altPhotoText = "Photo not found"
	altSignText  = "Signature not found"
)

// Composer renders the fixed-layout student report. Missing or undecodable
// images never fail a report; they fall back to alternate text (the logo is
// simply omitted).
type Composer struct {
	Layout Layout
	Title  string
	Logo   []byte
}

func NewComposer(title string, logo []byte) *Composer {
	return &Composer{Layout: DefaultLayout, Title: title, Logo: logo}
}

// Compose produces the single-page PDF for one record. Output is
// deterministic for identical inputs.
func (c *Composer) Compose(rec student.Student, photo, sign []byte) ([]byte, error) {
	l := c.Layout
	pdf := gofpdf.New("P", "pt", "Letter", "")
	// fixed date keeps identical inputs byte-for-byte identical
	pdf.SetCreationDate(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// header
	if len(c.Logo) > 0 {
		// best effort; a bad logo is silently left out
		_ = drawImageInBox(pdf, "logo", c.Logo, l.LogoX, l.LogoY, l.LogoSize, l.LogoSize, 0)
	}
	pdf.SetFont("Helvetica", "B", l.TitleSize)
	pdf.Text(l.TitleCenterX-pdf.GetStringWidth(c.Title)/2, l.TitleBaselineY, c.Title)

	// photo & signature boxes
	pdf.Rect(l.BoxLeftX, l.BoxTop, l.BoxWidth, l.BoxHeight, "D")
	pdf.Rect(l.BoxRightX, l.BoxTop, l.BoxWidth, l.BoxHeight, "D")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(l.BoxLeftX, l.BoxLabelBaselineY, "Photo")
	pdf.Text(l.BoxRightX, l.BoxLabelBaselineY, "Signature")

	c.drawBoxedImage(pdf, "photo", photo, l.BoxLeftX, altPhotoText)
	c.drawBoxedImage(pdf, "sign", sign, l.BoxRightX, altSignText)

	// field table: borders first, then cell contents
	for i := 0; i <= len(fields); i++ {
		y := l.TableTop + float64(i)*l.RowHeight
		pdf.Line(l.TableX, y, l.TableX+l.TableWidth(), y)
	}
	for _, x := range []float64{l.TableX, l.TableX + l.LabelColWidth, l.TableX + l.TableWidth()} {
		pdf.Line(x, l.TableTop, x, l.TableBottom())
	}

	for idx, fr := range fields {
		rowTop := l.TableTop + float64(idx)*l.RowHeight
		pdf.SetFont("Helvetica", "B", l.LabelSize)
		pdf.Text(l.TableX+l.CellInset, rowTop+15, fr.Label+":")

		pdf.SetFont("Helvetica", "", l.ValueSize)
		for li, line := range WrapWords(fr.Value(rec), l.WrapChars) {
			baseline := rowTop + float64(li+1)*l.ValueLineStep - 4
			if baseline > l.TableBottom()-l.ClipMargin {
				line = Truncate(line, l.TruncateChars)
			}
			pdf.Text(l.TableX+l.LabelColWidth+l.CellInset, baseline, line)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "writing PDF")
	}
	return buf.Bytes(), nil
}

// drawBoxedImage fits img into the addressed box, or renders alt text when
// the image is absent or unusable. The draw failure is deliberately
// swallowed after the fallback.
func (c *Composer) drawBoxedImage(pdf *gofpdf.Fpdf, name string, img []byte, boxX float64, alt string) {
	l := c.Layout
	if len(img) > 0 {
		err := drawImageInBox(pdf, name, img, boxX, l.BoxTop, l.BoxWidth, l.BoxHeight, l.BoxPadding)
		if err == nil {
			return
		}
	}
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(boxX+l.AltTextInset, l.AltTextBaselineY, alt)
}

// drawImageInBox decodes img, scales it uniformly (never above 1.0x) to fit
// the box interior minus padding and centers it. The image is re-encoded as
// PNG so any stdlib-decodable upload embeds cleanly.
func drawImageInBox(pdf *gofpdf.Fpdf, name string, img []byte, boxX, boxY, boxW, boxH, padding float64) error {
	decoded, _, err := image.Decode(bytes.NewReader(img))
	if err != nil {
		return errors.Wrap(err, "decoding image")
	}
	var reenc bytes.Buffer
	if err := png.Encode(&reenc, decoded); err != nil {
		return errors.Wrap(err, "re-encoding image")
	}

	bounds := decoded.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	if w == 0 || h == 0 {
		return errors.New("empty image")
	}
	dispW, dispH := FitInBox(w, h, boxW-2*padding, boxH-2*padding)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, &reenc)
	pdf.ImageOptions(
		name,
		boxX+(boxW-dispW)/2,
		boxY+(boxH-dispH)/2,
		dispW, dispH,
		false, opts, 0, "",
	)
	if pdf.Err() {
		return fmt.Errorf("placing image %s: %v", name, pdf.Error())
	}
	return nil
}
