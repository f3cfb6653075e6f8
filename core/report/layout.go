// Package report renders one student's record and images into a fixed-layout
// single-page PDF for download.
package report

import (
	"strings"

	"github.com/jkuniv/studentportal/core/student"
)

// Layout describes the report page geometry. All coordinates are in points
// with the origin at the top-left of a letter page; everything is computed
// from a small set of base constants so the layout is testable independent
// of the rendering backend.
type Layout struct {
	PageWidth  float64
	PageHeight float64

	TitleCenterX   float64
	TitleBaselineY float64
	TitleSize      float64

	LogoX    float64
	LogoY    float64
	LogoSize float64

	// photo/signature boxes, side by side
	BoxTop     float64
	BoxWidth   float64
	BoxHeight  float64
	BoxLeftX   float64
	BoxRightX  float64
	BoxPadding float64
	// baseline of the "Photo"/"Signature" captions under the boxes
	BoxLabelBaselineY float64
	// baseline of the alternate text shown inside an empty box
	AltTextBaselineY float64
	AltTextInset     float64

	TableX         float64
	TableTop       float64
	RowHeight      float64
	LabelColWidth  float64
	ValueColWidth  float64
	CellInset      float64
	LabelSize      float64
	ValueSize      float64
	ValueLineStep  float64
	WrapChars      int
	TruncateChars  int
	ClipMargin     float64
}

// DefaultLayout carries the portal's fixed report geometry.
var DefaultLayout = newDefaultLayout()

func newDefaultLayout() Layout {
	const (
		pageW, pageH = 612.0, 792.0
		boxW, boxH   = 220.0, 140.0
		leftX, gap   = 40.0, 20.0
		boxTopOffset = 92.0 // below the title block
		rowH         = 26.0
	)
	l := Layout{
		PageWidth:  pageW,
		PageHeight: pageH,

		TitleCenterX:   300,
		TitleBaselineY: 42,
		TitleSize:      16,

		LogoX:    leftX,
		LogoY:    12,
		LogoSize: 60,

		BoxTop:     boxTopOffset,
		BoxWidth:   boxW,
		BoxHeight:  boxH,
		BoxLeftX:   leftX,
		BoxRightX:  leftX + boxW + gap,
		BoxPadding: 4,

		TableX:        leftX,
		RowHeight:     rowH,
		LabelColWidth: 140,
		ValueColWidth: 360,
		CellInset:     6,
		LabelSize:     10,
		ValueSize:     10,
		ValueLineStep: 12,
		WrapChars:     55,
		TruncateChars: 40,
		ClipMargin:    10,
	}
	l.BoxLabelBaselineY = l.BoxTop + boxH + 12
	l.AltTextBaselineY = l.BoxTop + boxH/2
	l.AltTextInset = 6
	l.TableTop = l.BoxTop + boxH + 40
	return l
}

func (l Layout) TableWidth() float64  { return l.LabelColWidth + l.ValueColWidth }
func (l Layout) TableBottom() float64 { return l.TableTop + float64(len(fields))*l.RowHeight }

// fields is the fixed, ordered label/value mapping rendered in the table.
type fieldRow struct {
	Label string
	Value func(student.Student) string
}

var fields = []fieldRow{
	{"Name", func(s student.Student) string { return s.Name }},
	{"Father", func(s student.Student) string { return s.FatherName }},
	{"Mother", func(s student.Student) string { return s.MotherName }},
	{"Gender", func(s student.Student) string { return s.Gender }},
	{"Address", func(s student.Student) string { return s.Address }},
	{"City", func(s student.Student) string { return s.City }},
	{"State", func(s student.Student) string { return s.State }},
	{"Phone", func(s student.Student) string { return s.Phone }},
	{"Alternative number", func(s student.Student) string { return s.AltPhone }},
	{"Enroll", func(s student.Student) string { return s.EnrollmentNo }},
	{"Degree", func(s student.Student) string { return s.Degree }},
	{"Branch", func(s student.Student) string { return s.Branch }},
	{"Sem", func(s student.Student) string { return s.Semester }},
	{"Year", func(s student.Student) string { return s.Year }},
	{"10th Marks", func(s student.Student) string { return s.Marks10th }},
	{"12th Marks", func(s student.Student) string { return s.Marks12th }},
}

// WrapWords word-wraps value greedily at maxChars characters per line.
// A word longer than maxChars gets a line of its own rather than being
// split; an overlong first word is preceded by an empty line. An empty
// value yields a single empty line.
func WrapWords(value string, maxChars int) []string {
	if value == "" {
		return []string{""}
	}
	var lines []string
	var current string
	for _, w := range strings.Fields(value) {
		if len(current)+len(w)+1 <= maxChars {
			current = strings.TrimSpace(current + " " + w)
		} else {
			lines = append(lines, current)
			current = w
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// Truncate clips line to at most n characters and appends an ellipsis.
func Truncate(line string, n int) string {
	if len(line) > n {
		line = line[:n]
	}
	return line + "..."
}

// FitInBox uniformly scales an image of (w, h) to fit inside (maxW, maxH),
// never upscaling past 1.0x.
func FitInBox(w, h, maxW, maxH float64) (float64, float64) {
	ratio := maxW / w
	if r := maxH / h; r < ratio {
		ratio = r
	}
	if ratio > 1 {
		ratio = 1
	}
	return w * ratio, h * ratio
}
