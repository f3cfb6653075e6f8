package report

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jkuniv/studentportal/core/student"
)

func TestWrapWords(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		maxChars int
		want     []string
	}{
		{name: "empty", value: "", maxChars: 55, want: []string{""}},
		{name: "fits", value: "12 MG Road", maxChars: 55, want: []string{"12 MG Road"}},
		{name: "wraps at word boundary", value: "one two three four", maxChars: 9, want: []string{"one two", "three", "four"}},
		{name: "long word gets its own line", value: "ab supercalifragilistic cd", maxChars: 10, want: []string{"ab", "supercalifragilistic", "cd"}},
		{name: "overlong first word keeps an empty leading line", value: "supercalifragilistic cd", maxChars: 10, want: []string{"", "supercalifragilistic", "cd"}},
		{name: "whitespace collapses", value: "  a   b  ", maxChars: 55, want: []string{"a b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapWords(tt.value, tt.maxChars))
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 4); got != "abcd..." {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("ab", 4); got != "ab..." {
		t.Errorf("Truncate() = %q", got)
	}
}

func TestFitInBox(t *testing.T) {
	tests := []struct {
		name         string
		w, h         float64
		maxW, maxH   float64
		wantW, wantH float64
	}{
		{name: "wide image scales by width", w: 400, h: 100, maxW: 200, maxH: 200, wantW: 200, wantH: 50},
		{name: "tall image scales by height", w: 100, h: 400, maxW: 200, maxH: 200, wantW: 50, wantH: 200},
		{name: "small image never upscales", w: 50, h: 30, maxW: 200, maxH: 200, wantW: 50, wantH: 30},
		{name: "exact fit", w: 200, h: 200, maxW: 200, maxH: 200, wantW: 200, wantH: 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitInBox(tt.w, tt.h, tt.maxW, tt.maxH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FitInBox() = %v, %v, want %v, %v", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func testImage(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() failed, %v", err)
	}
	return buf.Bytes()
}

func testRecord() student.Student {
	return student.Student{
		Username:     "awe",
		Name:         "Asha Kumawat",
		FatherName:   "Ram Kumawat",
		MotherName:   "Sita Kumawat",
		Gender:       "Female",
		Address:      "12 MG Road, near the old clock tower, opposite the central market gate",
		City:         "Jaipur",
		State:        "Rajasthan",
		Phone:        "9876543210",
		AltPhone:     "9876543211",
		EnrollmentNo: "EN2021001",
		Degree:       "B.Tech",
		Branch:       "CSE",
		Semester:     "I",
		Year:         "2021",
		Marks10th:    "85.50",
		Marks12th:    "78",
	}
}

func TestComposer_Compose(t *testing.T) {
	c := NewComposer("Joshi's and Kumawat University", testImage(t, 60, 60))

	photo := testImage(t, 300, 400)
	sign := testImage(t, 400, 100)

	out, err := c.Compose(testRecord(), photo, sign)
	if err != nil {
		t.Fatalf("Compose() failed, %v", err)
	}
	if len(out) == 0 {
		t.Fatal("Compose() returned no data")
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("Compose() output does not start with a PDF header: %q", out[:8])
	}

	// identical inputs produce identical bytes
	again, err := c.Compose(testRecord(), photo, sign)
	if err != nil {
		t.Fatalf("Compose() failed, %v", err)
	}
	if !bytes.Equal(out, again) {
		t.Error("Compose() is not deterministic for identical inputs")
	}
}

func TestComposer_Compose_missingImages(t *testing.T) {
	c := NewComposer("Joshi's and Kumawat University", nil)

	tests := []struct {
		name  string
		photo []byte
		sign  []byte
	}{
		{name: "both missing"},
		{name: "undecodable bytes", photo: []byte("not an image"), sign: []byte("nope")},
		{name: "photo only", photo: nil, sign: testImageBytes(t)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := c.Compose(testRecord(), tt.photo, tt.sign)
			if err != nil {
				t.Fatalf("Compose() failed, %v", err)
			}
			if len(out) == 0 {
				t.Fatal("Compose() returned no data")
			}
		})
	}
}

func testImageBytes(t *testing.T) []byte {
	return testImage(t, 10, 10)
}

func TestComposer_Compose_longValues(t *testing.T) {
	c := NewComposer("Joshi's and Kumawat University", nil)

	rec := testRecord()
	rec.Address = strings.Repeat("very long address segment ", 40)

	out, err := c.Compose(rec, nil, nil)
	if err != nil {
		t.Fatalf("Compose() failed, %v", err)
	}
	if len(out) == 0 {
		t.Fatal("Compose() returned no data")
	}
}
