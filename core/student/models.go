package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/jkuniv/studentportal/core"
)

// AdminUsername is the well-known bootstrap administrative account.
const AdminUsername = "admin"

// Selection types. Each has an Unselected zero sentinel distinct from any
// valid choice so validation can check membership instead of comparing
// against a placeholder label.
type (
	Gender   string
	State    string
	Degree   string
	Branch   string
	Semester string
	Year     string
)

const (
	GenderUnselected Gender = ""
	GenderMale       Gender = "Male"
	GenderFemale     Gender = "Female"
	GenderOther      Gender = "Other"

	StateUnselected State = ""

	DegreeUnselected Degree = ""

	BranchUnselected Branch = ""

	SemesterUnselected Semester = ""

	YearUnselected Year = ""
)

var (
	Genders   = []string{string(GenderMale), string(GenderFemale), string(GenderOther)}
	States    = []string{"Rajasthan", "Karnataka", "Delhi", "Tamil Nadu"}
	Degrees   = []string{"B.Tech", "MCA", "MBA"}
	Branches  = []string{"CSE", "AI/ML", "ECE", "ME"}
	Semesters = []string{"I", "II", "III", "IV", "V", "VI"}
	Years     = []string{"2021", "2022", "2023", "2024", "2025", "2026", "2027", "2028", "2029"}
)

func isChoice(choices []string, v string) bool {
	for _, c := range choices {
		if c == v {
			return true
		}
	}
	return false
}

func (g Gender) Valid() bool   { return isChoice(Genders, string(g)) }
func (s State) Valid() bool    { return isChoice(States, string(s)) }
func (d Degree) Valid() bool   { return isChoice(Degrees, string(d)) }
func (b Branch) Valid() bool   { return isChoice(Branches, string(b)) }
func (s Semester) Valid() bool { return isChoice(Semesters, string(s)) }
func (y Year) Valid() bool     { return isChoice(Years, string(y)) }

// Student is one registrant's stored record, keyed by a unique, immutable
// username. All columns are stored as text; numeric-looking fields (phone,
// marks, year) are deliberately not parsed.
type Student struct {
	Username     string `db:"username" json:"username" ddl:"PRIMARY KEY"`
	Password     string `db:"password" json:"-"`
	Name         string `db:"name" json:"name"`
	FatherName   string `db:"father_name" json:"father_name"`
	MotherName   string `db:"mother_name" json:"mother_name"`
	Gender       string `db:"gender" json:"gender"`
	Address      string `db:"address" json:"address"`
	City         string `db:"city" json:"city"`
	State        string `db:"state" json:"state"`
	Phone        string `db:"phone" json:"phone"`
	AltPhone     string `db:"alt_phone" json:"alt_phone"`
	EnrollmentNo string `db:"enrollment_no" json:"enrollment_no"`
	Degree       string `db:"degree" json:"degree"`
	Branch       string `db:"branch" json:"branch"`
	Semester     string `db:"semester" json:"semester"`
	Year         string `db:"year" json:"year"`
	Marks10th    string `db:"marks_10th" json:"marks_10th"`
	Marks12th    string `db:"marks_12th" json:"marks_12th"`
	PhotoPath    string `db:"photo_path" json:"photo_path"`
	SignPath     string `db:"sign_path" json:"sign_path"`
}

func (s Student) IsAdmin() bool {
	return s.Username == AdminUsername
}

// NewStudent contains the information needed to register a new Student.
type NewStudent struct {
	Username     string   `json:"username" form:"username" validate:"required,alphanum"`
	Password     string   `json:"password" form:"password" validate:"required,strongpwd"`
	Name         string   `json:"name" form:"name" validate:"required,personname"`
	FatherName   string   `json:"father_name" form:"father_name" validate:"required,personname"`
	MotherName   string   `json:"mother_name" form:"mother_name" validate:"required,personname"`
	Gender       Gender   `json:"gender" form:"gender" validate:"required,choice"`
	Address      string   `json:"address" form:"address" validate:"required"`
	City         string   `json:"city" form:"city" validate:"required,personname"`
	State        State    `json:"state" form:"state" validate:"required,choice"`
	Phone        string   `json:"phone" form:"phone" validate:"required,phone"`
	AltPhone     string   `json:"alt_phone" form:"alt_phone" validate:"required"`
	EnrollmentNo string   `json:"enrollment_no" form:"enrollment_no" validate:"required"`
	Degree       Degree   `json:"degree" form:"degree" validate:"required,choice"`
	Branch       Branch   `json:"branch" form:"branch" validate:"required,choice"`
	Semester     Semester `json:"semester" form:"semester" validate:"required,choice"`
	Year         Year     `json:"year" form:"year" validate:"required,choice"`
	Marks10th    string   `json:"marks_10th" form:"marks_10th" validate:"required,marks"`
	Marks12th    string   `json:"marks_12th" form:"marks_12th" validate:"required,marks"`
}

func (ns *NewStudent) Validate(validate *validator.Validate, svc *Service) error {
	ns.Username = core.CleanString(ns.Username, true /* lower */)
	ns.Name = core.CleanString(ns.Name)
	ns.FatherName = core.CleanString(ns.FatherName)
	ns.MotherName = core.CleanString(ns.MotherName)
	ns.Address = core.CleanString(ns.Address)
	ns.City = core.CleanString(ns.City)
	ns.Phone = core.CleanString(ns.Phone)
	ns.AltPhone = core.CleanString(ns.AltPhone)
	ns.EnrollmentNo = core.CleanString(ns.EnrollmentNo)
	ns.Marks10th = core.CleanString(ns.Marks10th)
	ns.Marks12th = core.CleanString(ns.Marks12th)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckUsernameUniqueness(ns.Username)
}

// student builds the storable record; image paths come from the blob store.
func (ns NewStudent) student(photoPath, signPath string) Student {
	return Student{
		Username:     ns.Username,
		Password:     ns.Password,
		Name:         ns.Name,
		FatherName:   ns.FatherName,
		MotherName:   ns.MotherName,
		Gender:       string(ns.Gender),
		Address:      ns.Address,
		City:         ns.City,
		State:        string(ns.State),
		Phone:        ns.Phone,
		AltPhone:     ns.AltPhone,
		EnrollmentNo: ns.EnrollmentNo,
		Degree:       string(ns.Degree),
		Branch:       string(ns.Branch),
		Semester:     string(ns.Semester),
		Year:         string(ns.Year),
		Marks10th:    ns.Marks10th,
		Marks12th:    ns.Marks12th,
		PhotoPath:    photoPath,
		SignPath:     signPath,
	}
}
