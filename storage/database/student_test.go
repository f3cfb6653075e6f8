package database

import (
	"testing"

	"github.com/jkuniv/studentportal/core/student"
)

func prepareRepo(t *testing.T) *StudentRepository {
	t.Helper()

	db := openTestDB(t)
	if err := Reconcile(db); err != nil {
		t.Fatalf("Reconcile() failed, %v", err)
	}
	return NewStudentRepository(db)
}

func testStudent(uname string) student.Student {
	return student.Student{
		Username:     uname,
		Password:     "Abcd123@",
		Name:         "Asha Kumawat",
		FatherName:   "Ram Kumawat",
		MotherName:   "Sita Kumawat",
		Gender:       "Female",
		Address:      "12 MG Road",
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
		PhotoPath:    "uploads/awe_photo.png",
		SignPath:     "uploads/awe_sign.png",
	}
}

func TestStudentRepository_CreateStudent(t *testing.T) {
	repo := prepareRepo(t)

	want := testStudent("awe")
	if err := repo.CreateStudent(want); err != nil {
		t.Fatalf("CreateStudent() failed, %v", err)
	}

	got, err := repo.GetStudentByUsername("awe")
	if err != nil {
		t.Fatalf("GetStudentByUsername() failed, %v", err)
	}
	if got != want {
		t.Errorf("GetStudentByUsername() = %+v, want %+v", got, want)
	}

	// the primary key rejects a duplicate
	if err := repo.CreateStudent(want); err != student.ErrUsernameExists {
		t.Errorf("CreateStudent() error = %v, want %v", err, student.ErrUsernameExists)
	}
}

func TestStudentRepository_CheckUsernameUniqueness(t *testing.T) {
	repo := prepareRepo(t)

	if err := repo.CheckUsernameUniqueness("awe"); err != nil {
		t.Errorf("CheckUsernameUniqueness() unexpected error = %v", err)
	}
	if err := repo.CreateStudent(testStudent("awe")); err != nil {
		t.Fatalf("CreateStudent() failed, %v", err)
	}
	if err := repo.CheckUsernameUniqueness("awe"); err != student.ErrUsernameExists {
		t.Errorf("CheckUsernameUniqueness() error = %v, want %v", err, student.ErrUsernameExists)
	}
}

func TestStudentRepository_GetStudentByCredentials(t *testing.T) {
	repo := prepareRepo(t)

	if err := repo.CreateStudent(testStudent("awe")); err != nil {
		t.Fatalf("CreateStudent() failed, %v", err)
	}

	if _, err := repo.GetStudentByCredentials("awe", "Abcd123@"); err != nil {
		t.Errorf("GetStudentByCredentials() failed, %v", err)
	}
	// matching is exact on both fields
	if _, err := repo.GetStudentByCredentials("awe", "abcd123@"); err != student.ErrNotFound {
		t.Errorf("GetStudentByCredentials() error = %v, want %v", err, student.ErrNotFound)
	}
	if _, err := repo.GetStudentByCredentials("lol", "Abcd123@"); err != student.ErrNotFound {
		t.Errorf("GetStudentByCredentials() error = %v, want %v", err, student.ErrNotFound)
	}
}

func TestStudentRepository_QueryAllStudents(t *testing.T) {
	repo := prepareRepo(t)

	all, err := repo.QueryAllStudents()
	if err != nil {
		t.Fatalf("QueryAllStudents() failed, %v", err)
	}
	if len(all) != 0 {
		t.Errorf("QueryAllStudents() len = %d, want 0", len(all))
	}

	for _, uname := range []string{"awe", "lol", "heh"} {
		if err := repo.CreateStudent(testStudent(uname)); err != nil {
			t.Fatalf("CreateStudent() failed, %v", err)
		}
	}
	all, err = repo.QueryAllStudents()
	if err != nil {
		t.Fatalf("QueryAllStudents() failed, %v", err)
	}
	if len(all) != 3 {
		t.Errorf("QueryAllStudents() len = %d, want 3", len(all))
	}
}

func TestStudentRepository_UpdateStudentPassword(t *testing.T) {
	repo := prepareRepo(t)

	if err := repo.CreateStudent(testStudent("awe")); err != nil {
		t.Fatalf("CreateStudent() failed, %v", err)
	}
	if err := repo.UpdateStudentPassword("awe", "Wxyz987@"); err != nil {
		t.Fatalf("UpdateStudentPassword() failed, %v", err)
	}
	if _, err := repo.GetStudentByCredentials("awe", "Wxyz987@"); err != nil {
		t.Errorf("GetStudentByCredentials() failed after update, %v", err)
	}

	// absent username is a no-op
	if err := repo.UpdateStudentPassword("lol", "Wxyz987@"); err != nil {
		t.Errorf("UpdateStudentPassword() unexpected error = %v", err)
	}
}

func TestStudentRepository_DeleteStudentByUsername(t *testing.T) {
	repo := prepareRepo(t)

	if err := repo.CreateStudent(testStudent("awe")); err != nil {
		t.Fatalf("CreateStudent() failed, %v", err)
	}
	if err := repo.DeleteStudentByUsername("awe"); err != nil {
		t.Fatalf("DeleteStudentByUsername() failed, %v", err)
	}
	if _, err := repo.GetStudentByUsername("awe"); err != student.ErrNotFound {
		t.Errorf("GetStudentByUsername() error = %v, want %v", err, student.ErrNotFound)
	}

	// absent username is a no-op
	if err := repo.DeleteStudentByUsername("awe"); err != nil {
		t.Errorf("DeleteStudentByUsername() unexpected error = %v", err)
	}
}
