package auth

import (
	"strconv"
	"testing"

	"github.com/pkg/errors"

	"github.com/jkuniv/studentportal/core/student"
)

type finderStub struct {
	rec student.Student
	err error
}

func (f finderStub) GetByCredentials(uname, pwd string) (student.Student, error) {
	if f.err != nil {
		return student.Student{}, f.err
	}
	if uname == f.rec.Username && pwd == f.rec.Password {
		return f.rec, nil
	}
	return student.Student{}, student.ErrNotFound
}

// countingSession returns a session with a fixed challenge and a pointer to
// the number of times the generator has run (1 after construction).
func countingSession(a, b int) (*Session, *int) {
	var calls int
	s := NewSessionWithGenerator(func() Challenge {
		calls++
		return Challenge{A: a, B: b}
	})
	return s, &calls
}

func TestSession_Login(t *testing.T) {
	finder := finderStub{rec: student.Student{Username: "awe", Password: "Abcd123@"}}

	t.Run("wrong captcha", func(t *testing.T) {
		s, calls := countingSession(3, 4)
		if err := s.Login(finder, "awe", "Abcd123@", "8"); err != ErrCaptchaFailed {
			t.Errorf("Login() error = %v, want %v", err, ErrCaptchaFailed)
		}
		if s.FailedAttempts != 1 {
			t.Errorf("FailedAttempts = %d, want 1", s.FailedAttempts)
		}
		if s.Authenticated() {
			t.Error("Authenticated() = true")
		}
		if *calls != 2 { // construction + regeneration after the attempt
			t.Errorf("generator calls = %d, want 2", *calls)
		}
	})

	t.Run("non-numeric captcha", func(t *testing.T) {
		s, _ := countingSession(3, 4)
		if err := s.Login(finder, "awe", "Abcd123@", "lol"); err != ErrCaptchaFailed {
			t.Errorf("Login() error = %v, want %v", err, ErrCaptchaFailed)
		}
	})

	t.Run("padded captcha answer", func(t *testing.T) {
		s, _ := countingSession(3, 4)
		if err := s.Login(finder, "awe", "Abcd123@", " 7 "); err != nil {
			t.Errorf("Login() failed, %v", err)
		}
	})

	t.Run("wrong credentials", func(t *testing.T) {
		s, _ := countingSession(3, 4)
		if err := s.Login(finder, "awe", "nope", "7"); err != ErrInvalidCredentials {
			t.Errorf("Login() error = %v, want %v", err, ErrInvalidCredentials)
		}
		if s.FailedAttempts != 1 {
			t.Errorf("FailedAttempts = %d, want 1", s.FailedAttempts)
		}
	})

	t.Run("failures accumulate, success resets", func(t *testing.T) {
		s, calls := countingSession(3, 4)
		for i := 0; i < 3; i++ {
			_ = s.Login(finder, "awe", "nope", "7")
		}
		if s.FailedAttempts != 3 {
			t.Errorf("FailedAttempts = %d, want 3", s.FailedAttempts)
		}

		if err := s.Login(finder, "awe", "Abcd123@", "7"); err != nil {
			t.Fatalf("Login() failed, %v", err)
		}
		if s.FailedAttempts != 0 {
			t.Errorf("FailedAttempts = %d, want 0", s.FailedAttempts)
		}
		if !s.Authenticated() || s.Student.Username != "awe" {
			t.Errorf("Student = %+v", s.Student)
		}
		if *calls != 5 { // construction + one per attempt
			t.Errorf("generator calls = %d, want 5", *calls)
		}
	})

	t.Run("storage errors pass through", func(t *testing.T) {
		boom := errors.New("boom")
		s, _ := countingSession(3, 4)
		err := s.Login(finderStub{err: boom}, "awe", "Abcd123@", "7")
		if errors.Cause(err) != boom {
			t.Errorf("Login() error = %v, want cause %v", err, boom)
		}
		if err == ErrCaptchaFailed || err == ErrInvalidCredentials {
			t.Error("storage error must not be reported as an auth failure")
		}
	})
}

func TestSession_Logout(t *testing.T) {
	finder := finderStub{rec: student.Student{Username: "awe", Password: "Abcd123@"}}
	s, calls := countingSession(5, 6)

	if err := s.Login(finder, "awe", "Abcd123@", "11"); err != nil {
		t.Fatalf("Login() failed, %v", err)
	}
	s.Logout()
	if s.Authenticated() {
		t.Error("Authenticated() = true after Logout()")
	}
	if *calls != 3 { // construction + login + logout
		t.Errorf("generator calls = %d, want 3", *calls)
	}
}

func TestNewSession_operandRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		s := NewSession()
		for _, v := range []int{s.Challenge.A, s.Challenge.B} {
			if v < 2 || v > 12 {
				t.Fatalf("operand %d out of [2,12]", v)
			}
		}
		if want := s.Challenge.A + s.Challenge.B; s.Challenge.Answer() != want {
			t.Fatalf("Answer() = %d, want %d", s.Challenge.Answer(), want)
		}
		_ = strconv.Itoa(s.Challenge.Answer())
	}
}
