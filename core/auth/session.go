package auth

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/jkuniv/studentportal/core/student"
)

var (
	ErrCaptchaFailed      = errors.New("captcha incorrect")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CredentialFinder is the slice of the student service the auth flow needs.
type CredentialFinder interface {
	GetByCredentials(username, password string) (student.Student, error)
}

// Challenge is a short-lived arithmetic puzzle gating each login attempt.
// It is never persisted and never reused across attempts.
type Challenge struct {
	A int `json:"a"`
	B int `json:"b"`
}

func (c Challenge) Answer() int { return c.A + c.B }

// Session is the transient authentication state for one user session:
// the current challenge, a failure counter and, once authenticated, the
// matched record. The hosting layer persists it per user session.
type Session struct {
	Student        *student.Student
	FailedAttempts int
	Challenge      Challenge

	gen func() Challenge
}

// NewSession starts an anonymous session with a fresh challenge.
func NewSession() *Session {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return NewSessionWithGenerator(func() Challenge {
		// both operands uniform in [2,12]
		return Challenge{A: 2 + rnd.Intn(11), B: 2 + rnd.Intn(11)}
	})
}

// NewSessionWithGenerator is the seam for tests: the generator is invoked
// once up front and again after every login attempt.
func NewSessionWithGenerator(gen func() Challenge) *Session {
	s := &Session{gen: gen}
	s.Challenge = s.gen()
	return s
}

func (s *Session) Authenticated() bool { return s.Student != nil }

// Login runs one authentication attempt: the captcha answer is checked
// first, then the credentials. Whatever the outcome, the challenge is
// regenerated so a stale answer can never be replayed.
func (s *Session) Login(finder CredentialFinder, uname, pwd, captchaAnswer string) error {
	defer func() { s.Challenge = s.gen() }()

	answer, err := strconv.Atoi(strings.TrimSpace(captchaAnswer))
	if err != nil || answer != s.Challenge.Answer() {
		s.FailedAttempts++
		return ErrCaptchaFailed
	}

	rec, err := finder.GetByCredentials(uname, pwd)
	if err != nil {
		s.FailedAttempts++
		if errors.Cause(err) == student.ErrNotFound {
			return ErrInvalidCredentials
		}
		return errors.Wrap(err, "finding student by credentials")
	}

	s.FailedAttempts = 0
	s.Student = &rec
	return nil
}

// Logout discards the held record and returns to the anonymous state with
// a fresh challenge.
func (s *Session) Logout() {
	s.Student = nil
	s.Challenge = s.gen()
}
