package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/jkuniv/studentportal/core/auth"
	"github.com/jkuniv/studentportal/core/student"
)

type LoginRequest struct {
	Session  string `json:"session" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Captcha  string `json:"captcha" validate:"required"`
}

func (r LoginRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Student student.Student `json:"student"`
}

type LoginFailedResponse struct {
	Error          string         `json:"error"`
	FailedAttempts int            `json:"failed_attempts"`
	Challenge      auth.Challenge `json:"captcha"`
}

type CaptchaResponse struct {
	Session   string         `json:"session"`
	Challenge auth.Challenge `json:"captcha"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

func (r ResetPasswordRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

type ImportResponse struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

type SuccessResponse struct {
	Success string `json:"success"`
}
