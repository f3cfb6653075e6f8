package student

import (
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/jkuniv/studentportal/core"
)

var (
	personNameTag  = "personname"
	personNameText = "only letters and spaces are allowed"
	personNameRe   = regexp.MustCompile(`^[A-Za-z ]+$`)

	phoneTag  = "phone"
	phoneText = "must be exactly 10 digits"
	phoneLen  = 10

	marksTag  = "marks"
	marksText = "must be numeric with at most two decimals, e.g. 85 or 85.50"
	marksRe   = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

	choiceTag  = "choice"
	choiceText = "invalid selection"

	strongPwdTag  = "strongpwd"
	strongPwdText = "password must contain at least 1 uppercase character, " +
		"1 lowercase character, 1 digit, 1 symbol and 8 characters total"
	pwdMinLen  = 8
	pwdSymbols = "@#$%^&+=!"
)

// RegisterValidations adds the student-specific validation tags.
func RegisterValidations(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(personNameTag, func(fl validator.FieldLevel) bool {
		return IsName(fl.Field().String())
	})
	core.RegisterCustomTranslation(validate, translator, personNameTag, personNameText)

	_ = validate.RegisterValidation(phoneTag, func(fl validator.FieldLevel) bool {
		return IsNumeric(fl.Field().String(), phoneLen)
	})
	core.RegisterCustomTranslation(validate, translator, phoneTag, phoneText)

	_ = validate.RegisterValidation(marksTag, func(fl validator.FieldLevel) bool {
		return IsMarks(fl.Field().String())
	})
	core.RegisterCustomTranslation(validate, translator, marksTag, marksText)

	_ = validate.RegisterValidation(strongPwdTag, func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	core.RegisterCustomTranslation(validate, translator, strongPwdTag, strongPwdText)

	_ = validate.RegisterValidation(choiceTag, choiceValidation)
	core.RegisterCustomTranslation(validate, translator, choiceTag, choiceText)
}

// choiceValidation checks membership of the closed selection types.
func choiceValidation(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case Gender:
		return v.Valid()
	case State:
		return v.Valid()
	case Degree:
		return v.Valid()
	case Branch:
		return v.Valid()
	case Semester:
		return v.Valid()
	case Year:
		return v.Valid()
	}
	return false
}

// Pure predicates. These back the validation tags above and are usable on
// their own; all are total over string input.

// IsNumeric reports whether value is non-empty, all decimal digits and,
// when exactLen > 0, exactly that long.
func IsNumeric(value string, exactLen int) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return exactLen <= 0 || len(value) == exactLen
}

// IsName reports whether value contains only letters and spaces after trimming.
func IsName(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && personNameRe.MatchString(value)
}

// IsStrongPassword reports whether value holds at least one lowercase letter,
// one uppercase letter, one digit and one allowed symbol, at 8+ characters.
// The four character classes may appear in any order.
func IsStrongPassword(value string) bool {
	if len(value) < pwdMinLen {
		return false
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(pwdSymbols, r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// IsMarks reports whether value is a plain number with an optional one or
// two digit decimal part, e.g. "85", "85.5" or "85.50".
func IsMarks(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && marksRe.MatchString(value)
}
