package auth

import (
	"errors"
	"regexp"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// InvalidInputReason identifies which syntactic check failed.
type InvalidInputReason string

const (
	ReasonMissingEmail    InvalidInputReason = "missing_email"
	ReasonMissingPassword InvalidInputReason = "missing_password"
	ReasonMalformedEmail  InvalidInputReason = "malformed_email"
)

// InvalidInputError is a local validation failure. It never reaches the
// network; the login screen surfaces it immediately.
type InvalidInputError struct {
	Reason  InvalidInputReason
	Message string
}

func (e *InvalidInputError) Error() string {
	return string(e.Reason) + ": " + e.Message
}

// emailShape is the conventional local@domain.tld check used by the login
// form. Deliverability is the backend's problem; this only rejects obvious
// typos before a network round trip.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type credentialInput struct {
	Email    string `validate:"required,login_email"`
	Password string `validate:"required"`
}

// Validator performs the syntactic credential checks that run before any
// network or storage access.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewValidator creates a Validator with English translations registered.
func NewValidator() (*Validator, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, err
	}

	if err := v.RegisterValidation("login_email", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	}); err != nil {
		return nil, err
	}

	err := v.RegisterTranslation("login_email", trans,
		func(ut ut.Translator) error {
			return ut.Add("login_email", "{0} must be a valid email address", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("login_email", fe.Field())
			return t
		},
	)
	if err != nil {
		return nil, err
	}

	return &Validator{validate: v, trans: trans}, nil
}

// ValidateCredentials checks the login form input. Returns nil when valid,
// otherwise an *InvalidInputError naming the first failed check.
func (v *Validator) ValidateCredentials(email, password string) *InvalidInputError {
	err := v.validate.Struct(credentialInput{Email: email, Password: password})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &InvalidInputError{Reason: ReasonMalformedEmail, Message: err.Error()}
	}

	fe := verrs[0]
	reason := ReasonMalformedEmail
	switch {
	case fe.Field() == "Email" && fe.Tag() == "required":
		reason = ReasonMissingEmail
	case fe.Field() == "Password":
		reason = ReasonMissingPassword
	}

	return &InvalidInputError{Reason: reason, Message: fe.Translate(v.trans)}
}
