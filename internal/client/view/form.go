package view

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"userapp/internal/client/api"
	"userapp/internal/core/domain"
)

const (
	TitleAdd    = "Add New User"
	TitleUpdate = "Update User"
)

// The client rules are looser than the service's on purpose: no lower
// bound on password length and no required name or email.
var (
	formValidator  *validator.Validate
	formTranslator ut.Translator

	phonePattern = regexp.MustCompile(`^\d{10}$`)

	formMessages = map[string]string{
		"max":     "Required 8 digit max",
		"phone10": "Required 10 digit",
	}
)

func init() {
	formValidator = validator.New()
	formValidator.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	english := en.New()
	formTranslator, _ = ut.New(english, english).GetTranslator("en")

	for tag, text := range formMessages {
		formValidator.RegisterTranslation(tag, formTranslator, func(t ut.Translator) error {
			return t.Add(tag, text, true)
		}, func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(fe.Tag())
			if err != nil {
				return fe.Error()
			}
			return msg
		})
	}
}

type formFields struct {
	Password string `validate:"max=8"`
	Phone    string `validate:"phone10"`
}

// Form is the add/update dialog. ID is zero when adding.
type Form struct {
	ID       int64
	Name     string
	Email    string
	Password string
	Phone    string

	// Errors maps a lower-case field name to its inline message.
	Errors map[string]string
}

func NewForm() *Form {
	return &Form{}
}

// EditForm returns a form pre-filled from u.
func EditForm(u domain.User) *Form {
	return &Form{ID: u.ID, Name: u.Name, Email: u.Email, Password: u.Password, Phone: u.Phone}
}

func (f *Form) IsUpdate() bool { return f.ID != 0 }

func (f *Form) Title() string {
	if f.IsUpdate() {
		return TitleUpdate
	}
	return TitleAdd
}

// Validate applies the client rules and fills Errors. It reports whether the
// form can be submitted.
func (f *Form) Validate() bool {
	f.Errors = map[string]string{}

	err := formValidator.Struct(formFields{Password: f.Password, Phone: f.Phone})
	if err == nil {
		return true
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		f.Errors["form"] = err.Error()
		return false
	}

	for _, fe := range fieldErrors {
		f.Errors[strings.ToLower(fe.Field())] = fe.Translate(formTranslator)
	}
	return false
}

func (f *Form) Payload() api.UserPayload {
	return api.UserPayload{Name: f.Name, Email: f.Email, Password: f.Password, Phone: f.Phone}
}

func (f *Form) Reset() {
	*f = Form{}
}
