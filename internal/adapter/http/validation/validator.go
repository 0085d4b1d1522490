package http

import (
	"errors"
	"regexp"
	"strings"

	"userapp/internal/core/domain"
	"userapp/internal/core/port"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator

	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

var translations = map[string]string{
	"required":          "{0} is required and must be a non-empty string",
	"notblank":          "{0} is required and must be a non-empty string",
	"min":               "{0} is required and must be at least {1} characters long",
	"max":               "{0} must not exceed {1} characters",
	"phone10":           "{0} number must be exactly 10 digits",
	"email_invalid":     "Valid email is required",
	"password_required": "Password is required and must be at least 3 characters long",
}

// fieldOverrides maps "Field.tag" to a translation key when a field needs a
// message other than its tag's default.
var fieldOverrides = map[string]string{
	"Email.required":    "email_invalid",
	"Email.contains":    "email_invalid",
	"Password.required": "password_required",
}

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	RegisterRules(Validator)
	addCustomTranslations()
}

// RegisterRules adds the notblank and phone10 rules to v.
func RegisterRules(v *validator.Validate) {
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

func addCustomTranslations() {
	for key, text := range translations {
		Translator.Add(key, text, true)
	}

	for _, tag := range []string{"required", "notblank", "min", "max", "phone10", "contains"} {
		Validator.RegisterTranslation(tag, Translator, func(ut ut.Translator) error {
			return nil
		}, translate)
	}
}

func translate(ut ut.Translator, fe validator.FieldError) string {
	key := fe.Tag()

	if override, ok := fieldOverrides[fe.StructField()+"."+fe.Tag()]; ok {
		key = override
	}

	t, err := ut.T(key, fe.Field(), fe.Param())

	if err != nil {
		return fe.Error()
	}

	return t
}

// FirstValidationError converts the first field error in err into a
// *domain.ValidationError.
func FirstValidationError(err error) error {
	var validationErrors validator.ValidationErrors

	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	fieldError := validationErrors[0]

	return domain.NewValidationError(strings.ToLower(fieldError.Field()), fieldError.Translate(Translator))
}

type StructValidator struct{}

func NewStructValidator() port.Validator {
	return &StructValidator{}
}

func (v *StructValidator) ValidateStruct(s any) error {
	if err := Validator.Struct(s); err != nil {
		return FirstValidationError(err)
	}

	return nil
}
