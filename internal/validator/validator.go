package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nexus-hub/engagement-service/internal/models"
)

// Validator wraps go-playground/validator with the service's custom rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the domain rules registered.
func New() *Validator {
	validate := validator.New()

	// Course catalog categories are a fixed enum.
	_ = validate.RegisterValidation("course_category", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, c := range models.CourseCategories {
			if value == string(c) {
				return true
			}
		}
		return false
	})

	// Idea board categories are a fixed enum.
	_ = validate.RegisterValidation("idea_category", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, c := range models.IdeaCategories {
			if value == string(c) {
				return true
			}
		}
		return false
	})

	return &Validator{validate: validate}
}

// ValidationError describes one failed field rule.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationErrors is the set of failed rules for one request.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Validate checks a request struct; it returns nil when all rules pass.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Message: err.Error()}}
	}

	out := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "course_category":
		return fmt.Sprintf("%s must be one of: Technical, Soft Skills, Leadership", fe.Field())
	case "idea_category":
		return fmt.Sprintf("%s must be one of: Process Improvement, Technical Solution, Team Culture", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
