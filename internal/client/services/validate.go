package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every service; validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire names; local-only fields carry a label tag.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// messages are keyed by "<Struct>.<field>.<tag>" first, then "<field>.<tag>".
var messages = map[string]string{
	"Tag.name.required":           "Tag name is required.",
	"DocumentType.name.required":  "Document type name is required.",
	"Correspondent.name.required": "Correspondent name is required.",
	"Tag.color.hexcolor":          "Color must look like #a6cee3.",

	"email.required":          "Email is required.",
	"email.email":             "Enter a valid email address.",
	"password.required":       "Password is required.",
	"new_password.required":   "Password is required.",
	"repeat_password.eqfield": "Passwords do not match.",
	"otp.required":            "Enter the code from the email.",
	"token.required":          "Activation token is required.",
	"title.required":          "Title is required.",
	"note.required":           "Note cannot be empty.",
	"document.required":       "A file is required.",
}

func message(namespace, field, tag string) string {
	if m, ok := messages[namespace+"."+tag]; ok {
		return m
	}
	if m, ok := messages[field+"."+tag]; ok {
		return m
	}
	switch tag {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	}
	return fmt.Sprintf("Invalid value for %s.", field)
}

// checkStruct runs the validate tags of s and reports the first failure.
func checkStruct(s any) error {
	return translate(validate.Struct(s), "")
}

// checkVar validates a single value that has no struct of its own.
func checkVar(field string, value any, tag string) error {
	return translate(validate.Var(value, tag), field)
}

func translate(err error, field string) error {
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return fmt.Errorf("validate: %w", err)
	}

	fe := errs[0]
	if field == "" {
		field = fe.Field()
	}
	namespace := fe.Namespace()
	if fe.Field() == "" {
		namespace = field
	}
	return invalid(field, message(namespace, field, fe.Tag()))
}
