package pkg

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"Community_Portal/internal/model"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^[\d\s-]{10,15}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	v.RegisterStructValidation(eventRules, model.Event{})
	return v
}

// eventRules 重复活动必须给出晚于活动日期的截止日期
func eventRules(sl validator.StructLevel) {
	e := sl.Current().Interface().(model.Event)
	if e.Repeat == model.RepeatNone {
		return
	}
	switch {
	case e.RepeatUntil == nil:
		sl.ReportError(e.RepeatUntil, "repeatUntil", "RepeatUntil", "required", "")
	case !e.RepeatUntil.After(e.Date):
		sl.ReportError(e.RepeatUntil, "repeatUntil", "RepeatUntil", "gtfield", "Date")
	}
}

// Validate 校验结构体，失败时返回带全部字段错误的 AppError
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return ValidationFailed(FieldErrors(verrs)...)
	}
	return err
}

func FieldErrors(verrs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: fieldMessage(fe.Field(), fe)})
	}
	return out
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid URL"
	case "phone":
		return field + " must be 10-15 digits, spaces or dashes"
	case "gtfield":
		return fmt.Sprintf("%s must be after %s", field, lowerFirst(fe.Param()))
	default:
		return field + " is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
