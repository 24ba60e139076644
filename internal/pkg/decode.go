package pkg

import (
	"errors"
	"io"
	"strings"

	"github.com/goccy/go-json"
)

// DecodeJSON 严格解码请求体，未知字段视为校验错误
func DecodeJSON(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	return nil
}

func decodeError(err error) error {
	if errors.Is(err, io.EOF) {
		return BadRequest("Request body is required")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return ValidationFailed(FieldError{
			Field:   typeErr.Field,
			Message: typeErr.Field + " has an invalid type",
		})
	}

	msg := err.Error()
	if _, rest, ok := strings.Cut(msg, "unknown field "); ok {
		field := strings.Trim(rest, `"`)
		return ValidationFailed(FieldError{Field: field, Message: `"` + field + `" is not allowed`})
	}
	return BadRequest("Invalid request body")
}
