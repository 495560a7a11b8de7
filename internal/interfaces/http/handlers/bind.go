package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	domainerrors "partner-onboarding.backend/internal/domain/errors"
	"partner-onboarding.backend/internal/interfaces/http/response"
)

// bindJSON decodes the body into dst and renders invalid-argument on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, domainerrors.InvalidArgument(bindErrorMessage(err)))
		return false
	}
	return true
}

func bindErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return describeFieldError(validationErrs[0])
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field + " must be " + describeKind(typeErr.Type)
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return "request body must be valid JSON"
	}
	return err.Error()
}

func describeKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Map, reflect.Struct:
		return "an object"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Int, reflect.Int64, reflect.Int32, reflect.Float64, reflect.Float32:
		return "a number"
	default:
		return "a " + t.String()
	}
}

// describeFieldError renders "phone number is required" for Phone.Number
func describeFieldError(fe validator.FieldError) string {
	segments := strings.Split(fe.StructNamespace(), ".")
	if len(segments) > 1 {
		segments = segments[1:]
	}
	for i, s := range segments {
		segments[i] = lowerFirst(s)
	}
	name := strings.Join(segments, " ")
	if fe.Tag() == "required" {
		return name + " is required"
	}
	return name + " is invalid"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
