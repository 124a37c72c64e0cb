package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/guttosm/stockseries/internal/domain/models"
)

var tagNamesOnce sync.Once

// useJSONFieldNames makes validator report "symbol_list" instead of "SymbolList".
func useJSONFieldNames() {
	tagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindError turns a gin binding failure into a ValidationError whose message
// names the offending JSON field.
func bindError(err error) error {
	var (
		verrs   validator.ValidationErrors
		colErr  *models.ErrInvalidColumn
		typeErr *json.UnmarshalTypeError
		synErr  *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs) && len(verrs) > 0:
		return models.NewValidationError("%s", fieldMessage(verrs[0]))
	case errors.As(err, &colErr):
		return models.NewValidationError("column: %s", colErr.Error())
	case errors.As(err, &typeErr):
		return models.NewValidationError("%s: expected %s, got %s", typeErr.Field, jsonKind(typeErr.Type), typeErr.Value)
	case errors.As(err, &synErr):
		return models.NewValidationError("malformed JSON at offset %d", synErr.Offset)
	case errors.Is(err, io.EOF):
		return models.NewValidationError("request body is required")
	case errors.Is(err, io.ErrUnexpectedEOF):
		return models.NewValidationError("malformed JSON: unexpected end of body")
	default:
		return models.NewValidationError("invalid request body: %v", err)
	}
}

func fieldMessage(fe validator.FieldError) string {
	field := fieldPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", field)
	case "min":
		return fmt.Sprintf("%s: must contain at least %s item", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s: %q is not a YYYY-MM-DD date", field, fe.Value())
	default:
		return fmt.Sprintf("%s: failed %q rule", field, fe.Tag())
	}
}

// fieldPath drops the root struct name: "StockRequest.timeframe.start_date"
// becomes "timeframe.start_date".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func jsonKind(t reflect.Type) string {
	if t == reflect.TypeOf(models.Column(0)) {
		return "string"
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.String:
		return "string"
	default:
		return t.Kind().String()
	}
}
