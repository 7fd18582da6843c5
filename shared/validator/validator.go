package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"proctor/shared/failure"
	"proctor/shared/timezone"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("future", func(fl val.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}

		return t.After(timezone.Now())
	})
	if err != nil {
		panic(err)
	}
}

// crossValidator lets request DTOs carry checks that span more than one field.
type crossValidator interface {
	Validate() error
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. Shape violations surface as 422 failures so the
// transport layer can distinguish them from business-rule rejections.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	err := decoder.Decode(data)
	if err != nil {
		return failure.UnprocessableEntity(fmt.Sprintf("failed to decode request body: %v", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)
	if err != nil {
		return failure.UnprocessableEntity(message(err)) //nolint:wrapcheck
	}

	if cv, ok := any(data).(crossValidator); ok {
		return cv.Validate() //nolint:wrapcheck
	}

	return nil
}
