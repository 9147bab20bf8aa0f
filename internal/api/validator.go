package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ougirez/silverboard/internal/pkg/constants"
)

type requestValidator struct {
	validate *validator.Validate
}

func NewValidator() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return constants.NewCodedErrorf(http.StatusBadRequest, "validation: %s", err.Error())
	}
	return nil
}
