package service

import (
	"errors"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
)

func validationError(err error, message string) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return appErrors.WrapAs(appErrors.ErrValidation, err, message+": "+fieldErrs[0].Field()+" is invalid")
	}
	return appErrors.WrapAs(appErrors.ErrValidation, err, message)
}

func internalError(err error, message string) error {
	return appErrors.WrapAs(appErrors.ErrInternal, err, message)
}
