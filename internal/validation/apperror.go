package validation

import (
	"errors"

	appErrors "github.com/noah-isme/grade-request-portal/pkg/errors"
)

// AppError converts a validation failure into a VALIDATION_ERROR. The first
// failure becomes the message and Fields carries every field.
func AppError(err error) *appErrors.Error {
	var fields Errors
	if !errors.As(err, &fields) {
		var fe FieldError
		if !errors.As(err, &fe) {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
		}
		fields = Errors{fe}
	}
	first := fields.First()
	appErr := appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, first.Message)
	appErr.Field = first.Field
	appErr.Fields = fields.ByField()
	return appErr
}
