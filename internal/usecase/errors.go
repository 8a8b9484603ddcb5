package usecase

import (
	"errors"
	"fmt"

	"filmorate/internal/data/repository"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

var (
	// ErrNotFound is the store sentinel, re-exported for handlers.
	ErrNotFound = repository.ErrNotFound

	ErrValidation = errors.New("validation failed")

	// ErrLikeNotFound reports removal of a like the user never gave.
	ErrLikeNotFound = fmt.Errorf("like %w", ErrNotFound)
)

// ValidationError carries per-field messages and unwraps to ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// logFailure logs client mistakes at Warn and everything else at Error.
func logFailure(log *zap.Logger, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
		log.Warn(msg, fields...)
		return
	}
	log.Error(msg, fields...)
}
