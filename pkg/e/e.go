package e

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func Wrap(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUndefinedTable  = errors.New("undefined table")
	ErrInternal        = errors.New("internal error")
	ErrDeadline        = errors.New("deadline exceeded")
	ErrCanceled        = errors.New("context canceled")
	ErrGeocodeNotFound = errors.New("address not found")
	ErrCaptchaRejected = errors.New("captcha rejected")
	ErrNotConfigured   = errors.New("not configured")
)

// ValidationError reports the first field of a payload that failed validation.
// Message is safe to show to the submitter.
type ValidationError struct {
	Field   string
	Message string
}

func (v *ValidationError) Error() string {
	return v.Message
}

func (v *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// CaptchaError is a negative verdict from the captcha collaborator.
type CaptchaError struct {
	Message string
}

func (c *CaptchaError) Error() string {
	return c.Message
}

func (c *CaptchaError) Unwrap() error {
	return ErrCaptchaRejected
}

// GeocodeError means the submitted address could not be turned into coordinates.
type GeocodeError struct {
	Message string
}

func (g *GeocodeError) Error() string {
	return g.Message
}

func (g *GeocodeError) Unwrap() error {
	return ErrGeocodeNotFound
}

// PublicMessage returns the caller-facing text of a validation, captcha or
// geocode error. ok is false for every other error.
func PublicMessage(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message, true
	}
	var ce *CaptchaError
	if errors.As(err, &ce) {
		return ce.Message, true
	}
	var ge *GeocodeError
	if errors.As(err, &ge) {
		return ge.Message, true
	}
	return "", false
}

func WrapError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrDeadline)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, ErrCanceled)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01":
			return fmt.Errorf("%s: %w", op, ErrUndefinedTable)
		case "22P02", "23502", "23514":
			return fmt.Errorf("%s: %w", op, ErrInvalidInput)
		default:
			return fmt.Errorf("%s: pg error %s: %w", op, pgErr.Code, ErrInternal)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, ErrInternal)
}
