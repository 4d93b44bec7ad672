package commands

import (
	"fmt"

	"course-checkout/internal/pkg/errs"
)

var (
	ErrCourseNotFound      = errs.New("course not found")
	ErrOfferingNotFound    = errs.New("offering not found")
	ErrSlotNotFound        = errs.New("date slot not found")
	ErrSlotStarted         = errs.New("date slot has already started")
	ErrSlotSoldOut         = errs.New("date slot is sold out")
	ErrBuyerNotFound       = errs.New("authenticated buyer not found")
	ErrOrderNotFound       = errs.New("order not found")
	ErrParticipantNotFound = errs.New("participant not found")
	ErrPaymentUnavailable  = errs.New("payment processor unavailable")
	ErrSessionNotFound     = errs.New("checkout session not found")
	ErrWebhookRejected     = errs.New("webhook rejected")
	ErrOrderNotPaid        = errs.New("order is not paid")
	ErrInvoiceExists       = errs.New("invoice already issued for order")
	ErrInvoiceFailed       = errs.New("invoice issuance failed")
	ErrTokenGeneration     = errs.New("token generation failed")
	ErrAlreadyBooked       = errs.New("buyer already booked on this date through another order")
)

// ValidationError names the offending request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) error {
	return errs.Mark(&ValidationError{Field: field, Reason: reason}, errs.ErrValidation)
}

// AsValidationError extracts the field-level detail, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errs.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
