package api

import (
	"net/http"

	"course-checkout/internal/domain/order"
	"course-checkout/internal/handler/httperr"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/commands"
	"course-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// useCaseErrors is checked top to bottom; the first match wins.
var useCaseErrors = []errorMapping{
	{commands.ErrCourseNotFound, http.StatusNotFound, "Course not found"},
	{commands.ErrOfferingNotFound, http.StatusNotFound, "Offering not found"},
	{commands.ErrSlotNotFound, http.StatusNotFound, "Date slot not found"},
	{commands.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
	{queries.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
	{commands.ErrParticipantNotFound, http.StatusNotFound, "Participant not found"},
	{commands.ErrSessionNotFound, http.StatusNotFound, "Checkout session not found"},
	{commands.ErrBuyerNotFound, http.StatusUnauthorized, "Authenticated buyer no longer exists"},
	{commands.ErrSlotSoldOut, http.StatusConflict, "Date slot is sold out"},
	{commands.ErrSlotStarted, http.StatusConflict, "Date slot has already started"},
	{order.ErrInvalidTransition, http.StatusConflict, "Order status does not allow this change"},
	{commands.ErrPaymentUnavailable, http.StatusBadGateway, "Payment processor unavailable"},
	{commands.ErrWebhookRejected, http.StatusBadRequest, "Webhook rejected"},
}

func respondError(c *gin.Context, err error, fallback string) {
	if ve, ok := commands.AsValidationError(err); ok {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", []httperr.FieldError{{Field: ve.Field, Reason: ve.Reason}})
		return
	}
	if errs.Is(err, errs.ErrValidation) {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	for _, m := range useCaseErrors {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, fallback, nil)
}

var errUnauthenticated = errs.New("no authenticated user in context")
