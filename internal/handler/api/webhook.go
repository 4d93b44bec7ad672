package api

import (
	"io"
	"net/http"

	resdto "course-checkout/internal/handler/dto/response"
	"course-checkout/internal/handler/httperr"
	"course-checkout/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	maxWebhookBody  = 64 << 10
	signatureHeader = "Stripe-Signature"
)

type WebhookHandler struct {
	cmds commands.WebhookCommands
}

func NewWebhookHandler(cmds commands.WebhookCommands) *WebhookHandler {
	return &WebhookHandler{cmds: cmds}
}

// @Summary Payment webhook
// @Description Receive payment processor events. Any parsed event is acknowledged with 200.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Processor signature"
// @Success 200 {object} resdto.WebhookResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/webhooks/payment [post]
func (h *WebhookHandler) Handle(c *gin.Context) {
	// Signature verification needs the exact bytes, so no JSON binding here.
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable payload", nil)
		return
	}

	result, err := h.cmds.HandleWebhook(c.Request.Context(), payload, c.GetHeader(signatureHeader))
	if err != nil {
		respondError(c, err, "Webhook processing failed")
		return
	}

	c.JSON(http.StatusOK, resdto.WebhookResponse{
		Received: true,
		EventID:  result.EventID,
		Outcome:  string(result.Outcome),
	})
}
