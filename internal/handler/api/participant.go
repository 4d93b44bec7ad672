package api

import (
	"net/http"

	resdto "course-checkout/internal/handler/dto/response"
	"course-checkout/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type ParticipantHandler struct {
	cmds commands.ParticipantCommands
}

func NewParticipantHandler(cmds commands.ParticipantCommands) *ParticipantHandler {
	return &ParticipantHandler{cmds: cmds}
}

// @Summary Cancel participant
// @Description Cancel the practical booking of an order and release its seat
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param orderNumber path string true "Order number"
// @Success 200 {object} resdto.ParticipantCancelResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/participants/{orderNumber}/cancel [post]
func (h *ParticipantHandler) Cancel(c *gin.Context) {
	res, err := h.cmds.CancelParticipant(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		respondError(c, err, "Participant cancellation failed")
		return
	}
	c.JSON(http.StatusOK, resdto.ParticipantCancelResponse{
		OrderNumber: res.OrderNumber,
		Cancelled:   res.Cancelled,
	})
}
