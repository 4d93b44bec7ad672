package api

import (
	"net/http"
	"time"

	reqdto "course-checkout/internal/handler/dto/request"
	resdto "course-checkout/internal/handler/dto/response"
	"course-checkout/internal/handler/httperr"
	"course-checkout/internal/handler/middleware"
	"course-checkout/internal/pkg/cookie"
	"course-checkout/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	cmds     commands.CheckoutCommands
	tokenTTL time.Duration
}

func NewCheckoutHandler(cmds commands.CheckoutCommands, tokenTTL time.Duration) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds, tokenTTL: tokenTTL}
}

// @Summary Start checkout
// @Description Create a pending order and a hosted payment session
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/checkout [post]
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", httperr.BindingDetail(err))
		return
	}

	var authUserID *uuid.UUID
	if id, ok := middleware.GetUserID(c); ok {
		authUserID = &id
	}

	result, err := h.cmds.Checkout(c.Request.Context(), req.ToInput(authUserID))
	if err != nil {
		respondError(c, err, "Checkout failed")
		return
	}

	if result.Token != "" {
		cookie.SetAccessToken(c, result.Token, h.tokenTTL)
	}
	c.Header("Location", "/api/orders/"+result.OrderNumber)
	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}

// @Summary Verify checkout session
// @Description Return the payment status of a session and the order behind it
// @Tags checkout
// @Produce json
// @Param sessionId path string true "Checkout session id"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/checkout/sessions/{sessionId} [get]
func (h *CheckoutHandler) VerifySession(c *gin.Context) {
	v, err := h.cmds.VerifySession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err, "Session verification failed")
		return
	}
	resp, err := resdto.FromSessionVerification(v)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render order", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
