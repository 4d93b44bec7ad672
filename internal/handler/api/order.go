package api

import (
	"net/http"

	resdto "course-checkout/internal/handler/dto/response"
	"course-checkout/internal/handler/httperr"
	"course-checkout/internal/handler/middleware"
	"course-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	q queries.OrderQueries
}

func NewOrderHandler(q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{q: q}
}

// @Summary Get order
// @Description Get an order of the authenticated buyer; admins can read any order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param orderNumber path string true "Order number"
// @Success 200 {object} resdto.OrderResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/orders/{orderNumber} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	view, err := h.q.GetOrder(c.Request.Context(), viewer, c.Param("orderNumber"))
	if err != nil {
		respondError(c, err, "Failed to load order")
		return
	}
	resp, err := resdto.FromOrderView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render order", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
