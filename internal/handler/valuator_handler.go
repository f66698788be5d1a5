package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/pkg/response"
)

type valuatorDashboardProvider interface {
	Valuator(ctx context.Context, actor *models.Principal) (*dto.ValuatorDashboard, error)
}

// ValuatorHandler serves the valuator dashboard.
type ValuatorHandler struct {
	dashboard valuatorDashboardProvider
}

// NewValuatorHandler constructs the handler.
func NewValuatorHandler(dashboard valuatorDashboardProvider) *ValuatorHandler {
	return &ValuatorHandler{dashboard: dashboard}
}

// Dashboard godoc
// @Summary Valuator dashboard
// @Description Answer sheets awaiting evaluation and results awaiting approval
// @Tags Valuator
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /valuator/dashboard [get]
func (h *ValuatorHandler) Dashboard(c *gin.Context) {
	res, err := h.dashboard.Valuator(c.Request.Context(), principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
