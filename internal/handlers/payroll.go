package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/worksys/workforce-api/internal/dto"
	apierrors "github.com/worksys/workforce-api/internal/errors"
	"github.com/worksys/workforce-api/internal/services"
)

// PayrollHandler coordinates payroll HTTP handlers.
type PayrollHandler struct {
	payrollService *services.PayrollService
}

// NewPayrollHandler creates a new PayrollHandler.
func NewPayrollHandler(payrollService *services.PayrollService) *PayrollHandler {
	return &PayrollHandler{
		payrollService: payrollService,
	}
}

// GetSummary returns pending payouts grouped by employee.
func (h *PayrollHandler) GetSummary(c *gin.Context) {
	summary, err := h.payrollService.Summary()
	if err != nil {
		respondPayrollError(c, err)
		return
	}

	groups := make([]dto.PayrollEmployeeDTO, len(summary))
	for i, group := range summary {
		groups[i] = dto.ToPayrollEmployeeDTO(group)
	}

	c.JSON(http.StatusOK, gin.H{"payroll": groups})
}

// MarkPaid settles all pending payouts for one employee.
func (h *PayrollHandler) MarkPaid(c *gin.Context) {
	type MarkPaidRequest struct {
		EmployeeID uint64 `json:"employee_id" binding:"required"`
	}

	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	count, err := h.payrollService.MarkPaid(req.EmployeeID)
	if err != nil {
		respondPayrollError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payout settled successfully",
		"settled": count,
	})
}

func respondPayrollError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
