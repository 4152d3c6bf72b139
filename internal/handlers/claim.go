package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/worksys/workforce-api/internal/dto"
	apierrors "github.com/worksys/workforce-api/internal/errors"
	"github.com/worksys/workforce-api/internal/middleware"
	"github.com/worksys/workforce-api/internal/models"
	"github.com/worksys/workforce-api/internal/repository"
	"github.com/worksys/workforce-api/internal/services"
	"github.com/worksys/workforce-api/internal/utils"
)

// ClaimHandler coordinates task claim HTTP handlers.
type ClaimHandler struct {
	claimService *services.ClaimService
}

// NewClaimHandler creates a new ClaimHandler.
func NewClaimHandler(claimService *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
	}
}

// SubmitClaim creates a pending claim for the caller. Sent as a multipart
// form so a screenshot can ride along.
func (h *ClaimHandler) SubmitClaim(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	hours, err := strconv.ParseInt(c.DefaultPostForm("hours", "0"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid hours")
		return
	}
	minutes, err := strconv.ParseInt(c.DefaultPostForm("minutes", "0"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid minutes")
		return
	}

	fh, err := c.FormFile("screenshot")
	if err != nil {
		fh = nil
	}
	screenshot, err := utils.EncodeAttachment(fh)
	if err != nil {
		apierrors.BadRequest(c, "Failed to read screenshot upload")
		return
	}

	claim, err := h.claimService.Submit(services.SubmitClaimInput{
		EmployeeID:     userID,
		Platform:       c.PostForm("platform"),
		AccountName:    c.PostForm("account_name"),
		TaskExternalID: c.PostForm("task_external_id"),
		Hours:          hours,
		Minutes:        minutes,
		Screenshot:     screenshot,
	})
	if err != nil {
		respondClaimError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToClaimDTO(*claim))
}

// ListClaims returns claims visible to the caller: managers see all and can
// filter by status and employee, employees only their own.
func (h *ClaimHandler) ListClaims(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	role, _ := middleware.GetUserRole(c)

	params := utils.GetPaginationParams(c)
	filter := repository.ClaimFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if role == models.RoleManager {
		if statusStr := c.Query("status"); statusStr != "" {
			status := models.ClaimStatus(statusStr)
			filter.Status = &status
		}
		if employeeIDStr := c.Query("employee_id"); employeeIDStr != "" {
			employeeID, err := strconv.ParseUint(employeeIDStr, 10, 64)
			if err != nil {
				apierrors.BadRequest(c, "Invalid employee_id")
				return
			}
			filter.EmployeeID = &employeeID
		}
	} else {
		filter.EmployeeID = &userID
	}

	claims, total, err := h.claimService.List(filter)
	if err != nil {
		respondClaimError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"claims": dto.ToClaimDTOs(claims),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// ApproveClaim marks a pending claim as approved.
func (h *ClaimHandler) ApproveClaim(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid claim ID")
		return
	}

	claim, err := h.claimService.Approve(id)
	if err != nil {
		respondClaimError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimDTO(*claim))
}

// RejectClaim marks a pending claim as rejected with the manager's reason.
func (h *ClaimHandler) RejectClaim(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid claim ID")
		return
	}

	type RejectRequest struct {
		Reason string `json:"reason"`
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	claim, err := h.claimService.Reject(id, req.Reason)
	if err != nil {
		respondClaimError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimDTO(*claim))
}

func respondClaimError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPlatformRequired),
		errors.Is(err, services.ErrTaskIDRequired),
		errors.Is(err, services.ErrInvalidTimeSpent):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDuplicateTask):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrClaimAlreadyResolved):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrClaimNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
