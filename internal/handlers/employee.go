package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/worksys/workforce-api/internal/dto"
	apierrors "github.com/worksys/workforce-api/internal/errors"
	"github.com/worksys/workforce-api/internal/services"
)

// EmployeeHandler coordinates employee management HTTP handlers.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
	claimService    *services.ClaimService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService *services.EmployeeService, claimService *services.ClaimService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		claimService:    claimService,
	}
}

// CreateEmployee registers a new employee account. When no password is sent, a
// random one is generated and returned once in the response.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	type CreateEmployeeRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password"`
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, generated, err := h.employeeService.CreateEmployee(services.CreateEmployeeInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	resp := gin.H{"employee": dto.ToUserDTO(*employee)}
	if generated != "" {
		resp["password"] = generated
	}

	c.JSON(http.StatusCreated, resp)
}

// ListEmployees returns all employee accounts.
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees, err := h.employeeService.ListEmployees()
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	dtos := make([]dto.UserDTO, len(employees))
	for i, employee := range employees {
		dtos[i] = dto.ToUserDTO(employee)
	}

	c.JSON(http.StatusOK, gin.H{"employees": dtos})
}

// DeleteEmployee removes an employee together with their claims and accounts.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid employee ID")
		return
	}

	if err := h.employeeService.DeleteEmployee(id); err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Employee deleted successfully",
	})
}

// GetHistory returns one employee's claims for a single day with total hours.
// The day defaults to today and is sent as ?date=YYYY-MM-DD.
func (h *EmployeeHandler) GetHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid employee ID")
		return
	}

	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		// Claims are stamped in server-local time, so the day window must be
		// local midnight, not UTC midnight.
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	claims, totalHours, err := h.claimService.HistoryForDay(id, day)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":        day.Format("2006-01-02"),
		"claims":      dto.ToClaimDTOs(claims),
		"total_hours": totalHours,
	})
}

func respondEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotAnEmployee):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
