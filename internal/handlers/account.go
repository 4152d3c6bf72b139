package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/worksys/workforce-api/internal/dto"
	apierrors "github.com/worksys/workforce-api/internal/errors"
	"github.com/worksys/workforce-api/internal/middleware"
	"github.com/worksys/workforce-api/internal/models"
	"github.com/worksys/workforce-api/internal/services"
	"github.com/worksys/workforce-api/internal/utils"
)

// AccountHandler coordinates work account HTTP handlers.
type AccountHandler struct {
	accountService *services.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// AccountRequest is the JSON body shared by create and edit.
type AccountRequest struct {
	AccountName  string `json:"account_name" binding:"required"`
	LoginDetails string `json:"login_details"`
	BrowserType  string `json:"browser_type"`
}

// AssignRequest carries the target employee; null clears the owner.
type AssignRequest struct {
	EmployeeID *uint64 `json:"employee_id"`
}

// CreateAccount creates a new work account.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.accountService.Create(services.AccountInput{
		AccountName:  req.AccountName,
		LoginDetails: req.LoginDetails,
		BrowserType:  req.BrowserType,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountDTO(*account))
}

// ListAccounts returns accounts visible to the caller: managers see all,
// employees only their own.
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	role, _ := middleware.GetUserRole(c)

	var employeeID *uint64
	if role != models.RoleManager {
		employeeID = &userID
	}

	accounts, err := h.accountService.List(employeeID)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountDTOs(accounts)})
}

// UpdateAccount overwrites the descriptive fields of an account.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid account ID")
		return
	}

	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.accountService.Edit(id, services.AccountInput{
		AccountName:  req.AccountName,
		LoginDetails: req.LoginDetails,
		BrowserType:  req.BrowserType,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*account))
}

// DeleteAccount removes an account.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid account ID")
		return
	}

	if err := h.accountService.Delete(id); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account deleted successfully",
	})
}

// AssignAccount sets or clears the owner of an account.
func (h *AccountHandler) AssignAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid account ID")
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.accountService.Assign(id, req.EmployeeID)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*account))
}

// ReassignAccount moves an account to a new owner, forking completed accounts
// into a fresh row.
func (h *AccountHandler) ReassignAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid account ID")
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.accountService.Reassign(id, req.EmployeeID)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*account))
}

// UnassignAccount clears the owner of a single account.
func (h *AccountHandler) UnassignAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.accountService.Unassign(id)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*account))
}

// UnassignAllAccounts clears the owner on every owned account.
func (h *AccountHandler) UnassignAllAccounts(c *gin.Context) {
	count, err := h.accountService.UnassignAll()
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Accounts unassigned successfully",
		"unassigned": count,
	})
}

// AcceptAccount marks one of the caller's accounts as accepted, optionally
// recording the starting balance with a proof upload.
func (h *AccountHandler) AcceptAccount(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid account ID")
		return
	}

	capture, ok := parseEarningsCapture(c, "initial_earnings")
	if !ok {
		return
	}

	account, err := h.accountService.Accept(userID, id, capture)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*account))
}

// PauseAccount marks one of the caller's accounts as paused.
func (h *AccountHandler) PauseAccount(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.accountService.Pause(userID, id)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*account))
}

// LeaveAccount marks one of the caller's accounts as left, optionally
// recording the final balance. The response includes the session payout.
func (h *AccountHandler) LeaveAccount(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid account ID")
		return
	}

	capture, ok := parseEarningsCapture(c, "final_earnings")
	if !ok {
		return
	}

	account, payout, err := h.accountService.Leave(userID, id, capture)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account":  dto.ToAccountDTO(*account),
		"earnings": payout,
	})
}

// DismissUnpause clears the recently-unpaused notification flag.
func (h *AccountHandler) DismissUnpause(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.accountService.DismissUnpauseNotification(id)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*account))
}

// parseEarningsCapture reads an optional earnings amount plus proof upload
// from a multipart form. A missing amount means no capture.
func parseEarningsCapture(c *gin.Context, amountField string) (services.EarningsCapture, bool) {
	amountStr := c.PostForm(amountField)
	if amountStr == "" {
		return services.EarningsCapture{}, true
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil || amount.IsNegative() {
		apierrors.BadRequest(c, "Invalid earnings amount")
		return services.EarningsCapture{}, false
	}

	var proof string
	fh, err := c.FormFile("proof")
	if err != nil {
		// No file attached; store the placeholder.
		fh = nil
	}
	proof, err = utils.EncodeAttachment(fh)
	if err != nil {
		apierrors.BadRequest(c, "Failed to read proof upload")
		return services.EarningsCapture{}, false
	}

	return services.EarningsCapture{Amount: &amount, Proof: proof}, true
}

func respondAccountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAccountNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAccountNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidStatusChange):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
