package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/worksys/workforce-api/internal/constants"
	"github.com/worksys/workforce-api/internal/dto"
	"github.com/worksys/workforce-api/internal/models"
	"github.com/worksys/workforce-api/internal/repository"
	"github.com/worksys/workforce-api/internal/services"
	"gorm.io/gorm"
)

type claimTestEnv struct {
	db      *gorm.DB
	manager *models.User
	worker  *models.User
	handler *ClaimHandler
}

func setupClaimTestEnv(t *testing.T) claimTestEnv {
	t.Helper()

	db := setupTestDB(t)
	manager := createUser(t, db, "boss", "supersecret", models.RoleManager)
	worker := createUser(t, db, "worker", "supersecret", models.RoleEmployee)

	userRepo := repository.NewUserRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	claimService := services.NewClaimService(claimRepo, userRepo)
	handler := NewClaimHandler(claimService)

	return claimTestEnv{
		db:      db,
		manager: manager,
		worker:  worker,
		handler: handler,
	}
}

func (env claimTestEnv) submit(t *testing.T, w *httptest.ResponseRecorder, form url.Values) {
	t.Helper()

	c := newTestContext(t, w, env.worker.ID, models.RoleEmployee)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/claims", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	env.handler.SubmitClaim(c)
}

func claimForm(taskID string) url.Values {
	form := url.Values{}
	form.Set("platform", "Clickworker")
	form.Set("account_name", "survey-profile-1")
	form.Set("task_external_id", taskID)
	form.Set("hours", "1")
	form.Set("minutes", "30")
	return form
}

func TestClaimHandler_Submit(t *testing.T) {
	env := setupClaimTestEnv(t)

	w := httptest.NewRecorder()
	env.submit(t, w, claimForm("task-1"))

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ClaimDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.ClaimStatusPending, response.Status)
	require.True(t, response.TimeSpentHours.Equal(decimal.RequireFromString("1.5")))

	var stored models.TaskClaim
	require.NoError(t, env.db.First(&stored, response.ID).Error)
	require.Equal(t, env.worker.ID, stored.EmployeeID)
	require.Equal(t, constants.PlaceholderScreenshot, stored.Screenshot)
}

func TestClaimHandler_SubmitDuplicateTask(t *testing.T) {
	env := setupClaimTestEnv(t)

	w := httptest.NewRecorder()
	env.submit(t, w, claimForm("task-1"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	env.submit(t, w, claimForm("task-1"))
	require.Equal(t, http.StatusConflict, w.Code)

	var count int64
	env.db.Model(&models.TaskClaim{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestClaimHandler_SubmitSameTaskOtherPlatform(t *testing.T) {
	env := setupClaimTestEnv(t)

	w := httptest.NewRecorder()
	env.submit(t, w, claimForm("task-1"))
	require.Equal(t, http.StatusCreated, w.Code)

	form := claimForm("task-1")
	form.Set("platform", "Appen")
	w = httptest.NewRecorder()
	env.submit(t, w, form)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestClaimHandler_SubmitZeroTime(t *testing.T) {
	env := setupClaimTestEnv(t)

	form := claimForm("task-1")
	form.Set("hours", "0")
	form.Set("minutes", "0")
	w := httptest.NewRecorder()
	env.submit(t, w, form)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClaimHandler_ApproveAndReapprove(t *testing.T) {
	env := setupClaimTestEnv(t)

	w := httptest.NewRecorder()
	env.submit(t, w, claimForm("task-1"))
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.ClaimDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	c := newTestContext(t, w, env.manager.ID, models.RoleManager)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(created.ID, 10)}}
	env.handler.ApproveClaim(c)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.TaskClaim
	require.NoError(t, env.db.First(&stored, created.ID).Error)
	require.Equal(t, models.ClaimStatusApproved, stored.Status)

	// A resolved claim cannot be resolved again
	w = httptest.NewRecorder()
	c = newTestContext(t, w, env.manager.ID, models.RoleManager)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(created.ID, 10)}}
	env.handler.ApproveClaim(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestClaimHandler_RejectStoresReason(t *testing.T) {
	env := setupClaimTestEnv(t)

	w := httptest.NewRecorder()
	env.submit(t, w, claimForm("task-1"))
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.ClaimDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	body, err := json.Marshal(map[string]string{"reason": "screenshot unreadable"})
	require.NoError(t, err)

	w = httptest.NewRecorder()
	c := newTestContext(t, w, env.manager.ID, models.RoleManager)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(created.ID, 10)}}
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	env.handler.RejectClaim(c)

	require.Equal(t, http.StatusOK, w.Code)

	var stored models.TaskClaim
	require.NoError(t, env.db.First(&stored, created.ID).Error)
	require.Equal(t, models.ClaimStatusRejected, stored.Status)
	require.Equal(t, "screenshot unreadable", stored.ManagerNotes)
}

func TestClaimHandler_ListScopedByRole(t *testing.T) {
	env := setupClaimTestEnv(t)
	other := createUser(t, env.db, "other", "supersecret", models.RoleEmployee)

	claims := []models.TaskClaim{
		{EmployeeID: env.worker.ID, Platform: "Clickworker", TaskExternalID: "t-1", TimeSpentHours: decimal.NewFromInt(1), Status: models.ClaimStatusPending},
		{EmployeeID: other.ID, Platform: "Clickworker", TaskExternalID: "t-2", TimeSpentHours: decimal.NewFromInt(2), Status: models.ClaimStatusApproved},
	}
	for i := range claims {
		require.NoError(t, env.db.Create(&claims[i]).Error)
	}

	type listResponse struct {
		Claims []dto.ClaimDTO `json:"claims"`
	}

	// Employee sees only their own claims
	w := httptest.NewRecorder()
	c := newTestContext(t, w, env.worker.ID, models.RoleEmployee)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/claims", nil)
	env.handler.ListClaims(c)
	require.Equal(t, http.StatusOK, w.Code)
	var workerView listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &workerView))
	require.Len(t, workerView.Claims, 1)
	require.Equal(t, env.worker.ID, workerView.Claims[0].EmployeeID)

	// Manager sees everything and can filter by status
	w = httptest.NewRecorder()
	c = newTestContext(t, w, env.manager.ID, models.RoleManager)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/claims", nil)
	env.handler.ListClaims(c)
	require.Equal(t, http.StatusOK, w.Code)
	var managerView listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &managerView))
	require.Len(t, managerView.Claims, 2)

	w = httptest.NewRecorder()
	c = newTestContext(t, w, env.manager.ID, models.RoleManager)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/claims?status=Pending", nil)
	env.handler.ListClaims(c)
	require.Equal(t, http.StatusOK, w.Code)
	var pendingView listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pendingView))
	require.Len(t, pendingView.Claims, 1)
	require.Equal(t, models.ClaimStatusPending, pendingView.Claims[0].Status)
}
