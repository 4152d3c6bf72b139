package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/worksys/workforce-api/internal/dto"
	"github.com/worksys/workforce-api/internal/models"
	"github.com/worksys/workforce-api/internal/repository"
	"github.com/worksys/workforce-api/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type employeeTestEnv struct {
	db      *gorm.DB
	manager *models.User
	handler *EmployeeHandler
}

func setupEmployeeTestEnv(t *testing.T) employeeTestEnv {
	t.Helper()

	db := setupTestDB(t)
	manager := createUser(t, db, "boss", "supersecret", models.RoleManager)

	userRepo := repository.NewUserRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	employeeService := services.NewEmployeeService(userRepo)
	claimService := services.NewClaimService(claimRepo, userRepo)
	handler := NewEmployeeHandler(employeeService, claimService)

	return employeeTestEnv{
		db:      db,
		manager: manager,
		handler: handler,
	}
}

func (env employeeTestEnv) createEmployee(t *testing.T, w *httptest.ResponseRecorder, payload map[string]string) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c := newTestContext(t, w, env.manager.ID, models.RoleManager)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/employees", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	env.handler.CreateEmployee(c)
}

func TestEmployeeHandler_CreateGeneratesPassword(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	w := httptest.NewRecorder()
	env.createEmployee(t, w, map[string]string{"username": "worker"})

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Employee dto.UserDTO `json:"employee"`
		Password string      `json:"password"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "worker", response.Employee.Username)
	require.Equal(t, models.RoleEmployee, response.Employee.Role)
	require.Len(t, response.Password, 5)

	// The generated password must actually work
	var stored models.User
	require.NoError(t, env.db.First(&stored, response.Employee.ID).Error)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(response.Password)))
}

func TestEmployeeHandler_CreateWithSuppliedPassword(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	w := httptest.NewRecorder()
	env.createEmployee(t, w, map[string]string{
		"username": "worker",
		"password": "chosen-by-manager",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	_, exposed := response["password"]
	require.False(t, exposed, "manager-supplied password must not be echoed back")
}

func TestEmployeeHandler_CreateDuplicateUsername(t *testing.T) {
	env := setupEmployeeTestEnv(t)
	createUser(t, env.db, "worker", "supersecret", models.RoleEmployee)

	w := httptest.NewRecorder()
	env.createEmployee(t, w, map[string]string{"username": "worker"})

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestEmployeeHandler_DeleteCascades(t *testing.T) {
	env := setupEmployeeTestEnv(t)
	victim := createUser(t, env.db, "victim", "supersecret", models.RoleEmployee)
	survivor := createUser(t, env.db, "survivor", "supersecret", models.RoleEmployee)

	for i, employee := range []*models.User{victim, survivor} {
		require.NoError(t, env.db.Create(&models.WorkAccount{
			AccountName: fmt.Sprintf("acct-%d", i),
			Status:      models.AccountStatusAccepted,
			EmployeeID:  &employee.ID,
		}).Error)
		require.NoError(t, env.db.Create(&models.TaskClaim{
			EmployeeID:     employee.ID,
			Platform:       "Clickworker",
			TaskExternalID: fmt.Sprintf("task-%d", i),
			TimeSpentHours: decimal.NewFromInt(1),
			Status:         models.ClaimStatusPending,
		}).Error)
	}

	w := httptest.NewRecorder()
	c := newTestContext(t, w, env.manager.ID, models.RoleManager)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(victim.ID, 10)}}

	env.handler.DeleteEmployee(c)

	require.Equal(t, http.StatusOK, w.Code)

	// Unscoped: soft-deleted leftovers would still occupy the unique indexes
	var userCount, accountCount, claimCount int64
	env.db.Unscoped().Model(&models.User{}).Where("id = ?", victim.ID).Count(&userCount)
	env.db.Unscoped().Model(&models.WorkAccount{}).Where("employee_id = ?", victim.ID).Count(&accountCount)
	env.db.Unscoped().Model(&models.TaskClaim{}).Where("employee_id = ?", victim.ID).Count(&claimCount)
	require.Zero(t, userCount)
	require.Zero(t, accountCount)
	require.Zero(t, claimCount)

	// The other employee's data stays put
	env.db.Model(&models.WorkAccount{}).Where("employee_id = ?", survivor.ID).Count(&accountCount)
	env.db.Model(&models.TaskClaim{}).Where("employee_id = ?", survivor.ID).Count(&claimCount)
	require.EqualValues(t, 1, accountCount)
	require.EqualValues(t, 1, claimCount)
}

func TestEmployeeHandler_DeleteFreesUniqueKeys(t *testing.T) {
	env := setupEmployeeTestEnv(t)
	victim := createUser(t, env.db, "victim", "supersecret", models.RoleEmployee)
	survivor := createUser(t, env.db, "survivor", "supersecret", models.RoleEmployee)

	require.NoError(t, env.db.Create(&models.TaskClaim{
		EmployeeID:     victim.ID,
		Platform:       "Clickworker",
		TaskExternalID: "task-1",
		TimeSpentHours: decimal.NewFromInt(1),
		Status:         models.ClaimStatusPending,
	}).Error)

	w := httptest.NewRecorder()
	c := newTestContext(t, w, env.manager.ID, models.RoleManager)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(victim.ID, 10)}}
	env.handler.DeleteEmployee(c)
	require.Equal(t, http.StatusOK, w.Code)

	// The username is free again
	w = httptest.NewRecorder()
	env.createEmployee(t, w, map[string]string{"username": "victim"})
	require.Equal(t, http.StatusCreated, w.Code)

	// And the task can be claimed by someone else
	require.NoError(t, env.db.Create(&models.TaskClaim{
		EmployeeID:     survivor.ID,
		Platform:       "Clickworker",
		TaskExternalID: "task-1",
		TimeSpentHours: decimal.NewFromInt(2),
		Status:         models.ClaimStatusPending,
	}).Error)
}

func TestEmployeeHandler_CreateSoftDeletedUsernameConflict(t *testing.T) {
	env := setupEmployeeTestEnv(t)
	ghost := createUser(t, env.db, "worker", "supersecret", models.RoleEmployee)
	require.NoError(t, env.db.Delete(ghost).Error)

	// The soft-deleted row still occupies the username index; the create must
	// surface a conflict, not an internal error
	w := httptest.NewRecorder()
	env.createEmployee(t, w, map[string]string{"username": "worker"})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestEmployeeHandler_DeleteManagerRejected(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	w := httptest.NewRecorder()
	c := newTestContext(t, w, env.manager.ID, models.RoleManager)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(env.manager.ID, 10)}}

	env.handler.DeleteEmployee(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeHandler_GetHistory(t *testing.T) {
	env := setupEmployeeTestEnv(t)
	worker := createUser(t, env.db, "worker", "supersecret", models.RoleEmployee)

	half, err := decimal.NewFromString("1.5")
	require.NoError(t, err)
	claims := []models.TaskClaim{
		{EmployeeID: worker.ID, Platform: "Clickworker", TaskExternalID: "t-1", TimeSpentHours: half, Status: models.ClaimStatusPending},
		{EmployeeID: worker.ID, Platform: "Clickworker", TaskExternalID: "t-2", TimeSpentHours: decimal.NewFromInt(2), Status: models.ClaimStatusApproved},
	}
	for i := range claims {
		require.NoError(t, env.db.Create(&claims[i]).Error)
	}
	// A claim from two days ago must not show up
	old := models.TaskClaim{EmployeeID: worker.ID, Platform: "Clickworker", TaskExternalID: "t-old", TimeSpentHours: decimal.NewFromInt(4), Status: models.ClaimStatusApproved}
	require.NoError(t, env.db.Create(&old).Error)
	require.NoError(t, env.db.Model(&old).Update("submitted_at", time.Now().Add(-48*time.Hour)).Error)

	today := time.Now().Format("2006-01-02")
	w := httptest.NewRecorder()
	c := newTestContext(t, w, env.manager.ID, models.RoleManager)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(worker.ID, 10)}}
	c.Request = httptest.NewRequest(http.MethodGet, "/api/employees/"+strconv.FormatUint(worker.ID, 10)+"/history?date="+today, nil)

	env.handler.GetHistory(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Date       string          `json:"date"`
		Claims     []dto.ClaimDTO  `json:"claims"`
		TotalHours decimal.Decimal `json:"total_hours"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, today, response.Date)
	require.Len(t, response.Claims, 2)
	require.True(t, response.TotalHours.Equal(decimal.RequireFromString("3.5")))
}

func TestEmployeeHandler_GetHistoryUsesLocalDayBoundaries(t *testing.T) {
	env := setupEmployeeTestEnv(t)
	worker := createUser(t, env.db, "worker", "supersecret", models.RoleEmployee)

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	inWindow := models.TaskClaim{EmployeeID: worker.ID, Platform: "Clickworker", TaskExternalID: "t-in", TimeSpentHours: decimal.NewFromInt(1), Status: models.ClaimStatusPending}
	require.NoError(t, env.db.Create(&inWindow).Error)
	require.NoError(t, env.db.Model(&inWindow).Update("submitted_at", midnight.Add(30*time.Minute)).Error)

	beforeWindow := models.TaskClaim{EmployeeID: worker.ID, Platform: "Clickworker", TaskExternalID: "t-before", TimeSpentHours: decimal.NewFromInt(2), Status: models.ClaimStatusPending}
	require.NoError(t, env.db.Create(&beforeWindow).Error)
	require.NoError(t, env.db.Model(&beforeWindow).Update("submitted_at", midnight.Add(-30*time.Minute)).Error)

	w := httptest.NewRecorder()
	c := newTestContext(t, w, env.manager.ID, models.RoleManager)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(worker.ID, 10)}}
	c.Request = httptest.NewRequest(http.MethodGet, "/api/employees/history?date="+midnight.Format("2006-01-02"), nil)

	env.handler.GetHistory(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Claims []dto.ClaimDTO `json:"claims"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Claims, 1)
	require.Equal(t, "t-in", response.Claims[0].TaskExternalID)
}

func TestEmployeeHandler_GetHistoryUnknownEmployee(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	w := httptest.NewRecorder()
	c := newTestContext(t, w, env.manager.ID, models.RoleManager)
	c.Params = gin.Params{{Key: "id", Value: "9999"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/api/employees/9999/history", nil)

	env.handler.GetHistory(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
