package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/Bobnog/Controle-Finaceiro/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler_GetSummary(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testAPIConfig()
	defer func() { config.GlobalConfig = nil }()

	expectUserByID(mock, 1)

	// 收入、支出、未支付账单三次聚合查询
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `transactions`").
		WithArgs(int64(1), "income", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(500.0))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `transactions`").
		WithArgs(int64(1), "expense", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(200.0))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `invoices`").
		WithArgs(int64(1), false, 3, 2024).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(800.0))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/dashboard", NewDashboardHandler(cfg).GetSummary)

	req := httptest.NewRequest("GET", "/dashboard?month=3&year=2024", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 3500.0, data["total_income"])
	assert.Equal(t, 200.0, data["total_expense"])
	assert.Equal(t, 800.0, data["unpaid_invoices"])
	assert.Equal(t, 3300.0, data["current_balance"])
	assert.Equal(t, 2500.0, data["debt_scoreboard"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardHandler_GetSummary_InvalidMonth(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testAPIConfig()
	defer func() { config.GlobalConfig = nil }()

	expectUserByID(mock, 1)

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/dashboard", NewDashboardHandler(cfg).GetSummary)

	req := httptest.NewRequest("GET", "/dashboard?month=13&year=2024", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
