package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Bobnog/Controle-Finaceiro/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHandler_ExportCSV(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testAPIConfig()
	defer func() { config.GlobalConfig = nil }()

	expectUserByID(mock, 1)

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "kind", "amount", "category", "description", "occurred_on", "created_at", "updated_at"}).
			AddRow(1, 1, "expense", 99.9, "mercado", "compras da semana", time.Now(), time.Now(), time.Now()))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/csv", NewExportHandler(cfg).ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv?start_date=2024-01-01&end_date=2024-12-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	// BOM 前缀保证 Excel 正确识别编码
	assert.True(t, strings.HasPrefix(w.Body.String(), "\xEF\xBB\xBF"))
	assert.Contains(t, w.Body.String(), "金额")
	assert.Contains(t, w.Body.String(), "mercado")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportCSV_MissingParams(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testAPIConfig()
	defer func() { config.GlobalConfig = nil }()

	expectUserByID(mock, 1)

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/csv", NewExportHandler(cfg).ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportJSON(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testAPIConfig()
	defer func() { config.GlobalConfig = nil }()

	expectUserByID(mock, 1)

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "kind", "amount", "category", "description", "occurred_on", "created_at", "updated_at"}).
			AddRow(1, 1, "income", 1200.0, "salario", "", time.Now(), time.Now(), time.Now()))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/json", NewExportHandler(cfg).ExportJSON)

	req := httptest.NewRequest("GET", "/export/json?start_date=2024-01-01&end_date=2024-12-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "salario")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportExcel(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testAPIConfig()
	defer func() { config.GlobalConfig = nil }()

	expectUserByID(mock, 1)

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "kind", "amount", "category", "description", "occurred_on", "created_at", "updated_at"}).
			AddRow(1, 1, "income", 1200.0, "salario", "", time.Now(), time.Now(), time.Now()).
			AddRow(2, 1, "expense", 200.0, "mercado", "", time.Now(), time.Now(), time.Now()))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/excel", NewExportHandler(cfg).ExportExcel)

	req := httptest.NewRequest("GET", "/export/excel?start_date=2024-01-01&end_date=2024-12-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	// xlsx 是 zip 容器，以 PK 开头
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_InvalidDate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testAPIConfig()
	defer func() { config.GlobalConfig = nil }()

	expectUserByID(mock, 1)

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/json", NewExportHandler(cfg).ExportJSON)

	req := httptest.NewRequest("GET", "/export/json?start_date=01-01-2024&end_date=2024-12-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
