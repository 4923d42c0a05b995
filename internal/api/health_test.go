package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
)

func TestHealthCheck(t *testing.T) {
	db := testhelpers.SetupSQLite(t)

	r := gin.New()
	r.GET("/health", NewHealthHandler(db).Check)

	w := do(r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	require.NoError(t, database.Close(db))

	w = do(r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, w.Body.String())
}
