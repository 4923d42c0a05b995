package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	images *service.LocalImageStore
}

// setupTestEnv wires the handlers to a sqlite database and a temporary upload dir
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testhelpers.SetupSQLite(t)
	images, err := service.NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	return &testEnv{
		router: newTestRouter(service.NewRecipeService(db), images),
		db:     db,
		images: images,
	}
}

func newTestRouter(recipes service.IRecipeService, images service.ImageStore) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery())
	NewUploadHandler(images).RegisterRoutes(r)
	NewRecipeHandler(recipes, images).RegisterRoutes(r.Group("/api"))
	return r
}

type upload struct {
	name    string
	content []byte
}

// multipartBody encodes fields and optional files under the "image" field
func multipartBody(t *testing.T, fields map[string]string, files ...upload) (io.Reader, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(imageField, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func do(r http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(t *testing.T, r http.Handler, fields map[string]string, files ...upload) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartBody(t, fields, files...)
	return do(r, http.MethodPost, "/api/recipes", body, ct)
}

func putForm(t *testing.T, r http.Handler, id string, fields map[string]string, files ...upload) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartBody(t, fields, files...)
	return do(r, http.MethodPut, "/api/recipes/"+id, body, ct)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func uploadCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}
