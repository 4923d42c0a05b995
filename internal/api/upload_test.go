package api

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-catalog/backend/internal/mocks"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

func TestServeImage(t *testing.T) {
	env := setupTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.images.Dir(), "42-leek.png"), []byte("leek"), 0o644))

	t.Run("existing file", func(t *testing.T) {
		w := do(env.router, http.MethodGet, "/uploads/42-leek.png", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "leek", w.Body.String())
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	})

	t.Run("head", func(t *testing.T) {
		w := do(env.router, http.MethodHead, "/uploads/42-leek.png", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "4", w.Header().Get("Content-Length"))
	})

	t.Run("missing file", func(t *testing.T) {
		w := do(env.router, http.MethodGet, "/uploads/nope.png", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("traversal", func(t *testing.T) {
		w := do(env.router, http.MethodGet, "/uploads/..%2Fsecret", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestServeImageStream(t *testing.T) {
	images := new(mocks.MockImageStore)
	images.On("Open", mock.Anything, "7-cake.jpg").Return(io.NopCloser(strings.NewReader("cake")), nil)
	images.On("Open", mock.Anything, "broken.jpg").Return(nil, errors.New("bucket unreachable"))
	images.On("Open", mock.Anything, "gone.jpg").Return(nil, service.ErrImageNotFound)

	r := newTestRouter(new(mocks.MockRecipeService), images)

	w := do(r, http.MethodGet, "/uploads/7-cake.jpg", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cake", w.Body.String())
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))

	w = do(r, http.MethodGet, "/uploads/broken.jpg", nil, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = do(r, http.MethodGet, "/uploads/gone.jpg", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
