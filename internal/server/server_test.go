package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-catalog/backend/config"
)

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return strconv.Itoa(port)
}

func TestNew(t *testing.T) {
	cfg := &config.Config{ServerHost: "localhost", ServerPort: "5000"}
	srv := New(cfg, http.NotFoundHandler())
	assert.Equal(t, "localhost:5000", srv.Addr())
}

func TestStartAndShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	cfg := &config.Config{ServerHost: "127.0.0.1", ServerPort: freePort(t)}
	srv := New(cfg, router)

	errChan := make(chan error, 1)
	go func() { errChan <- srv.Start() }()

	url := fmt.Sprintf("http://%s/health", srv.Addr())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestStartReportsListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	port := strconv.Itoa(l.Addr().(*net.TCPAddr).Port)
	srv := New(&config.Config{ServerHost: "127.0.0.1", ServerPort: port}, http.NotFoundHandler())
	assert.Error(t, srv.Start())
}
