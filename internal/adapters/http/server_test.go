package http_test

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapthttp "github.com/jsamuelsen11/go-result/internal/adapters/http"
	"github.com/jsamuelsen11/go-result/internal/platform/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// freePort asks the kernel for an unused TCP port.
func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestNewServer_NilLogger(t *testing.T) {
	t.Parallel()

	s := adapthttp.NewServer(config.ServerConfig{Host: "127.0.0.1"}, http.NotFoundHandler(), nil)

	assert.NotNil(t, s)
}

func TestServer_Addr(t *testing.T) {
	t.Parallel()

	s := adapthttp.NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 9090}, http.NotFoundHandler(), discardLogger())

	assert.Equal(t, "127.0.0.1:9090", s.Addr())
}

func TestServer_ServesUntilShutdown(t *testing.T) {
	t.Parallel()

	port := freePort(t)
	cfg := config.ServerConfig{
		Host:         "127.0.0.1",
		Port:         port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
	s := adapthttp.NewServer(cfg, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}), discardLogger())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	url := "http://127.0.0.1:" + strconv.Itoa(port) + "/"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx // test probe
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "ok"
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, s.Shutdown(t.Context()))
	assert.NoError(t, <-errCh)
}

func TestServer_StartFailsOnBusyPort(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	port := l.Addr().(*net.TCPAddr).Port
	s := adapthttp.NewServer(config.ServerConfig{Host: "127.0.0.1", Port: port}, http.NotFoundHandler(), discardLogger())

	assert.Error(t, s.Start())
}
