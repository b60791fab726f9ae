package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aelexs/timepal/internal/domain"
	"github.com/aelexs/timepal/internal/server"
	"github.com/aelexs/timepal/pkg/protocol"
	"github.com/aelexs/timepal/pkg/timepal"
	"github.com/aelexs/timepal/pkg/timepal/timepaltest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// running is a server started on a loopback listener.
type running struct {
	base   string
	client *http.Client
	cancel context.CancelFunc
	done   chan error
}

func startServer(t *testing.T, opts ...timepal.Option) *running {
	t.Helper()
	ln, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	s := &running{
		base:   "http://" + ln.Addr().String(),
		client: &http.Client{Timeout: time.Second},
		cancel: cancel,
		done:   make(chan error, 1),
	}
	t.Cleanup(s.client.CloseIdleConnections)

	params := server.Params{Name: "timepald-test", Version: "0.0.1", Options: opts}
	go func() { s.done <- server.Run(ctx, params, ln) }()

	require.Eventually(t, func() bool { return s.status(t, "/healthz") == http.StatusOK },
		5*time.Second, 50*time.Millisecond, "server never became healthy")
	return s
}

// get fetches path; a transport error yields status 0.
func (s *running) get(t *testing.T, path string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, s.base+path, nil)
	require.NoError(t, err)
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

func (s *running) status(t *testing.T, path string) int {
	code, _ := s.get(t, path)
	return code
}

// stop cancels the run context and waits for Run to return.
func (s *running) stop(t *testing.T) error {
	t.Helper()
	s.cancel()
	select {
	case err := <-s.done:
		return err
	case <-time.After(domain.GracefulShutdownTimeout + 5*time.Second):
		t.Fatal("shutdown did not complete within budget")
		return nil
	}
}

func TestRun_GracefulShutdown(t *testing.T) {
	s := startServer(t)

	start := time.Now()
	require.NoError(t, s.stop(t))

	assert.Less(t, time.Since(start), domain.GracefulShutdownTimeout)
}

func TestRun_HealthReports503WhileDraining(t *testing.T) {
	s := startServer(t)

	s.cancel()

	assert.Eventually(t, func() bool {
		return s.status(t, "/healthz") == http.StatusServiceUnavailable
	}, domain.ShutdownDrainDelay, 20*time.Millisecond)
	require.NoError(t, <-s.done)
}

func TestRun_ServesFacadeWithConfiguredDefaults(t *testing.T) {
	t.Setenv("TIMEPAL_TIME_DEFAULT_OFFSET", "+05:30")
	t.Setenv("TIMEPAL_TIME_DEFAULT_PATTERN", "yyyy-MM-dd HH:mm XXX")
	clock := timepaltest.NewFakeClock(time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC))

	s := startServer(t, timepal.WithClock(clock))

	code, body := s.get(t, "/v1/now")
	require.Equal(t, http.StatusOK, code, string(body))
	var got protocol.NowResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "2024-03-05 19:37 +05:30", got.Text)
	assert.Equal(t, "+05:30", got.Offset)
	assert.Equal(t, "yyyy-MM-dd HH:mm XXX", got.Pattern)

	require.NoError(t, s.stop(t))
}

func TestRun_ServesOperationalEndpoints(t *testing.T) {
	s := startServer(t)

	var health protocol.Health
	code, body := s.get(t, "/healthz")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, protocol.Health{Status: "healthy", Service: "timepald-test"}, health)

	assert.Equal(t, http.StatusOK, s.status(t, "/metrics"))
	assert.Equal(t, http.StatusOK, s.status(t, "/openapi.json"))

	require.NoError(t, s.stop(t))
}

func TestRun_RejectsInvalidDefaults(t *testing.T) {
	t.Setenv("TIMEPAL_TIME_DEFAULT_PATTERN", "yyyy-qq")
	ln, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	err = server.Run(context.Background(), server.Params{Name: "timepald-test"}, ln)

	assert.ErrorIs(t, err, timepal.ErrMalformedPattern)
}
