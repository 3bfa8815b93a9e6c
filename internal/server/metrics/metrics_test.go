package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestUnaryInterceptor_CountsByCode(t *testing.T) {
	m := New()
	info := &grpc.UnaryServerInfo{FullMethod: "/veildiary.v1.DiaryService/Ping"}

	ok := func(ctx context.Context, req any) (any, error) { return "pong", nil }
	fail := func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.Unauthenticated, "not authenticated")
	}

	resp, err := m.UnaryInterceptor(context.Background(), nil, info, ok)
	require.NoError(t, err)
	assert.Equal(t, "pong", resp)
	_, _ = m.UnaryInterceptor(context.Background(), nil, info, ok)
	_, err = m.UnaryInterceptor(context.Background(), nil, info, fail)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rpcRequests.WithLabelValues(info.FullMethod, "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rpcRequests.WithLabelValues(info.FullMethod, "Unauthenticated")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.rpcDuration))
}

func TestEntryCreated(t *testing.T) {
	m := New()
	m.EntryCreated(true)
	m.EntryCreated(true)
	m.EntryCreated(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.entries.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.entries.WithLabelValues("false")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.EntryCreated(true) })
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.EntryCreated(true)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `veildiary_entries_created_total{anonymized="true"} 1`))
}

func TestServe_StopsOnCancel(t *testing.T) {
	m := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Serve(ctx, "127.0.0.1:0") }()

	cancel()
	assert.NoError(t, <-done)
}
