package httpapi

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/growlog/internal/api"
	"github.com/dmitrijs2005/growlog/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(&fakeUsers{}, newFakePlants())

	listen, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, listen) }()

	resp, err := http.Get("http://" + listen.Addr().String() + api.PathPing)
	require.NoError(t, err)
	var ping api.PingResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ping))
	_ = resp.Body.Close()
	assert.Equal(t, "OK", ping.Status)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_BadAddress(t *testing.T) {
	s := NewHTTPServer("256.0.0.1:bad", logging.Nop{}, &fakeUsers{}, newFakePlants(), testSecret)
	assert.Error(t, s.Run(context.Background()))
}
