package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xolan/mood/internal/config"
	"github.com/xolan/mood/internal/insight"
)

type stubInsighter struct {
	text  string
	err   error
	calls int
}

func (s *stubInsighter) Insight(_ context.Context, scale int, description string) (string, error) {
	s.calls++
	return s.text, s.err
}

func newTestServer(ins insight.Insighter) *Server {
	return New(config.DefaultConfig().Server, ins, nil, "v0.0.0-test")
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, insight.Path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestInsight_OK(t *testing.T) {
	ins := &stubInsighter{text: "Great job!"}
	rec := post(t, newTestServer(ins).Handler(), `{"scale":8,"description":"productive day"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp insight.InsightResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Great job!", resp.Insight)
	assert.Equal(t, 1, ins.calls)
}

func TestInsight_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing scale", `{"description":"fine"}`},
		{"zero scale", `{"scale":0,"description":"fine"}`},
		{"missing description", `{"scale":5}`},
		{"empty description", `{"scale":5,"description":""}`},
		{"empty body", ``},
		{"not json", `scale=5`},
		{"wrong types", `{"scale":"five","description":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := &stubInsighter{text: "unused"}
			rec := post(t, newTestServer(ins).Handler(), tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp insight.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "Scale and description are required", resp.Error)
			assert.Zero(t, ins.calls, "upstream should not be called")
		})
	}
}

func TestInsight_UpstreamFailure(t *testing.T) {
	ins := &stubInsighter{err: &insight.RequestError{Status: 500, Message: insight.MsgFailed, Err: errors.New("secret upstream detail")}}
	rec := post(t, newTestServer(ins).Handler(), `{"scale":3,"description":"tired"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp insight.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Failed to get AI insight", resp.Error)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestInsight_PlainErrorIs500(t *testing.T) {
	rec := post(t, newTestServer(&stubInsighter{err: errors.New("boom")}).Handler(), `{"scale":3,"description":"tired"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestInsight_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(&stubInsighter{}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, insight.Path, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(&stubInsighter{}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "v0.0.0-test", resp.Version)
}

func TestInsight_RemoteClientRoundTrip(t *testing.T) {
	srv := httptest.NewServer(newTestServer(&stubInsighter{text: "Breathe."}).Handler())
	defer srv.Close()

	text, err := insight.NewRemoteClient(srv.URL, srv.Client()).Insight(context.Background(), 2, "anxious")
	require.NoError(t, err)
	assert.Equal(t, "Breathe.", text)

	_, err = insight.NewRemoteClient(srv.URL, srv.Client()).Insight(context.Background(), 0, "")
	var reqErr *insight.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadRequest, reqErr.Status)
	assert.Equal(t, insight.MsgInputRequired, reqErr.Message)
}
