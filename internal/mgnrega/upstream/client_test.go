package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/Mayank06R/our-voice-rights/pkg/domain-errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, "test-key", "resource-123", WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c, srv
}

func TestFetchBuildsExpectedRequest(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"records":[]}`))
	})

	records, err := c.Fetch(context.Background(), 250)
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.Equal(t, "/resource/resource-123", gotPath)
	assert.Equal(t, []string{"test-key"}, gotQuery["api-key"])
	assert.Equal(t, []string{"json"}, gotQuery["format"])
	assert.Equal(t, []string{"250"}, gotQuery["limit"])
}

func TestFetchDecodesRecords(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"records":[{"state_name":"MAHARASHTRA","district_name":"Pune","Wages":"1000"}]}`))
	})

	records, err := c.Fetch(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "MAHARASHTRA", records[0]["state_name"])
	assert.Equal(t, "1000", records[0]["Wages"])
}

func TestFetchZeroRecordsIsNotAnError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"records":[]}`))
	})

	records, err := c.Fetch(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchNonSuccessStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Fetch(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUpstreamUnavailable))
}

func TestFetchMissingRecordsField(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	_, err := c.Fetch(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUpstreamUnavailable))
}

func TestFetchUnparseablePayload(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})

	_, err := c.Fetch(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUpstreamUnavailable))
}

func TestNewRequiresConfiguration(t *testing.T) {
	_, err := New("", "key", "resource")
	assert.Error(t, err)

	_, err = New("https://api.data.gov.in", "key", "")
	assert.Error(t, err)
}
