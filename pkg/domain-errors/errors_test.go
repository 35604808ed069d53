package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodePropagatesThroughWrapping(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(cause, CodeUpstreamUnavailable, "upstream request failed")

	assert.True(t, Is(err, CodeUpstreamUnavailable))
	assert.False(t, Is(err, CodeNotFound))
	assert.ErrorIs(t, err, cause)

	// A further fmt wrap keeps the code reachable.
	outer := fmt.Errorf("ingestion: %w", err)
	assert.True(t, Is(outer, CodeUpstreamUnavailable))
	assert.Equal(t, CodeUpstreamUnavailable, CodeOf(outer))
}

func TestMessageOfHidesUncodedDetail(t *testing.T) {
	assert.Equal(t, "internal server error", MessageOf(errors.New("pq: password authentication failed")))
	assert.Equal(t, "no data found", MessageOf(New(CodeNotFound, "no data found")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(CodeBadRequest))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(CodeUpstreamUnavailable))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(CodeStorageFailure))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Code("unknown")))
}
