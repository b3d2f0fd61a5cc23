package metadata

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/drake/tvtrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func testClient(rt roundTripFunc) *Client {
	return NewClient("https://example.test", &http.Client{Transport: rt}, nil)
}

func TestResolveReturnsEpisode(t *testing.T) {
	var requested string
	client := testClient(func(req *http.Request) (*http.Response, error) {
		requested = req.URL.String()
		return jsonResponse(http.StatusOK,
			`{"id":4952,"name":"The Winds of Winter","season":6,"number":10,"airstamp":"2016-06-27T01:00:00+00:00","runtime":69}`), nil
	})

	info, err := client.Resolve(context.Background(), 82, 6, 10)
	require.NoError(t, err)
	require.NotNil(t, info)

	assert.Equal(t, "https://example.test/shows/82/episodebynumber?season=6&number=10", requested)
	assert.Equal(t, uint32(4952), info.ID)
	assert.Equal(t, "The Winds of Winter", info.Name)
	assert.Equal(t, uint32(6), info.Season)
	assert.Equal(t, uint32(10), info.Number)
	assert.Equal(t, 69, info.Runtime)
	require.NotNil(t, info.Airstamp)

	watchable, known := client.Watchable(info)
	assert.True(t, known)
	assert.True(t, watchable)
}

func TestResolveNotFound(t *testing.T) {
	attempts := 0
	client := testClient(func(req *http.Request) (*http.Response, error) {
		attempts++
		return jsonResponse(http.StatusNotFound, `{"name":"Not Found"}`), nil
	})

	info, err := client.Resolve(context.Background(), 82, 99, 1)
	require.NoError(t, err)
	assert.Nil(t, info)
	// 404 is a definitive answer, not worth retrying.
	assert.Equal(t, 1, attempts)
}

func TestResolveRetriesServerError(t *testing.T) {
	attempts := 0
	client := testClient(func(req *http.Request) (*http.Response, error) {
		attempts++
		if attempts < 3 {
			return jsonResponse(http.StatusInternalServerError, `boom`), nil
		}
		return jsonResponse(http.StatusOK,
			`{"id":1,"name":"Pilot","season":1,"number":1,"airstamp":"2010-01-01T01:00:00+00:00"}`), nil
	})

	info, err := client.Resolve(context.Background(), 82, 1, 1)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, 3, attempts)
}

func TestResolveGivesUpAfterRetries(t *testing.T) {
	attempts := 0
	client := testClient(func(req *http.Request) (*http.Response, error) {
		attempts++
		return jsonResponse(http.StatusInternalServerError, `boom`), nil
	})

	_, err := client.Resolve(context.Background(), 82, 1, 1)
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWatchableFutureEpisode(t *testing.T) {
	client := NewClient("", nil, nil)
	airstamp := time.Now().Add(48 * time.Hour)

	watchable, known := client.Watchable(&domain.EpisodeInfo{Airstamp: &airstamp})
	assert.True(t, known)
	assert.False(t, watchable)
}

func TestWatchableUndeterminable(t *testing.T) {
	client := NewClient("", nil, nil)

	watchable, known := client.Watchable(&domain.EpisodeInfo{})
	assert.False(t, known)
	assert.False(t, watchable)

	watchable, known = client.Watchable(nil)
	assert.False(t, known)
	assert.False(t, watchable)
}

func TestResolveUnparseableAirstamp(t *testing.T) {
	client := testClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK,
			`{"id":1,"name":"Pilot","season":1,"number":1,"airstamp":"soon"}`), nil
	})

	info, err := client.Resolve(context.Background(), 82, 1, 1)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Nil(t, info.Airstamp)

	_, known := client.Watchable(info)
	assert.False(t, known)
}
