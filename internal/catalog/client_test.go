package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClientSearch(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		require.Equal(t, "/volumes", r.URL.Path)
		require.Equal(t, "dune", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalItems":1,"items":[{"id":"vol1","volumeInfo":{"title":"Dune","authors":["Frank Herbert"],"pageCount":412}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second)
	volumes, err := client.Search(context.Background(), "dune", 5)
	require.NoError(t, err)
	require.Len(t, volumes, 1)
	require.Equal(t, "vol1", volumes[0].ID)
	require.Equal(t, "Dune", volumes[0].VolumeInfo.Title)
	require.Equal(t, []string{"Frank Herbert"}, volumes[0].VolumeInfo.Authors)
	require.EqualValues(t, 1, hits.Load())
}

func TestClientSearchEmptyQuery(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "", time.Second)
	_, err := client.Search(context.Background(), "", 5)
	require.Error(t, err)
}

func TestCachedClientSearchHitsOnce(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalItems":0,"items":[]}`))
	}))
	defer server.Close()

	cached, err := NewCachedClient(NewClient(server.URL, "", time.Second), 8, time.Minute)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := cached.Search(context.Background(), "golang", 10)
		require.NoError(t, err)
	}
	require.EqualValues(t, 1, hits.Load())

	_, err = cached.Search(context.Background(), "golang", 20)
	require.NoError(t, err)
	require.EqualValues(t, 2, hits.Load())
}

func TestCachedClientExpiry(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalItems":0,"items":[]}`))
	}))
	defer server.Close()

	cached, err := NewCachedClient(NewClient(server.URL, "", time.Second), 8, time.Minute)
	require.NoError(t, err)

	current := time.Now()
	cached.now = func() time.Time { return current }

	_, err = cached.Search(context.Background(), "golang", 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, hits.Load())

	current = current.Add(2 * time.Minute)
	_, err = cached.Search(context.Background(), "golang", 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, hits.Load())
}
