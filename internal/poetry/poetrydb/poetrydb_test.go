package poetrydb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poeit/seedgen/internal/poetry"
)

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	r := chi.NewRouter()
	r.Get("/poemcount,linecount/{count};{lines}/lines", h)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv
}

func TestClient_FetchPoems(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", chi.URLParam(r, "count"))
		assert.Equal(t, "2", chi.URLParam(r, "lines"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"lines": ["Roses are red", "violets are blue"]},
			{"lines": ["It's a poem", "with a 'quote'"]}
		]`))
	})

	c := New(srv.URL+"/", time.Second, 0, 0)

	poems, err := c.FetchPoems(context.Background(), 20, 2)
	require.NoError(t, err)
	require.Equal(t, []string{
		"Roses are red\nviolets are blue",
		"It's a poem\nwith a 'quote'",
	}, poems)
}

func TestClient_FetchPoems_NotFound(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":404,"reason":"Not found"}`))
	})

	c := New(srv.URL, time.Second, 0, 0)

	poems, err := c.FetchPoems(context.Background(), 20, 9)
	require.NoError(t, err)
	require.Empty(t, poems)
}

func TestClient_FetchPoems_Errors(t *testing.T) {
	tt := []struct {
		name   string
		status int
		body   string
	}{
		{
			name:   "bad_request",
			status: http.StatusBadRequest,
			body:   `[]`,
		},
		{
			name:   "malformed",
			status: http.StatusOK,
			body:   `[{"lines": "not an array"}]`,
		},
		{
			name:   "not_json",
			status: http.StatusOK,
			body:   `<html></html>`,
		},
		{
			name:   "empty",
			status: http.StatusOK,
			body:   ``,
		},
		{
			name:   "other_status_object",
			status: http.StatusOK,
			body:   `{"status":405,"reason":"use GET"}`,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			c := New(srv.URL, time.Second, 3, time.Millisecond)

			_, err := c.FetchPoems(context.Background(), 1, 2)
			require.True(t, errors.Is(err, poetry.ErrUnexpectedResponse), err)
		})
	}
}

func TestClient_FetchPoems_Retry(t *testing.T) {
	var calls int32

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		_, _ = w.Write([]byte(`[{"lines": ["a", "b"]}]`))
	})

	c := New(srv.URL, time.Second, 2, time.Millisecond)

	poems, err := c.FetchPoems(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"a\nb"}, poems)
	require.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestClient_FetchPoems_RetriesExhausted(t *testing.T) {
	var calls int32

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	c := New(srv.URL, time.Second, 1, time.Millisecond)

	_, err := c.FetchPoems(context.Background(), 1, 2)
	require.Error(t, err)
	require.True(t, errors.Is(err, errTemporary))
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestClient_FetchPoems_Canceled(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL, time.Second, 5, time.Hour)

	_, err := c.FetchPoems(ctx, 1, 2)
	require.True(t, errors.Is(err, context.Canceled), err)
}
