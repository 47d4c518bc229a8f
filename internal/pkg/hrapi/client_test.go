package hrapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hris-portal/internal/domain/attendance"
)

func newUpstream(t *testing.T, setup func(r chi.Router)) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	setup(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestListRecords_SendsBearerAndDecodes(t *testing.T) {
	var gotAuth, gotID string
	srv := newUpstream(t, func(r chi.Router) {
		r.Get("/api/employee/{id}/attendance", func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotID = chi.URLParam(r, "id")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":1,"date":"2025-06-10","punch_in":"09:00","punch_out":"17:00","total_hours":"8.00","status":"present"}]`))
		})
	})

	c := NewClient(srv.URL+"/", 2*time.Second)
	records, err := c.ListRecords(context.Background(), "tok-123", "42")
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "42", gotID)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0].ID.String())
	assert.InDelta(t, 8.0, records[0].Hours(), 1e-9)
}

func TestListRecords_AcceptsDataEnvelope(t *testing.T) {
	srv := newUpstream(t, func(r chi.Router) {
		r.Get("/api/employee/{id}/attendance", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":[{"id":"a","date":"2025-06-10","status":"present"}]}`))
		})
	})

	records, err := NewClient(srv.URL, time.Second).ListRecords(context.Background(), "tok", "7")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID.String())
}

func TestListRecords_ErrorCarriesServerMessage(t *testing.T) {
	srv := newUpstream(t, func(r chi.Router) {
		r.Get("/api/employee/{id}/attendance", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"Forbidden employee"}`))
		})
	})

	_, err := NewClient(srv.URL, time.Second).ListRecords(context.Background(), "tok", "7")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "Forbidden employee", apiErr.Message)
}

func TestListRecords_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := newUpstream(t, func(r chi.Router) {
		r.Get("/api/employee/{id}/attendance", func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`[]`))
		})
	})

	records, err := NewClient(srv.URL, time.Second, WithRetries(2)).ListRecords(context.Background(), "tok", "7")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, int32(2), calls.Load())
}

func TestListRecords_RequiresToken(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:0", time.Second).ListRecords(context.Background(), "", "7")
	assert.ErrorIs(t, err, ErrTokenRequired)
}

func TestSubmitPunch_PostsBody(t *testing.T) {
	var got map[string]any
	var gotAuth string
	srv := newUpstream(t, func(r chi.Router) {
		r.Post("/api/employee/attendance", func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"message":"ok"}`))
		})
	})

	err := NewClient(srv.URL, time.Second).SubmitPunch(context.Background(), "tok", attendance.PunchRequest{
		Date:    "2025-06-10",
		PunchIn: "09:03",
		Status:  attendance.StatusPresent,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "2025-06-10", got["date"])
	assert.Equal(t, "09:03", got["punch_in"])
	assert.Contains(t, got, "punch_out")
	assert.Nil(t, got["punch_out"])
	assert.Equal(t, "present", got["status"])
}

func TestSubmitPunch_FallsBackToStatusText(t *testing.T) {
	srv := newUpstream(t, func(r chi.Router) {
		r.Post("/api/employee/attendance", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
	})

	err := NewClient(srv.URL, time.Second).SubmitPunch(context.Background(), "tok", attendance.PunchRequest{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), apiErr.Message)
}

func TestSubmitPunch_HonoursContext(t *testing.T) {
	srv := newUpstream(t, func(r chi.Router) {
		r.Post("/api/employee/attendance", func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewClient(srv.URL, 5*time.Second).SubmitPunch(ctx, "tok", attendance.PunchRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
