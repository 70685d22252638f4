package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/presencedash/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/mean_time_weekday/42", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[["Mon", 3600]]`))
	})
	mux.HandleFunc("/api/v1/mean_time_weekday/500", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Write([]byte(`[{"user_id": 10, "name": "User 10"}, {"user_id": 11, "name": "User 11"}]`))
	})
	mux.HandleFunc("/api/v1/users/10", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "Maria K.", "avatar": "https://intranet.example/api/images/users/10"}`))
	})
	mux.HandleFunc("/api/v1/presence_location_view", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"key": "2013-09", "val": "September 2013"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchClassifiesOutcomes(t *testing.T) {
	var hits int32
	srv := newTestAPI(t, &hits)
	client := NewClient(srv.URL, 0, 0)
	ctx := context.Background()

	ok := client.Fetch(ctx, "/api/v1/mean_time_weekday/42")
	assert.Equal(t, models.OutcomeSuccess, ok.Kind)
	assert.JSONEq(t, `[["Mon", 3600]]`, string(ok.Body))

	missing := client.Fetch(ctx, "/api/v1/mean_time_weekday/7")
	assert.Equal(t, models.OutcomeNotFound, missing.Kind)
	assert.ErrorIs(t, missing.Err(), models.ErrNotFound)

	failed := client.Fetch(ctx, "/api/v1/mean_time_weekday/500")
	assert.Equal(t, models.OutcomeOtherError, failed.Kind)
	assert.Equal(t, http.StatusInternalServerError, failed.StatusCode)
	assert.ErrorIs(t, failed.Err(), models.ErrUpstream)
}

func TestFetchTransportError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second, 0)

	outcome := client.Fetch(context.Background(), "/api/v1/users")

	assert.Equal(t, models.OutcomeOtherError, outcome.Kind)
	assert.Equal(t, 0, outcome.StatusCode)
	assert.ErrorIs(t, outcome.Err(), models.ErrUpstream)
}

func TestUsersAreCached(t *testing.T) {
	var hits int32
	srv := newTestAPI(t, &hits)
	client := NewClient(srv.URL, 0, time.Minute)

	for i := 0; i < 3; i++ {
		users, err := client.Users(context.Background())
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "User 10", users[0].Name)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestUserAndPeriods(t *testing.T) {
	var hits int32
	srv := newTestAPI(t, &hits)
	client := NewClient(srv.URL+"/", 0, 0)
	ctx := context.Background()

	details, err := client.User(ctx, "10")
	require.NoError(t, err)
	assert.Equal(t, "Maria K.", details.Name)
	assert.Contains(t, details.Avatar, "/users/10")

	_, err = client.User(ctx, "99")
	assert.ErrorIs(t, err, models.ErrNotFound)

	periods, err := client.Periods(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Period{{Key: "2013-09", Val: "September 2013"}}, periods)
}
