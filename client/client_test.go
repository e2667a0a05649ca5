package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/souramoo/calorie-counter-vibe/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "hunter22" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok","user":{"id":7,"username":"alice","email":"alice@example.com","calorieGoal":2000}}`))
	})

	mux.HandleFunc("/api/calories/series", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "lastMonth", r.URL.Query().Get("range"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"startDate":"2024-02-01","endDate":"2024-02-02","points":[` +
			`{"date":"2024-02-01","calories":800,"displayDate":"February 1, 2024"},` +
			`{"date":"2024-02-02","calories":0,"displayDate":"February 2, 2024"}]}`))
	})

	mux.HandleFunc("/api/calories/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Path != "/api/calories/3" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"Not authorized to access this entry"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginReturnsSession(t *testing.T) {
	c := New(newFakeServer(t).URL)

	s, err := c.Login(context.Background(), "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, Session{Token: "tok", UserID: 7, Username: "alice"}, s)

	_, err = c.Login(context.Background(), "alice@example.com", "bad")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestAuthedCallsNeedSession(t *testing.T) {
	c := New(newFakeServer(t).URL)
	_, err := c.Stats(context.Background(), Session{}, "week")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestSeriesAndDelete(t *testing.T) {
	c := New(newFakeServer(t).URL)
	s := Session{Token: "tok", UserID: 7}

	series, err := c.Series(context.Background(), s, SeriesOptions{Range: stats.RangeLastMonth})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", series.StartDate)
	require.Len(t, series.Points, 2)
	assert.Equal(t, 800, series.Points[0].Calories)

	require.NoError(t, c.DeleteEntry(context.Background(), s, 3))

	err = c.DeleteEntry(context.Background(), s, 4)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestSessionFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	empty, err := LoadSession(path)
	require.NoError(t, err)
	assert.False(t, empty.LoggedIn())

	want := Session{Token: "tok", UserID: 7, Username: "alice"}
	require.NoError(t, SaveSession(path, want))

	got, err := LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, ClearSession(path))
	require.NoError(t, ClearSession(path))
	got, err = LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, Session{}, got)
}

func TestWriteBarChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBarChart(&buf, []stats.SeriesPoint{
		{Date: "2024-01-01", Calories: 800},
		{Date: "2024-01-02", Calories: 400},
		{Date: "2024-01-03", Calories: 0},
	}, 10))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, 10, strings.Count(lines[0], "█"))
	assert.Equal(t, 5, strings.Count(lines[1], "█"))
	assert.Equal(t, 0, strings.Count(lines[2], "█"))
	assert.True(t, strings.HasSuffix(lines[1], " 400"))

	buf.Reset()
	require.NoError(t, WriteBarChart(&buf, nil, 10))
	assert.Equal(t, "no data in range\n", buf.String())
}
