package provider

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oddsFixture = `[
  {
    "id": "evt-1",
    "sport_key": "basketball_nba",
    "sport_title": "NBA",
    "commence_time": "2025-06-02T00:00:00Z",
    "home_team": "Boston Celtics",
    "away_team": "Dallas Mavericks",
    "bookmakers": [
      {
        "key": "bk1",
        "markets": [
          {
            "key": "h2h",
            "outcomes": [
              {"name": "Boston Celtics", "price": 1.45},
              {"name": "Dallas Mavericks", "price": 2.80}
            ]
          }
        ]
      }
    ]
  },
  {
    "id": "evt-2",
    "sport_key": "basketball_nba",
    "sport_title": "NBA",
    "commence_time": "2025-06-03T00:00:00Z",
    "home_team": "A",
    "away_team": "B",
    "bookmakers": []
  }
]`

func newTestFeed(t *testing.T, handler http.HandlerFunc) (*OddsFeed, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOddsFeed(srv.URL, "test-key", time.Hour, logger), srv
}

func TestMatchesParsesH2H(t *testing.T) {
	feed, _ := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		w.Write([]byte(oddsFixture))
	})

	matches, err := feed.Matches(context.Background(), "basketball_nba")
	require.NoError(t, err)
	require.Len(t, matches, 1, "events without odds are dropped")

	m := matches[0]
	assert.Equal(t, "evt-1", m.ID)
	assert.Equal(t, "NBA", m.Match.Sport)
	assert.Equal(t, "Boston Celtics", m.Match.Home)
	assert.Equal(t, "Dallas Mavericks", m.Match.Away)
	assert.Equal(t, int64(145), m.Odds["Boston Celtics"])
	assert.Equal(t, int64(280), m.Odds["Dallas Mavericks"])
}

func TestMatchesCachesWithinTTL(t *testing.T) {
	var calls atomic.Int32
	feed, _ := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(oddsFixture))
	})

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	feed.now = func() time.Time { return now }

	_, err := feed.Matches(context.Background(), "basketball_nba")
	require.NoError(t, err)
	_, err = feed.Matches(context.Background(), "basketball_nba")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	now = base.Add(2 * time.Hour)
	_, err = feed.Matches(context.Background(), "basketball_nba")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestMatchesUpstreamError(t *testing.T) {
	feed, _ := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := feed.Matches(context.Background(), "basketball_nba")
	assert.Error(t, err)
}

func TestMatchesQuotaExceeded(t *testing.T) {
	feed, _ := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := feed.Matches(context.Background(), "basketball_nba")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}

func TestDecimalToHundredths(t *testing.T) {
	assert.Equal(t, int64(175), DecimalToHundredths(1.75))
	assert.Equal(t, int64(190), DecimalToHundredths(1.9))
	assert.Equal(t, int64(100), DecimalToHundredths(1.0))
	assert.Equal(t, int64(333), DecimalToHundredths(3.33))
}
