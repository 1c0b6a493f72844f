// Package provider holds connectors for external services.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/bokk3/casino/internal/domain"
)

// ── Odds API wire types ──

type oddsEvent struct {
	ID           string          `json:"id"`
	SportKey     string          `json:"sport_key"`
	SportTitle   string          `json:"sport_title"`
	CommenceTime string          `json:"commence_time"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	Bookmakers   []oddsBookmaker `json:"bookmakers"`
}

type oddsBookmaker struct {
	Key     string       `json:"key"`
	Markets []oddsMarket `json:"markets"`
}

type oddsMarket struct {
	Key      string        `json:"key"`
	Outcomes []oddsOutcome `json:"outcomes"`
}

type oddsOutcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Match is one bettable fixture with its head-to-head odds. Odds are
// decimal odds in hundredths.
type Match struct {
	ID        string           `json:"id"`
	Match     domain.MatchInfo `json:"match"`
	StartTime time.Time        `json:"start_time"`
	Odds      map[string]int64 `json:"odds"`
}

// OddsFeed fetches head-to-head odds from The Odds API, caching each
// sport's fixture list for the TTL so the free-tier quota survives.
type OddsFeed struct {
	baseURL string
	apiKey  string
	logger  *slog.Logger
	client  *http.Client
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	cache map[string]cachedOdds
}

type cachedOdds struct {
	matches   []Match
	fetchedAt time.Time
}

// DefaultOddsTTL is how long a fetched fixture list stays fresh.
const DefaultOddsTTL = time.Hour

// NewOddsFeed creates an odds feed client.
func NewOddsFeed(baseURL, apiKey string, ttl time.Duration, logger *slog.Logger) *OddsFeed {
	if baseURL == "" {
		baseURL = "https://api.the-odds-api.com"
	}
	if ttl <= 0 {
		ttl = DefaultOddsTTL
	}
	return &OddsFeed{
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
		client:  &http.Client{Timeout: 30 * time.Second},
		ttl:     ttl,
		now:     time.Now,
		cache:   make(map[string]cachedOdds),
	}
}

// Matches returns the sport's upcoming fixtures with h2h odds, from cache
// when fresh.
func (f *OddsFeed) Matches(ctx context.Context, sportKey string) ([]Match, error) {
	f.mu.Lock()
	if cached, ok := f.cache[sportKey]; ok && f.now().Sub(cached.fetchedAt) < f.ttl {
		matches := cached.matches
		f.mu.Unlock()
		return matches, nil
	}
	f.mu.Unlock()

	matches, err := f.fetch(ctx, sportKey)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.cache[sportKey] = cachedOdds{matches: matches, fetchedAt: f.now()}
	f.mu.Unlock()

	return matches, nil
}

func (f *OddsFeed) fetch(ctx context.Context, sportKey string) ([]Match, error) {
	url := fmt.Sprintf("%s/v4/sports/%s/odds/?regions=us&markets=h2h&oddsFormat=decimal&apiKey=%s",
		f.baseURL, sportKey, f.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("odds feed request: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	remaining := resp.Header.Get("x-requests-remaining")
	f.logger.Debug("odds feed request", "sport", sportKey, "status", resp.StatusCode, "remaining", remaining)

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("odds feed quota exceeded")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds feed returned %d: %s", resp.StatusCode, string(body[:min(200, len(body))]))
	}

	var events []oddsEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	matches := make([]Match, 0, len(events))
	for _, event := range events {
		m := Match{
			ID: event.ID,
			Match: domain.MatchInfo{
				Sport: event.SportTitle,
				Home:  event.HomeTeam,
				Away:  event.AwayTeam,
			},
			Odds: h2hOdds(event),
		}
		if t, err := time.Parse(time.RFC3339, event.CommenceTime); err == nil {
			m.StartTime = t
		}
		if len(m.Odds) == 0 {
			continue
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// h2hOdds picks the first bookmaker's head-to-head market.
func h2hOdds(event oddsEvent) map[string]int64 {
	for _, bk := range event.Bookmakers {
		for _, mkt := range bk.Markets {
			if mkt.Key != "h2h" {
				continue
			}
			odds := make(map[string]int64, len(mkt.Outcomes))
			for _, o := range mkt.Outcomes {
				odds[o.Name] = DecimalToHundredths(o.Price)
			}
			return odds
		}
	}
	return nil
}

// DecimalToHundredths converts decimal odds to hundredths (1.75 -> 175).
func DecimalToHundredths(price float64) int64 {
	return int64(math.Round(price * 100))
}
