package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "player_1", false},
		{"minimum length", "abc", false},
		{"maximum length", "a1234567890123456789", false},
		{"empty", "", true},
		{"too short", "ab", true},
		{"too long", "a12345678901234567890", true},
		{"spaces", "play er", true},
		{"special chars", "player!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateStake(t *testing.T) {
	require.NoError(t, ValidateStake(1))
	require.NoError(t, ValidateStake(1_000_000))
	require.Error(t, ValidateStake(0))
	require.Error(t, ValidateStake(-50))
}

func TestValidateBlackjackBets(t *testing.T) {
	tests := []struct {
		name      string
		bets      []int64
		wantTotal int64
		wantErr   bool
	}{
		{"single spot", []int64{10}, 10, false},
		{"three spots with gap", []int64{10, 0, 20}, 30, false},
		{"all zero", []int64{0, 0, 0}, 0, true},
		{"empty", nil, 0, true},
		{"too many spots", []int64{1, 1, 1, 1}, 0, true},
		{"negative spot", []int64{10, -5, 0}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := ValidateBlackjackBets(tt.bets)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestGameKindStateful(t *testing.T) {
	assert.True(t, GameBlackjack.Stateful())
	assert.True(t, GameSportsBet.Stateful())
	assert.False(t, GameRoulette.Stateful())
	assert.False(t, GameSlots.Stateful())
	assert.False(t, GameWheel.Stateful())
}

func TestAppErrorStatusMapping(t *testing.T) {
	assert.Equal(t, 401, ErrUnauthorized("no token").Status)
	assert.Equal(t, 400, ErrValidation("bad input").Status)
	assert.Equal(t, 400, ErrInsufficientFunds().Status)
	assert.Equal(t, 409, ErrGameAlreadyActive(GameBlackjack).Status)
	assert.Equal(t, 404, ErrNoActiveGame(GameBlackjack).Status)
	assert.Equal(t, 404, ErrBetNotFound().Status)
	assert.Equal(t, 403, ErrBonusNotAvailable(time.Now()).Status)
	assert.Equal(t, 500, ErrInternal("boom", nil).Status)
}

func TestDecodeSportsBetState(t *testing.T) {
	valid := SportsBetState{
		MatchID:  "match-1",
		Side:     "Arsenal",
		Odds:     190,
		Match:    MatchInfo{Sport: "Soccer", Home: "Arsenal", Away: "Chelsea"},
		Status:   BetPending,
		PlacedAt: time.Now().UTC(),
	}
	raw, err := json.Marshal(valid)
	require.NoError(t, err)

	st, err := DecodeSportsBetState(raw)
	require.NoError(t, err)
	assert.Equal(t, "match-1", st.MatchID)
	assert.Equal(t, BetPending, st.Status)

	t.Run("malformed json", func(t *testing.T) {
		_, err := DecodeSportsBetState(json.RawMessage(`{"matchId":`))
		require.Error(t, err)
	})

	t.Run("odds below 1.00", func(t *testing.T) {
		bad := valid
		bad.Odds = 90
		raw, _ := json.Marshal(bad)
		_, err := DecodeSportsBetState(raw)
		require.Error(t, err)
	})

	t.Run("unknown status", func(t *testing.T) {
		bad := valid
		bad.Status = "settling"
		raw, _ := json.Marshal(bad)
		_, err := DecodeSportsBetState(raw)
		require.Error(t, err)
	})
}

func TestSportsBetPayout(t *testing.T) {
	st := SportsBetState{Odds: 190}
	assert.Equal(t, int64(190), st.Payout(100))
	assert.Equal(t, int64(475), st.Payout(250))

	// Exactly stake back at 1.00 odds.
	even := SportsBetState{Odds: 100}
	assert.Equal(t, int64(100), even.Payout(100))
}
