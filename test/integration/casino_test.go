//go:build integration

package integration

import (
	"net/http"
	"sync"
	"testing"

	"github.com/bokk3/casino/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterStartsWithDeposit(t *testing.T) {
	env := testutil.NewTestEnv(t)

	token, _ := env.RegisterPlayer("fresh_player", "secret1")
	assert.Equal(t, int64(1000), env.Balance(token))

	resp := env.AuthGET("/user/transactions", token)
	var page struct {
		Transactions []struct {
			Amount       int64  `json:"amount"`
			BalanceAfter int64  `json:"balance_after"`
			Kind         string `json:"type"`
		} `json:"transactions"`
		Total int64 `json:"total"`
	}
	env.DecodeBody(resp, &page)

	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, "deposit", page.Transactions[0].Kind)
	assert.Equal(t, int64(1000), page.Transactions[0].Amount)
	assert.Equal(t, int64(1000), page.Transactions[0].BalanceAfter)
}

func TestTransactionHistoryFilterAndPaging(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("history_player", "secret1")

	// Two slot spins add a bet entry each, plus a win entry when one hits.
	for i := 0; i < 2; i++ {
		resp := env.POST("/games/slots/spin", map[string]int64{"stake": 10}, token)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := env.AuthGET("/user/transactions?type=bet", token)
	var page struct {
		Transactions []struct {
			Amount int64  `json:"amount"`
			Kind   string `json:"type"`
		} `json:"transactions"`
		Total int64 `json:"total"`
		Pages int64 `json:"pages"`
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
	}
	env.DecodeBody(resp, &page)

	require.Equal(t, int64(2), page.Total)
	for _, tx := range page.Transactions {
		assert.Equal(t, "bet", tx.Kind)
		assert.Equal(t, int64(-10), tx.Amount)
	}

	resp = env.AuthGET("/user/transactions?limit=1&page=2&type=bet", token)
	env.DecodeBody(resp, &page)
	assert.Equal(t, int64(2), page.Pages)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Transactions, 1)

	resp = env.AuthGET("/user/transactions?type=jackpot", token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	env := testutil.NewTestEnv(t)

	tests := []struct {
		name     string
		username string
		password string
		status   int
	}{
		{"short username", "ab", "secret1", http.StatusBadRequest},
		{"bad characters", "bad name!", "secret1", http.StatusBadRequest},
		{"short password", "good_name", "12345", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.POST("/auth/register", map[string]string{
				"username": tt.username,
				"password": tt.password,
			}, "")
			resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	t.Run("duplicate username", func(t *testing.T) {
		env.RegisterPlayer("taken_name", "secret1")
		resp := env.POST("/auth/register", map[string]string{
			"username": "taken_name",
			"password": "secret2",
		}, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.RegisterPlayer("login_user", "secret1")

	token := env.LoginPlayer("login_user", "secret1")
	assert.Equal(t, int64(1000), env.Balance(token))

	resp := env.POST("/auth/login", map[string]string{
		"username": "login_user",
		"password": "wrong",
	}, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

type blackjackRound struct {
	Phase   string `json:"phase"`
	Settled bool   `json:"settled"`
	Payout  int64  `json:"payout"`
	Balance int64  `json:"balance"`
	Hands   []struct {
		Stake  int64  `json:"stake"`
		Status string `json:"status"`
	} `json:"hands"`
	Dealer []struct {
		Hidden bool   `json:"hidden,omitempty"`
		Rank   string `json:"rank,omitempty"`
	} `json:"dealer"`
}

func TestBlackjackRoundSettles(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("bj_player", "secret1")

	resp := env.POST("/games/blackjack/deal", map[string]interface{}{
		"bets": []int64{100},
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var round blackjackRound
	env.DecodeBody(resp, &round)

	require.Len(t, round.Hands, 1)
	assert.Equal(t, int64(900), round.Balance, "stake debited up front")

	// The hole card must not leak before settlement.
	for _, c := range round.Dealer {
		if c.Hidden {
			assert.Empty(t, c.Rank)
		}
	}

	// A second deal while one is open is rejected.
	resp = env.POST("/games/blackjack/deal", map[string]interface{}{
		"bets": []int64{50},
	}, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Standing the single hand always ends the round.
	resp = env.POST("/games/blackjack/action", map[string]string{"action": "stand"}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var settled blackjackRound
	env.DecodeBody(resp, &settled)

	require.True(t, settled.Settled)
	assert.Equal(t, int64(900)+settled.Payout, settled.Balance)
	assert.Equal(t, settled.Balance, env.Balance(token))

	// The session is gone; another action finds no game.
	resp = env.POST("/games/blackjack/action", map[string]string{"action": "stand"}, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestConcurrentDealsOnlyOneWins(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("race_player", "secret1")

	const attempts = 5
	statuses := make([]int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := env.POST("/games/blackjack/deal", map[string]interface{}{
				"bets": []int64{100},
			}, token)
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	ok, conflicts := 0, 0
	for _, s := range statuses {
		switch s {
		case http.StatusOK:
			ok++
		case http.StatusConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, ok, "exactly one deal succeeds")
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, int64(900), env.Balance(token), "only one stake debited")
}

func TestRouletteInsufficientFundsHasNoSideEffects(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("broke_player", "secret1")

	resp := env.POST("/games/roulette/spin", map[string]interface{}{
		"bets": map[string]int64{"red": 5000},
	}, token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody struct {
		Code string `json:"code"`
	}
	env.DecodeBody(resp, &errBody)
	assert.Equal(t, "INSUFFICIENT_FUNDS", errBody.Code)

	assert.Equal(t, int64(1000), env.Balance(token))

	historyResp := env.AuthGET("/user/transactions", token)
	var page struct {
		Total int64 `json:"total"`
	}
	env.DecodeBody(historyResp, &page)
	assert.Equal(t, int64(1), page.Total, "only the registration deposit exists")
}

func TestSlotsSpinBalanceArithmetic(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("slots_player", "secret1")

	resp := env.POST("/games/slots/spin", map[string]int64{"stake": 50}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result struct {
		Payout  int64 `json:"payout"`
		Balance int64 `json:"balance"`
	}
	env.DecodeBody(resp, &result)

	assert.Equal(t, int64(950)+result.Payout, result.Balance)
	assert.Equal(t, result.Balance, env.Balance(token))
}

func TestBonusSpinCooldown(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("bonus_player", "secret1")

	statusResp := env.AuthGET("/bonus/status", token)
	var status struct {
		Available bool `json:"available"`
	}
	env.DecodeBody(statusResp, &status)
	assert.True(t, status.Available)

	resp := env.POST("/bonus/spin", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var spin struct {
		Reward  int64 `json:"reward"`
		Balance int64 `json:"balance"`
	}
	env.DecodeBody(resp, &spin)
	assert.Contains(t, []int64{50, 100, 250, 500, 1000}, spin.Reward)
	assert.Equal(t, int64(1000)+spin.Reward, spin.Balance)

	// Second spin inside the cooldown is rejected and credits nothing.
	resp = env.POST("/bonus/spin", nil, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, spin.Balance, env.Balance(token))

	statusResp = env.AuthGET("/bonus/status", token)
	env.DecodeBody(statusResp, &status)
	assert.False(t, status.Available)
}

func TestSportsBetLifecycle(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("bettor", "secret1")

	place := map[string]interface{}{
		"match_id": "match-42",
		"side":     "home",
		"odds":     1.90,
		"stake":    100,
		"sport":    "NBA",
		"home":     "Celtics",
		"away":     "Mavericks",
	}

	resp := env.POST("/sports/bet", place, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var placed struct {
		Bet struct {
			BetID           string `json:"bet_id"`
			Odds            int64  `json:"odds"`
			PotentialPayout int64  `json:"potential_payout"`
		} `json:"bet"`
		Balance int64 `json:"balance"`
	}
	env.DecodeBody(resp, &placed)
	assert.Equal(t, int64(900), placed.Balance)
	assert.Equal(t, int64(190), placed.Bet.Odds)
	assert.Equal(t, int64(190), placed.Bet.PotentialPayout)

	// Only one pending bet per account.
	resp = env.POST("/sports/bet", place, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	listResp := env.AuthGET("/sports/bets/active", token)
	var list struct {
		Bets []struct {
			BetID string `json:"bet_id"`
		} `json:"bets"`
	}
	env.DecodeBody(listResp, &list)
	require.Len(t, list.Bets, 1)
	assert.Equal(t, placed.Bet.BetID, list.Bets[0].BetID)

	resp = env.POST("/sports/settle", map[string]interface{}{
		"bet_id": placed.Bet.BetID,
		"won":    true,
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var settled struct {
		Payout  int64 `json:"payout"`
		Balance int64 `json:"balance"`
	}
	env.DecodeBody(resp, &settled)
	assert.Equal(t, int64(190), settled.Payout)
	assert.Equal(t, int64(1090), settled.Balance)
	assert.Equal(t, int64(1090), env.Balance(token))

	// Settlement is exactly-once.
	resp = env.POST("/sports/settle", map[string]interface{}{
		"bet_id": placed.Bet.BetID,
		"won":    true,
	}, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int64(1090), env.Balance(token))
}

func TestSettleRejectsForeignBet(t *testing.T) {
	env := testutil.NewTestEnv(t)
	ownerToken, _ := env.RegisterPlayer("bet_owner", "secret1")
	otherToken, _ := env.RegisterPlayer("bet_thief", "secret1")

	resp := env.POST("/sports/bet", map[string]interface{}{
		"match_id": "match-7",
		"side":     "away",
		"odds":     2.50,
		"stake":    100,
	}, ownerToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var placed struct {
		Bet struct {
			BetID string `json:"bet_id"`
		} `json:"bet"`
	}
	env.DecodeBody(resp, &placed)

	resp = env.POST("/sports/settle", map[string]interface{}{
		"bet_id": placed.Bet.BetID,
		"won":    true,
	}, otherToken)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner can still settle afterwards.
	resp = env.POST("/sports/settle", map[string]interface{}{
		"bet_id": placed.Bet.BetID,
		"won":    false,
	}, ownerToken)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(900), env.Balance(ownerToken))
}

func TestEndpointsRequireAuth(t *testing.T) {
	env := testutil.NewTestEnv(t)

	paths := []string{
		"/games/blackjack/deal",
		"/games/roulette/spin",
		"/games/slots/spin",
		"/bonus/spin",
		"/sports/bet",
	}
	for _, path := range paths {
		resp := env.POST(path, map[string]string{}, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}
