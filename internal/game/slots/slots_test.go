package slots

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sym(t *testing.T, id string) Symbol {
	t.Helper()
	s, ok := SymbolByID(id)
	require.True(t, ok, "unknown symbol %q", id)
	return s
}

func TestTotalWeight(t *testing.T) {
	assert.Equal(t, 132, TotalWeight)
}

func TestDrawSymbolDistribution(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	counts := make(map[string]int)
	const draws = 50000
	for i := 0; i < draws; i++ {
		counts[DrawSymbol(rng).ID]++
	}

	// Every symbol reachable, frequency ordering roughly follows weights.
	for _, s := range Symbols {
		assert.Positive(t, counts[s.ID], "symbol %s never drawn", s.ID)
	}
	assert.Greater(t, counts["cherry"], counts["seven"])
	assert.Greater(t, counts["lemon"], counts["bar"])
}

func TestPayout(t *testing.T) {
	tests := []struct {
		name  string
		reels [3]string
		stake int64
		want  int64
	}{
		{"three cherries", [3]string{"cherry", "cherry", "cherry"}, 100, 500},
		{"three sevens", [3]string{"seven", "seven", "seven"}, 10, 1000},
		{"three bars", [3]string{"bar", "bar", "bar"}, 100, 5000},
		{"two cherries", [3]string{"cherry", "cherry", "lemon"}, 100, 200},
		{"two cherries any position", [3]string{"lemon", "cherry", "cherry"}, 100, 200},
		{"one cherry", [3]string{"cherry", "lemon", "orange"}, 100, 50},
		{"one cherry floors", [3]string{"cherry", "lemon", "orange"}, 55, 27},
		{"no win", [3]string{"lemon", "orange", "plum"}, 100, 0},
		{"two of non-cherry pays nothing", [3]string{"bell", "bell", "plum"}, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reels := [3]Symbol{sym(t, tt.reels[0]), sym(t, tt.reels[1]), sym(t, tt.reels[2])}
			assert.Equal(t, tt.want, Payout(reels, tt.stake))
		})
	}
}

func TestSpinReelsUsesTable(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	for i := 0; i < 100; i++ {
		reels := SpinReels(rng)
		for _, r := range reels {
			_, ok := SymbolByID(r.ID)
			require.True(t, ok)
		}
	}
}
