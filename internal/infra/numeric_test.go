package infra

import (
	"math"
	"math/big"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt64ToNumericRoundtrip(t *testing.T) {
	// numeric(15,0) max is 999_999_999_999_999
	values := []int64{0, 1, -1, 1000, -50000, 999_999_999_999_999, math.MaxInt64, math.MinInt64}
	for _, v := range values {
		n := Int64ToNumeric(v)
		result, err := NumericToInt64(n)
		require.NoError(t, err, "value: %d", v)
		assert.Equal(t, v, result, "value: %d", v)
	}
}

func TestNumericToInt64(t *testing.T) {
	tests := []struct {
		name    string
		in      pgtype.Numeric
		want    int64
		wantErr string
	}{
		{
			name:    "null",
			in:      pgtype.Numeric{Valid: false},
			wantErr: "NULL",
		},
		{
			name: "positive exponent scales up",
			in:   pgtype.Numeric{Int: big.NewInt(500), Exp: 2, Valid: true},
			want: 50000,
		},
		{
			name: "negative exponent truncates",
			in:   pgtype.Numeric{Int: big.NewInt(50099), Exp: -2, Valid: true},
			want: 500,
		},
		{
			name: "overflow",
			in: pgtype.Numeric{
				Int:   new(big.Int).Add(big.NewInt(math.MaxInt64), big.NewInt(1)),
				Exp:   0,
				Valid: true,
			},
			wantErr: "overflows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NumericToInt64(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
