package repository

import (
	"context"
	"fmt"

	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/infra"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type roundRepo struct{}

// NewRoundRepository returns a pgx-backed RoundRepository.
func NewRoundRepository() RoundRepository {
	return &roundRepo{}
}

func (r *roundRepo) Insert(ctx context.Context, db DBTX, round *domain.GameRound) error {
	_, err := db.Exec(ctx, `
		INSERT INTO game_rounds (id, account_id, game_kind, stake, outcome, payout, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		round.ID,
		round.AccountID,
		string(round.GameKind),
		infra.Int64ToNumeric(round.Stake),
		round.Outcome,
		infra.Int64ToNumeric(round.Payout),
		round.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert game round: %w", err)
	}
	return nil
}

func (r *roundRepo) ListByAccount(ctx context.Context, db DBTX, accountID uuid.UUID, limit int) ([]domain.GameRound, error) {
	rows, err := db.Query(ctx, `
		SELECT id, account_id, game_kind, stake, outcome, payout, created_at
		FROM game_rounds
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list game rounds: %w", err)
	}
	defer rows.Close()

	var rounds []domain.GameRound
	for rows.Next() {
		var rd domain.GameRound
		var stakeNum, payoutNum pgtype.Numeric
		err := rows.Scan(&rd.ID, &rd.AccountID, &rd.GameKind, &stakeNum, &rd.Outcome, &payoutNum, &rd.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan game round: %w", err)
		}
		if rd.Stake, err = infra.NumericToInt64(stakeNum); err != nil {
			return nil, fmt.Errorf("convert stake: %w", err)
		}
		if rd.Payout, err = infra.NumericToInt64(payoutNum); err != nil {
			return nil, fmt.Errorf("convert payout: %w", err)
		}
		rounds = append(rounds, rd)
	}
	return rounds, rows.Err()
}
