package repository

import (
	"context"
	"fmt"

	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/infra"
)

type bonusSpinRepo struct{}

// NewBonusSpinRepository returns a pgx-backed BonusSpinRepository.
func NewBonusSpinRepository() BonusSpinRepository {
	return &bonusSpinRepo{}
}

func (r *bonusSpinRepo) Insert(ctx context.Context, db DBTX, spin *domain.BonusSpin) error {
	_, err := db.Exec(ctx, `
		INSERT INTO bonus_spins (id, account_id, reward, created_at)
		VALUES ($1, $2, $3, $4)`,
		spin.ID,
		spin.AccountID,
		infra.Int64ToNumeric(spin.Reward),
		spin.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bonus spin: %w", err)
	}
	return nil
}
