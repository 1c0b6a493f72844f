package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/infra"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type sessionRepo struct{}

// NewSessionRepository returns a pgx-backed SessionRepository.
func NewSessionRepository() SessionRepository {
	return &sessionRepo{}
}

const uniqueViolation = "23505"

func (r *sessionRepo) Create(ctx context.Context, db DBTX, session *domain.GameSession) error {
	_, err := db.Exec(ctx, `
		INSERT INTO active_games (id, account_id, game_kind, total_stake, state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		session.ID,
		session.AccountID,
		string(session.GameKind),
		infra.Int64ToNumeric(session.TotalStake),
		session.State,
		session.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrGameAlreadyActive(session.GameKind)
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *sessionRepo) FindActive(ctx context.Context, db DBTX, accountID uuid.UUID, kind domain.GameKind) (*domain.GameSession, error) {
	row := db.QueryRow(ctx, `
		SELECT id, account_id, game_kind, total_stake, state, created_at
		FROM active_games
		WHERE account_id = $1 AND game_kind = $2`, accountID, string(kind))
	return scanSession(row)
}

func (r *sessionRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.GameSession, error) {
	row := db.QueryRow(ctx, `
		SELECT id, account_id, game_kind, total_stake, state, created_at
		FROM active_games WHERE id = $1`, id)
	return scanSession(row)
}

func (r *sessionRepo) UpdateState(ctx context.Context, db DBTX, id uuid.UUID, state json.RawMessage) error {
	tag, err := db.Exec(ctx, `
		UPDATE active_games SET state = $1 WHERE id = $2`, state, id)
	if err != nil {
		return fmt.Errorf("update session state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update session state: session %s not found", id)
	}
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `DELETE FROM active_games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func scanSession(row pgx.Row) (*domain.GameSession, error) {
	var s domain.GameSession
	var stakeNum pgtype.Numeric
	err := row.Scan(&s.ID, &s.AccountID, &s.GameKind, &stakeNum, &s.State, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	if s.TotalStake, err = infra.NumericToInt64(stakeNum); err != nil {
		return nil, fmt.Errorf("convert total_stake: %w", err)
	}
	return &s, nil
}
