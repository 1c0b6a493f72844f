package service

import (
	"context"
	"time"

	"github.com/bokk3/casino/internal/auth"
	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/ledger"
	"github.com/bokk3/casino/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles player registration and login.
type AuthService struct {
	pool     *pgxpool.Pool
	accounts repository.AccountRepository
	engine   *ledger.Engine
	outbox   repository.OutboxRepository
	jwtMgr   *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	pool *pgxpool.Pool,
	accounts repository.AccountRepository,
	engine *ledger.Engine,
	outbox repository.OutboxRepository,
	jwtMgr *auth.JWTManager,
) *AuthService {
	return &AuthService{
		pool:     pool,
		accounts: accounts,
		engine:   engine,
		outbox:   outbox,
		jwtMgr:   jwtMgr,
	}
}

// RegisterInput holds the registration request fields.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token     string    `json:"token"`
	AccountID uuid.UUID `json:"account_id"`
	Username  string    `json:"username"`
	Balance   int64     `json:"balance"`
}

// Register creates a new account with the starting balance. The account
// row, the opening deposit entry and the outbox event commit in one
// transaction.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := domain.ValidateUsername(input.Username); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	existing, err := s.accounts.FindByUsername(ctx, s.pool, input.Username)
	if err != nil {
		return nil, domain.ErrInternal("find account", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: string(hash),
		Balance:      0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accounts.Create(ctx, tx, account); err != nil {
		return nil, domain.ErrInternal("create account", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewAccountCreatedEvent(account)); err != nil {
		return nil, domain.ErrInternal("insert outbox event", err)
	}

	// The opening balance is a real deposit entry so history starts at
	// the first row, not an implicit default.
	locked, err := s.engine.LockAccount(ctx, tx, account.ID)
	if err != nil {
		return nil, domain.ErrInternal("lock account", err)
	}
	updated, err := s.engine.Credit(ctx, tx, locked, domain.StartingBalance, domain.EntryDeposit, nil)
	if err != nil {
		return nil, domain.ErrInternal("credit starting balance", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	token, err := s.jwtMgr.GenerateToken(auth.RealmPlayer, account.ID, account.Username)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{
		Token:     token,
		AccountID: account.ID,
		Username:  account.Username,
		Balance:   updated.Balance,
	}, nil
}

// LoginInput holds the login request fields.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a player and returns a JWT.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	account, err := s.accounts.FindByUsername(ctx, s.pool, input.Username)
	if err != nil {
		return nil, domain.ErrInternal("find account", err)
	}
	if account == nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	token, err := s.jwtMgr.GenerateToken(auth.RealmPlayer, account.ID, account.Username)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{
		Token:     token,
		AccountID: account.ID,
		Username:  account.Username,
		Balance:   account.Balance,
	}, nil
}
