package app

import (
	"log/slog"

	"github.com/bokk3/casino/internal/auth"
	"github.com/bokk3/casino/internal/handler"
	"github.com/bokk3/casino/internal/ledger"
	"github.com/bokk3/casino/internal/provider"
	"github.com/bokk3/casino/internal/repository"
	"github.com/bokk3/casino/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool       *pgxpool.Pool
	JWTMgr     *auth.JWTManager
	Logger     *slog.Logger
	OddsFeed   *provider.OddsFeed
	CORSOrigin string
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	jwtMgr := deps.JWTMgr
	logger := deps.Logger

	// Repositories
	accountRepo := repository.NewAccountRepository()
	ledgerRepo := repository.NewLedgerRepository()
	sessionRepo := repository.NewSessionRepository()
	roundRepo := repository.NewRoundRepository()
	bonusSpinRepo := repository.NewBonusSpinRepository()
	outboxRepo := repository.NewOutboxRepository()

	// Ledger engine
	ledgerEngine := ledger.NewEngine(accountRepo, ledgerRepo, outboxRepo)

	// Services
	authSvc := service.NewAuthService(pool, accountRepo, ledgerEngine, outboxRepo, jwtMgr)
	walletSvc := service.NewWalletService(pool, accountRepo, ledgerRepo)
	blackjackSvc := service.NewBlackjackService(pool, ledgerEngine, sessionRepo, roundRepo, outboxRepo)
	rouletteSvc := service.NewRouletteService(pool, ledgerEngine, roundRepo, outboxRepo)
	slotsSvc := service.NewSlotsService(pool, ledgerEngine, roundRepo, outboxRepo)
	bonusSvc := service.NewBonusService(pool, accountRepo, ledgerEngine, bonusSpinRepo)
	sportsSvc := service.NewSportsBetService(pool, ledgerEngine, sessionRepo, roundRepo, outboxRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	walletHandler := handler.NewWalletHandler(walletSvc)
	blackjackHandler := handler.NewBlackjackHandler(blackjackSvc)
	rouletteHandler := handler.NewRouletteHandler(rouletteSvc)
	slotsHandler := handler.NewSlotsHandler(slotsSvc)
	bonusHandler := handler.NewBonusHandler(bonusSvc)
	sportsHandler := handler.NewSportsHandler(sportsSvc, deps.OddsFeed)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS(deps.CORSOrigin))
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Auth routes (no auth)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Player-authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthenticatePlayer(jwtMgr))

		r.Route("/user", func(r chi.Router) {
			r.Get("/balance", walletHandler.GetBalance)
			r.Get("/transactions", walletHandler.GetTransactions)
		})

		r.Route("/games", func(r chi.Router) {
			r.Route("/blackjack", func(r chi.Router) {
				r.Post("/deal", blackjackHandler.Deal)
				r.Post("/action", blackjackHandler.Action)
			})
			r.Post("/roulette/spin", rouletteHandler.Spin)
			r.Post("/slots/spin", slotsHandler.Spin)
		})

		r.Route("/bonus", func(r chi.Router) {
			r.Get("/status", bonusHandler.Status)
			r.Post("/spin", bonusHandler.Spin)
		})

		r.Route("/sports", func(r chi.Router) {
			r.Get("/odds", sportsHandler.Odds)
			r.Post("/bet", sportsHandler.PlaceBet)
			r.Get("/bets/active", sportsHandler.ActiveBets)
			r.Post("/settle", sportsHandler.SettleBet)
		})
	})

	return r
}
