package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Cyberking99/WavePay/internal/bank"
	"github.com/Cyberking99/WavePay/internal/config"
	"github.com/Cyberking99/WavePay/internal/custody"
	"github.com/Cyberking99/WavePay/internal/gateway"
	"github.com/Cyberking99/WavePay/internal/kyc"
	"github.com/Cyberking99/WavePay/internal/links"
	"github.com/Cyberking99/WavePay/internal/middleware"
	"github.com/Cyberking99/WavePay/internal/notification"
	"github.com/Cyberking99/WavePay/internal/offramp"
	"github.com/Cyberking99/WavePay/internal/transactions"
	"github.com/Cyberking99/WavePay/internal/user"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg      config.Config
	DB       *pgxpool.Pool
	Cache    *redis.Client
	Logger   *slog.Logger
	Provider gateway.Provider
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}
	if d.Provider == nil {
		return fmt.Errorf("rails provider is required")
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	if d.Cfg.IsDev() {
		// Plain text access log: [HH:MM:SS] 200 -  145ms METHOD /path
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	} else {
		app.Use(middleware.Audit(d.Logger))
	}
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories: Postgres when a pool is present, in-memory otherwise.
	var (
		userRepo    user.Repository
		detailsRepo user.DetailsRepository
		kycRepo     kyc.Repository
		walletRepo  custody.Repository
		accountRepo bank.Repository
		ledgerRepo  transactions.Repository
		linkRepo    links.Repository
	)
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
		detailsRepo = user.NewPostgresDetailsRepository(d.DB)
		kycRepo = kyc.NewPostgresRepository(d.DB)
		walletRepo = custody.NewPostgresRepository(d.DB)
		accountRepo = bank.NewPostgresRepository(d.DB)
		ledgerRepo = transactions.NewPostgresRepository(d.DB)
		linkRepo = links.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
		detailsRepo = user.NewMemoryDetailsRepository()
		kycRepo = kyc.NewMemoryRepository(userRepo)
		walletRepo = custody.NewMemoryRepository()
		accountRepo = bank.NewMemoryRepository()
		ledgerRepo = transactions.NewMemoryRepository()
		linkRepo = links.NewMemoryRepository()
	}

	var quotes offramp.QuoteStore
	if d.Cache != nil {
		quotes = offramp.NewRedisQuoteStore(d.Cache)
	} else {
		quotes = offramp.NewMemoryQuoteStore()
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	provisioner := custody.NewProvisioner(walletRepo, detailsRepo, d.Provider, d.Logger)

	userSvc := user.NewService(userRepo)
	kycSvc := kyc.NewService(kycRepo, userRepo, walletRepo, provisioner, d.Provider, notifier, d.Logger)
	bankSvc := bank.NewService(accountRepo, detailsRepo, d.Provider, d.Logger)
	ledgerSvc := transactions.NewService(ledgerRepo)
	offrampSvc := offramp.NewService(d.Provider, walletRepo, accountRepo, ledgerRepo, quotes, notifier, d.Logger)
	linkSvc := links.NewService(linkRepo)

	userHandler := user.NewHandler(userSvc)
	kycHandler := kyc.NewHandler(kycSvc)
	bankHandler := bank.NewHandler(bankSvc)
	ledgerHandler := transactions.NewHandler(ledgerSvc)
	offrampHandler := offramp.NewHandler(offrampSvc)
	linkHandler := links.NewHandler(linkSvc)

	// API routes
	api := app.Group("/api")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// All routes require a valid wallet signature. Verify additionally rate
	// limits per address and is the only route usable before a user row exists.
	signed := api.Group("", middleware.SignatureAuth(userRepo))
	rateLimiter := middleware.VerifyRateLimit(d.Cache, 10)
	RegisterAuthRoutes(signed, userHandler, rateLimiter)

	registered := signed.Group("", middleware.RequireUser())
	RegisterUserRoutes(registered, userHandler, userRepo)
	RegisterKycRoutes(registered, kycHandler)
	RegisterBankRoutes(registered, bankHandler)
	RegisterOfframpRoutes(registered, offrampHandler)
	RegisterTransactionRoutes(registered, ledgerHandler)
	RegisterLinkRoutes(registered, linkHandler)

	return nil
}
