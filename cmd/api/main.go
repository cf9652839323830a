package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pratik-mahalle/bizdesk/internal/api/handlers"
	"github.com/pratik-mahalle/bizdesk/internal/api/middleware"
	"github.com/pratik-mahalle/bizdesk/internal/api/router"
	"github.com/pratik-mahalle/bizdesk/internal/config"
	"github.com/pratik-mahalle/bizdesk/internal/domain/campaign"
	"github.com/pratik-mahalle/bizdesk/internal/domain/invoice"
	"github.com/pratik-mahalle/bizdesk/internal/domain/lead"
	"github.com/pratik-mahalle/bizdesk/internal/domain/payment"
	"github.com/pratik-mahalle/bizdesk/internal/domain/portfolio"
	"github.com/pratik-mahalle/bizdesk/internal/domain/post"
	"github.com/pratik-mahalle/bizdesk/internal/domain/task"
	"github.com/pratik-mahalle/bizdesk/internal/domain/team"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/export/pdf"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/validator"
	"github.com/pratik-mahalle/bizdesk/internal/repository/memory"
	"github.com/pratik-mahalle/bizdesk/internal/repository/postgres"
	"github.com/pratik-mahalle/bizdesk/internal/repository/redis"
	"github.com/pratik-mahalle/bizdesk/internal/services"
	"github.com/pratik-mahalle/bizdesk/internal/storage/s3"
	"github.com/pratik-mahalle/bizdesk/internal/worker"
	"github.com/pratik-mahalle/bizdesk/migrations"
)

// @title Bizdesk API
// @version 1.0
// @description Invoicing, CRM and plan management for small businesses.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const jobTimeout = 5 * time.Minute

// repositories is the set of stores the services run on
type repositories struct {
	users      user.Repository
	invoices   invoice.Repository
	leads      lead.Repository
	tasks      task.Repository
	team       team.Repository
	campaigns  campaign.Repository
	posts      post.Repository
	payments   payment.Repository
	portfolios portfolio.Repository
	usage      tier.UsageRepository
	checks     map[string]handlers.Pinger
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
		Service:    "bizdesk-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to open data store: %v", err)
	}
	defer repos.close()

	var archive invoice.Archive
	if cfg.Storage.ArchiveEnabled() {
		a, err := s3.New(ctx, cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to configure invoice archive: %v", err)
		}
		archive = a
		log.Infof("Archiving exported invoices to s3://%s/%s", cfg.Storage.S3Bucket, cfg.Storage.S3Prefix)
	}

	userService := services.NewUserService(repos.users, cfg.Auth.BCryptCost, log)
	counters := tier.Counters{
		tier.FeatureLeads:       repos.leads.Count,
		tier.FeatureTeamMembers: repos.team.CountSeats,
	}
	tierService := services.NewTierService(repos.users, repos.usage, counters, cfg.Jobs.UsageRetentionMonths, log)
	invoiceService := services.NewInvoiceService(repos.invoices, tierService, pdf.NewRenderer(), archive, cfg.Invoice.NumberPrefix, log)
	leadService := services.NewLeadService(repos.leads, tierService, log)
	taskService := services.NewTaskService(repos.tasks, log)
	teamService := services.NewTeamService(repos.team, tierService, log)
	paymentService := services.NewPaymentService(repos.payments, userService, log)
	portfolioService := services.NewPortfolioService(repos.portfolios, log)
	campaignService := services.NewCampaignService(repos.campaigns, repos.posts, log)
	postService := services.NewPostService(repos.posts, repos.campaigns, log)
	statsService := services.NewStatsService(repos.invoices, repos.leads, repos.tasks, repos.team, repos.campaigns, log)

	var jobs handlers.JobRunner
	var scheduler *worker.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = worker.NewScheduler(jobTimeout, log)
		if err := worker.RegisterDefaults(scheduler, cfg.Jobs, invoiceService, tierService); err != nil {
			log.Fatalf("Failed to register background jobs: %v", err)
		}
		scheduler.Start()
		jobs = scheduler
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
		go limiter.RunCleanup(ctx, time.Minute)
	}

	val := validator.New()
	h := &router.Handlers{
		Health:    handlers.NewHealthHandler(repos.checks, cfg.Storage.DataMode, log),
		Auth:      handlers.NewAuthHandler(userService, cfg, log, val),
		Invoice:   handlers.NewInvoiceHandler(invoiceService, log, val),
		Tier:      handlers.NewTierHandler(tierService, log),
		Lead:      handlers.NewLeadHandler(leadService, log, val),
		Task:      handlers.NewTaskHandler(taskService, log, val),
		Team:      handlers.NewTeamHandler(teamService, log, val),
		Campaign:  handlers.NewCampaignHandler(campaignService, log, val),
		Post:      handlers.NewPostHandler(postService, log, val),
		Payment:   handlers.NewPaymentHandler(paymentService, log, val),
		Portfolio: handlers.NewPortfolioHandler(portfolioService, log, val),
		Stats:     handlers.NewStatsHandler(statsService, log),
		Admin:     handlers.NewAdminHandler(userService, jobs, log),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, router.Deps{Users: repos.users, Limiter: limiter}, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("Starting server on %s (mode=%s, env=%s)", srv.Addr, cfg.Storage.DataMode, cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "Server forced to shutdown")
	}

	log.Info("Server exited")
}

// openRepositories picks the store for the configured data mode
func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	var repos *repositories
	switch cfg.Storage.DataMode {
	case config.DataModeDemo:
		store := memory.NewStore()
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Storage.DemoPassword), cfg.Auth.BCryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash demo password: %w", err)
		}
		if _, err := store.SeedDemo(ctx, string(hash), time.Now()); err != nil {
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
		log.Infof("Demo mode: sign in as %s", memory.DemoEmail)

		repos = &repositories{
			users:      store.Users,
			invoices:   store.Invoices,
			leads:      store.Leads,
			tasks:      store.Tasks,
			team:       store.Team,
			campaigns:  store.Campaigns,
			posts:      store.Posts,
			payments:   store.Payments,
			portfolios: store.Portfolios,
			usage:      store.Usage,
			checks:     map[string]handlers.Pinger{},
			close:      func() {},
		}

	default:
		db, err := postgres.New(cfg.Database)
		if err != nil {
			return nil, err
		}
		migrationsFS, err := migrations.GetFS(db.Driver())
		if err != nil {
			db.Close()
			return nil, err
		}
		applied, err := postgres.RunMigrations(db, migrationsFS)
		if err != nil {
			db.Close()
			return nil, err
		}
		log.Infof("Connected to %s database, %d migrations applied", db.Driver(), applied)

		repos = &repositories{
			users:      postgres.NewUserRepository(db),
			invoices:   postgres.NewInvoiceRepository(db),
			leads:      postgres.NewLeadRepository(db),
			tasks:      postgres.NewTaskRepository(db),
			team:       postgres.NewTeamRepository(db),
			campaigns:  postgres.NewCampaignRepository(db),
			posts:      postgres.NewPostRepository(db),
			payments:   postgres.NewPaymentRepository(db),
			portfolios: postgres.NewPortfolioRepository(db),
			usage:      postgres.NewUsageRepository(db),
			checks:     map[string]handlers.Pinger{"database": db},
			close:      func() { db.Close() },
		}
	}

	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			repos.close()
			return nil, err
		}
		usage := redis.NewUsageRepository(client, cfg.Redis.KeyPrefix)
		repos.usage = usage
		repos.checks["redis"] = usage
		closeStore := repos.close
		repos.close = func() {
			client.Close()
			closeStore()
		}
		log.Infof("Usage counters stored in redis at %s", cfg.Redis.Addr())
	}

	return repos, nil
}
