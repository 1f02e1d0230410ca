package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/talkserve/backend/internal/api/http"
	"github.com/talkserve/backend/internal/api/http/handlers"
	"github.com/talkserve/backend/internal/auth"
	"github.com/talkserve/backend/internal/config"
	"github.com/talkserve/backend/internal/events"
	"github.com/talkserve/backend/internal/observability"
	"github.com/talkserve/backend/internal/persistence"
	"github.com/talkserve/backend/internal/platform/calendar"
	"github.com/talkserve/backend/internal/platform/llm"
	"github.com/talkserve/backend/internal/platform/mailer"
	"github.com/talkserve/backend/internal/repository"
	"github.com/talkserve/backend/internal/service"
	"github.com/talkserve/backend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	rds := persistence.NewRedis(cfg.Redis, logger)
	defer rds.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	adminRepo := repository.NewPlatformAdminRepository(pool)
	businessRepo := repository.NewBusinessRepository(pool)
	memberRepo := repository.NewMemberRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	inviteRepo := repository.NewInviteRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)
	onboardingRepo := repository.NewOnboardingRepository(pool)
	widgetRepo := repository.NewWidgetRepository(pool)
	contextRepo := repository.NewBusinessContextRepository(pool)
	conversationRepo := repository.NewConversationRepository(pool)
	rateLimitRepo := repository.NewRateLimitRepository(rds.Client)

	dispatcher := events.NewInMemoryDispatcher()
	mail := mailer.New(cfg.Mailer, logger)
	calendarClient := calendar.NewClient(cfg.Calendar)
	llmClient := llm.NewClient(cfg.LLM)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{UserRepo: userRepo})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		MemberRepo: memberRepo,
		Dispatcher: dispatcher,
	})
	memberService := service.NewMemberService(memberRepo)
	inviteService := service.NewInviteService(service.InviteDependencies{
		InviteRepo:    inviteRepo,
		BusinessRepo:  businessRepo,
		UserRepo:      userRepo,
		RateLimitRepo: rateLimitRepo,
		Dispatcher:    dispatcher,
		BaseURL:       cfg.App.BaseURL,
		BcryptCost:    cfg.Auth.BcryptCost,
	})
	appointmentService := service.NewAppointmentService(appointmentRepo, calendarClient)
	onboardingService := service.NewOnboardingService(onboardingRepo, businessRepo, userRepo)
	widgetService := service.NewWidgetService(widgetRepo, memberRepo, cfg.Widget.ScriptURL)
	businessService := service.NewBusinessService(businessRepo, contextRepo, memberRepo, userRepo)
	insightService := service.NewInsightService(llmClient, conversationRepo, memberRepo)
	analyticsService := service.NewAnalyticsService(ticketRepo, conversationRepo, memberRepo)
	notificationService := service.NewNotificationService(dispatcher, mail, logger)

	worker.StartNotificationWorker(notificationService)
	sweeper := worker.StartInviteSweeper(inviteRepo, logger)
	defer sweeper.Stop()

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, adminRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, rds),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Members:        handlers.NewMembersHandler(memberService),
		Invites:        handlers.NewInvitesHandler(inviteService),
		Appointments:   handlers.NewAppointmentsHandler(appointmentService),
		Onboarding:     handlers.NewOnboardingHandler(onboardingService, cfg.App.UploadDir),
		Business:       handlers.NewBusinessHandler(businessService),
		Widget:         handlers.NewWidgetHandler(widgetService),
		Insights:       handlers.NewInsightsHandler(insightService, analyticsService),
		Admin:          handlers.NewAdminHandler(businessService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
