package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talkserve/backend/internal/api/http/handlers"
	"github.com/talkserve/backend/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Members        *handlers.MembersHandler
	Invites        *handlers.InvitesHandler
	Appointments   *handlers.AppointmentsHandler
	Onboarding     *handlers.OnboardingHandler
	Business       *handlers.BusinessHandler
	Widget         *handlers.WidgetHandler
	Insights       *handlers.InsightsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/register", cfg.Auth.Register)
	app.Post("/auth/login", cfg.Auth.Login)

	// Public invite redemption and widget embed.
	app.Get("/invites/validate", cfg.Invites.ValidateInvite)
	app.Post("/invites/accept", cfg.Invites.AcceptInvite)
	app.Get("/widget/script", cfg.Widget.EmbedScript)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Get("/onboarding", cfg.Onboarding.GetOnboarding)
	protected.Post("/onboarding", cfg.Onboarding.CreateOnboarding)
	protected.Patch("/onboarding", cfg.Onboarding.UpdateOnboarding)
	protected.Post("/onboarding/complete", cfg.Onboarding.CompleteOnboarding)

	business := protected.Group("/businesses/:businessId")
	business.Get("", cfg.Business.GetBusiness)
	business.Patch("", cfg.Business.UpdateBusiness)
	business.Get("/context", cfg.Business.GetContext)
	business.Put("/context", cfg.Business.SaveContext)

	business.Post("/tickets", cfg.Tickets.CreateTicket)
	business.Get("/tickets", cfg.Tickets.ListTickets)
	business.Get("/tickets/:id", cfg.Tickets.GetTicket)
	business.Patch("/tickets/:id", cfg.Tickets.UpdateTicket)

	business.Get("/members", cfg.Members.ListMembers)
	business.Patch("/members/:id", cfg.Members.UpdateMember)
	business.Delete("/members/:id", cfg.Members.RemoveMember)

	business.Post("/invites", cfg.Invites.CreateInvite)
	business.Get("/invites", cfg.Invites.ListInvites)

	business.Get("/widget", cfg.Widget.GetSettings)
	business.Patch("/widget", cfg.Widget.UpdateSettings)
	business.Get("/chat-experience", cfg.Widget.GetChatExperience)
	business.Put("/chat-experience", cfg.Widget.UpdateChatExperience)

	business.Post("/sentiment", cfg.Insights.AnalyzeSentiment)
	business.Post("/summaries", cfg.Insights.SaveSummary)
	business.Get("/summaries", cfg.Insights.ListSummaries)
	business.Get("/analytics", cfg.Insights.GetAnalytics)

	admin := protected.Group("/admin", cfg.AuthMiddleware.RequirePlatformAdmin)
	admin.Get("/owners", cfg.Admin.ListOwners)
	admin.Patch("/owners/:userId", cfg.Admin.UpdateOwner)
	admin.Get("/appointments", cfg.Appointments.ListAppointments)
	admin.Post("/appointments/sync", cfg.Appointments.SyncAppointments)
}
