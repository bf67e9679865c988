package app

import (
	"log/slog"
	"time"

	"github.com/gambit/admin-api/internal/auth"
	"github.com/gambit/admin-api/internal/guard"
	"github.com/gambit/admin-api/internal/handler"
	adminhandler "github.com/gambit/admin-api/internal/handler/admin"
	"github.com/gambit/admin-api/internal/repository"
	"github.com/gambit/admin-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool   *pgxpool.Pool
	Codec  *auth.Codec
	Logger *slog.Logger

	// Login rate limiting; zero values fall back to 20 requests per minute.
	LoginRateLimit  int
	LoginRateWindow time.Duration

	// CORSAllowedOrigins defaults to "*" when empty.
	CORSAllowedOrigins string
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	codec := deps.Codec
	logger := deps.Logger

	// Repositories
	roleRepo := repository.NewRoleRepository()
	adminRepo := repository.NewAdminRepository(roleRepo)
	userRepo := repository.NewUserRepository()
	leagueRepo := repository.NewLeagueRepository()
	teamRepo := repository.NewTeamRepository()
	playerRepo := repository.NewPlayerRepository()
	reelRepo := repository.NewReelRepository()
	subscriberRepo := repository.NewSubscriberRepository()
	contentRepo := repository.NewContentRepository()
	notificationRepo := repository.NewNotificationRepository()
	outboxRepo := repository.NewOutboxRepository()

	permSource := repository.NewAccessResolver(pool, adminRepo, roleRepo)

	// Services
	authSvc := service.NewAuthService(pool, adminRepo, codec)
	userAuthSvc := service.NewUserAuthService(pool, userRepo, codec)
	notifySvc := service.NewNotificationService(pool, notificationRepo, outboxRepo)

	// Handlers
	healthHandler := handler.NewHealthHandler(pool)
	authHandler := handler.NewAuthHandler(authSvc)
	userAuthHandler := handler.NewUserAuthHandler(userAuthSvc)
	userHandler := handler.NewUserHandler(pool, userRepo)
	leagueHandler := handler.NewLeagueHandler(pool, leagueRepo)
	teamHandler := handler.NewTeamHandler(pool, teamRepo, leagueRepo)
	playerHandler := handler.NewPlayerHandler(pool, playerRepo, teamRepo)
	reelHandler := handler.NewReelHandler(pool, reelRepo, playerRepo)
	subscriberHandler := handler.NewSubscriberHandler(pool, subscriberRepo)
	contentHandler := handler.NewContentHandler(pool, contentRepo)
	notificationHandler := handler.NewNotificationHandler(pool, notificationRepo, userRepo, notifySvc)
	dashboardHandler := handler.NewDashboardHandler(pool, leagueRepo, teamRepo, playerRepo, reelRepo)

	adminHandler := adminhandler.NewAdminHandler(pool, adminRepo, roleRepo)
	roleHandler := adminhandler.NewRoleHandler(pool, roleRepo, adminRepo)

	requireToken := auth.RequireToken(codec, permSource)
	requireRefresh := auth.RequireRefreshToken(codec)
	requireUserToken := auth.RequireUserToken(codec)
	requireUserRefresh := auth.RequireUserRefreshToken(codec)

	limit, window := deps.LoginRateLimit, deps.LoginRateWindow
	if limit <= 0 {
		limit = 20
	}
	if window <= 0 {
		window = time.Minute
	}
	loginRateLimit := handler.RateLimit(guard.NewRateLimiter(limit, window))

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORSWithOrigins(deps.CORSAllowedOrigins))
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		// Admin auth
		r.Route("/auth", func(r chi.Router) {
			r.With(loginRateLimit).Post("/login", authHandler.Login)
			r.With(requireRefresh).Post("/refresh", authHandler.Refresh)
			r.Group(func(r chi.Router) {
				r.Use(requireToken)
				r.Get("/me", authHandler.Me)
				r.Post("/change-password", authHandler.ChangePassword)
			})
		})

		// End-user auth
		r.Route("/user-auth", func(r chi.Router) {
			r.Post("/signup", userAuthHandler.Signup)
			r.With(loginRateLimit).Post("/login", userAuthHandler.Login)
			r.With(requireUserRefresh).Post("/refresh", userAuthHandler.Refresh)
			r.Group(func(r chi.Router) {
				r.Use(requireUserToken)
				r.Get("/me", userAuthHandler.Profile)
				r.Put("/me", userAuthHandler.UpdateProfile)
				r.Post("/change-password", userAuthHandler.ChangePassword)
				r.Put("/favorites", userAuthHandler.UpdateFavorites)
			})
		})

		// Everything below requires an access token
		r.Group(func(r chi.Router) {
			r.Use(requireToken)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Get("/stats", userHandler.Stats)
				r.Get("/activity", userHandler.Activity)
				r.Get("/uuid/{uuid}", userHandler.GetByUUID)
				r.Get("/{id}", userHandler.Get)
				r.Group(func(r chi.Router) {
					r.Use(auth.RequirePermission(permSource, auth.PermUsers))
					r.Post("/", userHandler.Create)
					r.Put("/{id}", userHandler.Update)
					r.Delete("/{id}", userHandler.Delete)
				})
			})

			r.Route("/leagues", func(r chi.Router) {
				r.Get("/", leagueHandler.List)
				r.Get("/popular", leagueHandler.Popular)
				r.Get("/{id}", leagueHandler.Get)
				r.Group(func(r chi.Router) {
					r.Use(auth.RequirePermission(permSource, auth.PermLeagues))
					r.Post("/", leagueHandler.Create)
					r.Put("/{id}", leagueHandler.Update)
					r.Put("/{id}/toggle", leagueHandler.Toggle)
					r.Delete("/{id}", leagueHandler.Delete)
				})
			})

			// Teams are gated by LEAGUES even for reads.
			r.Route("/teams", func(r chi.Router) {
				r.Use(auth.RequirePermission(permSource, auth.PermLeagues))
				r.Get("/", teamHandler.List)
				r.Get("/popular", teamHandler.Popular)
				r.Get("/{id}", teamHandler.Get)
				r.Post("/", teamHandler.Create)
				r.Put("/{id}", teamHandler.Update)
				r.Delete("/{id}", teamHandler.Delete)
			})

			r.Route("/players", func(r chi.Router) {
				r.Get("/", playerHandler.List)
				r.Get("/popular", playerHandler.Popular)
				r.Get("/{id}", playerHandler.Get)
				r.Group(func(r chi.Router) {
					r.Use(auth.RequirePermission(permSource, auth.PermLeagues))
					r.Post("/", playerHandler.Create)
					r.Put("/{id}", playerHandler.Update)
					r.Delete("/{id}", playerHandler.Delete)
				})
			})

			r.Route("/reels", func(r chi.Router) {
				r.Get("/", reelHandler.List)
				r.Get("/popular", reelHandler.Popular)
				r.Get("/manage", reelHandler.Manage)
				r.Get("/{id}", reelHandler.Get)
				r.Group(func(r chi.Router) {
					r.Use(auth.RequirePermission(permSource, auth.PermReels))
					r.Post("/", reelHandler.Create)
					r.Put("/{id}", reelHandler.Update)
					r.Delete("/{id}", reelHandler.Delete)
				})
			})

			r.Route("/subscribers", func(r chi.Router) {
				r.Use(auth.RequirePermission(permSource, auth.PermSubscribers))
				r.Get("/", subscriberHandler.List)
				r.Get("/stats", subscriberHandler.Stats)
				r.Get("/{id}", subscriberHandler.Get)
				r.Post("/", subscriberHandler.Create)
				r.Put("/{id}", subscriberHandler.Update)
				r.Delete("/{id}", subscriberHandler.Delete)
			})

			r.Route("/content", func(r chi.Router) {
				r.Use(auth.RequirePermission(permSource, auth.PermContent))
				r.Route("/faqs", func(r chi.Router) {
					r.Get("/", contentHandler.ListFAQs)
					r.Get("/{id}", contentHandler.GetFAQ)
					r.Post("/", contentHandler.CreateFAQ)
					r.Put("/{id}", contentHandler.UpdateFAQ)
					r.Delete("/{id}", contentHandler.DeleteFAQ)
				})
				r.Route("/pages", func(r chi.Router) {
					r.Get("/", contentHandler.ListPages)
					r.Get("/type/{type}", contentHandler.GetPageByType)
					r.Get("/{id}", contentHandler.GetPage)
					r.Post("/", contentHandler.CreatePage)
					r.Put("/{id}", contentHandler.UpdatePage)
					r.Patch("/{id}", contentHandler.UpdatePage)
					r.Delete("/{id}", contentHandler.DeletePage)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Use(auth.RequirePermission(permSource, auth.PermNotification))
				r.Get("/", notificationHandler.List)
				r.Get("/{id}", notificationHandler.Get)
				r.Post("/", notificationHandler.Create)
				r.Put("/{id}", notificationHandler.Update)
				r.Delete("/{id}", notificationHandler.Delete)
				r.Post("/{id}/send", notificationHandler.Send)
			})

			r.Route("/admins", func(r chi.Router) {
				r.Use(auth.RequirePermission(permSource, auth.PermRoles))
				r.Get("/", adminHandler.List)
				r.Get("/{id}", adminHandler.Get)
				r.Post("/", adminHandler.Create)
				r.Put("/{id}", adminHandler.Update)
				r.Patch("/{id}/toggle-status", adminHandler.ToggleStatus)
				r.Delete("/{id}", adminHandler.Delete)
			})

			r.Route("/roles", func(r chi.Router) {
				r.Use(auth.RequirePermission(permSource, auth.PermRoles))
				r.Get("/", roleHandler.List)
				r.Get("/permissions", roleHandler.Permissions)
				r.Get("/admin-assignments", roleHandler.AdminAssignments)
				r.Get("/{id}", roleHandler.Get)
				r.Post("/", roleHandler.Create)
				r.Put("/{id}", roleHandler.Update)
				r.Delete("/{id}", roleHandler.Delete)
				r.Post("/assign", roleHandler.Assign)
				r.Post("/unassign", roleHandler.Unassign)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", dashboardHandler.Overview)
				r.Get("/subscribers", dashboardHandler.Subscribers)
				r.Get("/users", dashboardHandler.Users)
				r.Get("/popular", dashboardHandler.Popular)
				r.Get("/manage-leagues", dashboardHandler.ManageLeagues)
			})
		})
	})

	return r
}
