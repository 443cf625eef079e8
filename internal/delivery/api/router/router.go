// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/guesssays/med-platform/config"
	"github.com/guesssays/med-platform/internal/delivery/api/middleware"
	"github.com/guesssays/med-platform/internal/delivery/api/router/handler"
	"github.com/guesssays/med-platform/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	ClinicHandler       *handler.ClinicHandler
	ProfileHandler      *handler.ProfileHandler
	AppointmentHandler  *handler.AppointmentHandler
	ContentHandler      *handler.ContentHandler
	SubscriptionHandler *handler.SubscriptionHandler
	PaymentHandler      *handler.PaymentHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
	Config              *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	clinicHandler       *handler.ClinicHandler
	profileHandler      *handler.ProfileHandler
	appointmentHandler  *handler.AppointmentHandler
	contentHandler      *handler.ContentHandler
	subscriptionHandler *handler.SubscriptionHandler
	paymentHandler      *handler.PaymentHandler
	authMiddleware      *middleware.AuthMiddleware
	rateLimit           *middleware.RateLimitMiddleware
	config              *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		userHandler:         params.UserHandler,
		clinicHandler:       params.ClinicHandler,
		profileHandler:      params.ProfileHandler,
		appointmentHandler:  params.AppointmentHandler,
		contentHandler:      params.ContentHandler,
		subscriptionHandler: params.SubscriptionHandler,
		paymentHandler:      params.PaymentHandler,
		authMiddleware:      params.AuthMiddleware,
		rateLimit:           params.RateLimitMiddleware,
		config:              params.Config,
	}
}

// RegisterRoutes sets up all the API routes under the configured base path.
func (r *router) RegisterRoutes(e *echo.Echo) {
	base := e.Group(r.config.HTTP.BasePath)
	authenticated := r.authMiddleware.Authenticate
	requireRole := r.authMiddleware.RequireRole

	// Health check endpoint
	base.GET("/health", handler.HealthCheck)

	// Auth routes. Credential entry points are rate limited per client IP.
	authGroup := base.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register, r.rateLimit.Limit("register"))
		authGroup.POST("/login", r.authHandler.Login, r.rateLimit.Limit("login"))
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.POST("/password/forgot", r.authHandler.ForgotPassword, r.rateLimit.Limit("forgot"))
		authGroup.POST("/password/reset", r.authHandler.ResetPassword, r.rateLimit.Limit("reset"))
		authGroup.POST("/password/change", r.authHandler.ChangePassword, authenticated)

		authGroup.GET("/sessions", r.userHandler.ListSessions, authenticated)
		authGroup.DELETE("/sessions/:id", r.userHandler.RevokeSession, authenticated)
	}

	usersGroup := base.Group("/users", authenticated)
	{
		usersGroup.GET("/me", r.userHandler.Me)
	}

	adminGroup := base.Group("/admin", authenticated)
	{
		adminGroup.GET("/whoami", r.userHandler.WhoAmI)
		adminGroup.GET("/only", r.userHandler.AdminOnly, requireRole(entity.RoleAdmin))
		adminGroup.PATCH("/users/:id/role", r.userHandler.UpdateRole, requireRole(entity.RoleAdmin))
		adminGroup.PATCH("/payments/:id/status", r.paymentHandler.UpdatePaymentStatus, requireRole(entity.RoleAdmin))
	}

	clinicsGroup := base.Group("/clinics")
	{
		clinicsGroup.GET("", r.clinicHandler.ListClinics)
		clinicsGroup.GET("/:slug", r.clinicHandler.GetClinic)
		clinicsGroup.POST("", r.clinicHandler.CreateClinic, authenticated, requireRole(entity.RoleAdmin))
	}

	doctorsGroup := base.Group("/doctors")
	{
		doctorsGroup.GET("", r.profileHandler.ListDoctors)
		doctorsGroup.GET("/:id", r.profileHandler.GetDoctor)
		doctorsGroup.GET("/:id/qr", r.subscriptionHandler.GenerateSubscriptionQR)
		doctorsGroup.PUT("/me", r.profileHandler.UpsertDoctorProfile, authenticated, requireRole(entity.RoleDoctor))
	}

	patientsGroup := base.Group("/patients", authenticated, requireRole(entity.RolePatient))
	{
		patientsGroup.GET("/me", r.profileHandler.GetPatientProfile)
	}

	appointmentsGroup := base.Group("/appointments", authenticated)
	{
		appointmentsGroup.POST("", r.appointmentHandler.Book, requireRole(entity.RolePatient))
		appointmentsGroup.GET("", r.appointmentHandler.List)
		appointmentsGroup.POST("/:id/cancel", r.appointmentHandler.Cancel)
	}

	contentGroup := base.Group("/content")
	{
		contentGroup.GET("", r.contentHandler.ListContent)
		contentGroup.GET("/:id", r.contentHandler.GetContent)
		contentGroup.GET("/:id/media", r.contentHandler.DownloadMedia)
		contentGroup.POST("", r.contentHandler.CreateContent, authenticated, requireRole(entity.RoleDoctor))
		contentGroup.PUT("/:id/media", r.contentHandler.UploadMedia, authenticated, requireRole(entity.RoleDoctor, entity.RoleAdmin))
	}

	subscriptionsGroup := base.Group("/subscriptions", authenticated, requireRole(entity.RolePatient))
	{
		subscriptionsGroup.POST("", r.subscriptionHandler.Subscribe)
		subscriptionsGroup.POST("/qr", r.subscriptionHandler.ProcessQRSubscription)
		subscriptionsGroup.GET("", r.subscriptionHandler.ListSubscriptions)
		subscriptionsGroup.DELETE("/:id", r.subscriptionHandler.Unsubscribe)
	}

	paymentsGroup := base.Group("/payments", authenticated)
	{
		paymentsGroup.POST("", r.paymentHandler.CreatePayment)
		paymentsGroup.GET("", r.paymentHandler.ListPayments)
	}
}
