package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homeservices/internal/audit"
	"github.com/BruksfildServices01/homeservices/internal/auth"
	"github.com/BruksfildServices01/homeservices/internal/config"
	domainPayment "github.com/BruksfildServices01/homeservices/internal/domain/payment"
	"github.com/BruksfildServices01/homeservices/internal/domain/role"
	"github.com/BruksfildServices01/homeservices/internal/handlers"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	infraRepo "github.com/BruksfildServices01/homeservices/internal/infra/repository"
	"github.com/BruksfildServices01/homeservices/internal/infra/storage"
	"github.com/BruksfildServices01/homeservices/internal/middleware"
	ucAnalytics "github.com/BruksfildServices01/homeservices/internal/usecase/analytics"
	ucBooking "github.com/BruksfildServices01/homeservices/internal/usecase/booking"
	ucPayment "github.com/BruksfildServices01/homeservices/internal/usecase/payment"
	ucReview "github.com/BruksfildServices01/homeservices/internal/usecase/review"
)

// Deps are the process singletons the route table is built from. Redis and
// Store may be nil; rate limiting and uploads degrade accordingly.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Tokens   *auth.TokenManager
	Hasher   *auth.PasswordHasher
	Gateway  domainPayment.Gateway
	Redis    *redis.Client
	Store    *storage.S3Store
	Audit    *audit.Dispatcher
	Location *time.Location
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	paymentRepo := infraRepo.NewPaymentGormRepository(d.DB)
	reviewRepo := infraRepo.NewReviewGormRepository(d.DB)
	analyticsRepo := infraRepo.NewAnalyticsGormRepository(d.DB)

	limiter := middleware.NewRateLimiter(d.Redis)

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, d.Audit, d.Location)
	getBookingUC := ucBooking.NewGetBooking(bookingRepo)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, d.Audit)
	updateBookingStatusUC := ucBooking.NewUpdateBookingStatus(
		bookingRepo,
		d.Audit,
		cfg.StrictBookingTransitions,
	)

	createOrderUC := ucPayment.NewCreateOrder(paymentRepo, d.Gateway, cfg.Razorpay.Currency)
	verifyPaymentUC := ucPayment.NewVerifyPayment(paymentRepo, cfg.Razorpay.KeySecret, d.Audit)
	webhookUC := ucPayment.NewHandleWebhook(paymentRepo, cfg.Razorpay.WebhookSecret, d.Audit)

	createReviewUC := ucReview.NewCreateReview(reviewRepo, d.Audit)
	providerReviewsUC := ucReview.NewListProviderReviews(reviewRepo)
	bookingReviewUC := ucReview.NewGetBookingReview(reviewRepo)

	platformAnalyticsUC := ucAnalytics.NewPlatformAnalytics(analyticsRepo)
	providerDashboardUC := ucAnalytics.NewProviderDashboard(analyticsRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Tokens, d.Hasher, cfg.CheckEmailDomain)
	userHandler := handlers.NewUserHandler(d.DB, d.Store)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Store)
	providerHandler := handlers.NewProviderHandler(d.DB, providerDashboardUC)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		getBookingUC,
		listBookingsUC,
		cancelBookingUC,
		updateBookingStatusUC,
	)
	paymentHandler := handlers.NewPaymentHandler(createOrderUC, verifyPaymentUC, webhookUC)
	reviewHandler := handlers.NewReviewHandler(createReviewUC, providerReviewsUC, bookingReviewUC)

	adminHandler := handlers.NewAdminHandler(d.DB, d.Audit, platformAnalyticsUC, listBookingsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Location)

	requireAuth := middleware.AuthMiddleware(d.Tokens)

	r.Use(httperr.ExposeInternal(cfg.IsDevelopment()))

	// ======================================================
	// HEALTH
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	api := r.Group("/api")

	// ------------------------------
	// AUTH
	// ------------------------------
	authAPI := api.Group("/auth")
	{
		authAPI.POST("/register", limiter.Limit(middleware.RegisterRule), authHandler.Register)
		authAPI.POST("/login", limiter.Limit(middleware.LoginRule), authHandler.Login)
		authAPI.POST("/refresh", limiter.Limit(middleware.RefreshRule), authHandler.Refresh)
	}

	// ------------------------------
	// USERS
	// ------------------------------
	users := api.Group("/users", requireAuth)
	{
		users.GET("/profile", userHandler.GetProfile)
		users.PUT("/profile", userHandler.UpdateProfile)
		users.POST("/avatar", userHandler.UploadAvatar)
		users.GET("/bookings", userHandler.Bookings)
	}

	// ------------------------------
	// CATALOG
	// ------------------------------
	services := api.Group("/services")
	{
		services.GET("", serviceHandler.List)
		services.GET("/:id", serviceHandler.Get)

		adminOnly := services.Group("", requireAuth, middleware.RequireRole(role.Admin))
		adminOnly.POST("", serviceHandler.Create)
		adminOnly.PUT("/:id", serviceHandler.Update)
		adminOnly.POST("/:id/image", serviceHandler.UploadImage)
	}

	// ------------------------------
	// PROVIDERS
	// ------------------------------
	providers := api.Group("/providers")
	{
		// static paths before /:id
		self := providers.Group("", requireAuth, middleware.RequireRole(role.Provider))
		self.PUT("/availability", providerHandler.UpdateAvailability)
		self.PUT("/profile", providerHandler.UpdateProfile)
		self.GET("/dashboard/stats", providerHandler.Dashboard)

		providers.GET("", providerHandler.List)
		providers.GET("/:id", providerHandler.Get)
	}

	// ------------------------------
	// BOOKINGS
	// ------------------------------
	bookings := api.Group("/bookings", requireAuth)
	{
		bookings.POST("", bookingHandler.Create)
		bookings.GET("", bookingHandler.List)
		bookings.GET("/:id", bookingHandler.Get)
		bookings.PUT("/:id/cancel", bookingHandler.Cancel)
		bookings.PUT("/:id/status", bookingHandler.UpdateStatus)
	}

	// ------------------------------
	// PAYMENTS
	// ------------------------------
	payments := api.Group("/payments")
	{
		// called by the gateway, authenticated by body signature
		payments.POST("/webhook", paymentHandler.Webhook)

		payments.POST("/create-order", requireAuth, paymentHandler.CreateOrder)
		payments.POST("/verify", requireAuth, paymentHandler.Verify)
	}

	// ------------------------------
	// REVIEWS
	// ------------------------------
	reviews := api.Group("/reviews")
	{
		reviews.POST("", requireAuth, reviewHandler.Create)
		reviews.GET("/provider/:providerId", reviewHandler.ListByProvider)
		reviews.GET("/booking/:bookingId", requireAuth, reviewHandler.GetByBooking)
	}

	// ------------------------------
	// ADMIN
	// ------------------------------
	admin := api.Group("/admin", requireAuth, middleware.RequireRole(role.Admin))
	{
		admin.GET("/providers/pending", adminHandler.PendingProviders)
		admin.PUT("/providers/:id/approve", adminHandler.ApproveProvider)
		admin.GET("/analytics", adminHandler.Analytics)
		admin.GET("/users", adminHandler.Users)
		admin.GET("/bookings", adminHandler.Bookings)
		admin.GET("/audit-logs", auditLogsHandler.List)
	}
}
