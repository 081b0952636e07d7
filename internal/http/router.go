package api

import (
	stdhttp "net/http"

	intconfig "travelportal/internal/config"
	h "travelportal/internal/http/handlers"
	"travelportal/internal/http/middleware"
	"travelportal/internal/utils"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, hd *h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.AllowedOrigins()))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.LogError("", "router", "trusted_proxies", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	authLimit := middleware.NewRateLimiter(env.RateLimitPerMinute).Middleware()
	submitLimit := middleware.NewRateLimiter(env.RateLimitPerMinute).Middleware()
	requireAuth := middleware.RequireAuth(hd.Auth)
	optionalAuth := middleware.OptionalAuth(hd.Auth)
	session := middleware.WithSession(hd.Auth)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", hd.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", authLimit, hd.Login)
		auth.POST("/login-phone", authLimit, hd.LoginPhone)
		auth.POST("/signup", authLimit, hd.Signup)
		auth.POST("/logout", requireAuth, session, hd.Logout)
		auth.GET("/me", requireAuth, session, hd.Me)

		// Catalog
		api.GET("/packages", hd.ListPackages)
		api.GET("/packages/:id", hd.GetPackage)
		api.POST("/packages", requireAuth, middleware.RequireRoles("admin"), hd.CreatePackage)
		api.GET("/hotels", hd.ListHotels)
		api.GET("/hotels/:id", hd.GetHotel)
		api.GET("/form-options", hd.FormOptions)
		api.GET("/additional-services", hd.AdditionalServices)

		// Booking wizards
		drafts := api.Group("/wizard/:flow/drafts", optionalAuth)
		drafts.POST("", hd.CreateDraft)
		drafts.GET("/:id", hd.GetDraft)
		drafts.PATCH("/:id", hd.PatchDraft)
		drafts.POST("/:id/next", hd.NextStep)
		drafts.POST("/:id/prev", hd.PrevStep)
		drafts.POST("/:id/jump", hd.JumpStep)
		drafts.POST("/:id/submit", submitLimit, hd.SubmitDraft)
		drafts.DELETE("/:id", hd.DiscardDraft)

		// Bookings
		api.GET("/bookings/:kind/:id/confirmation", optionalAuth, hd.BookingConfirmationPDF)

		admin := api.Group("/admin", requireAuth, middleware.RequireRoles("admin"))
		admin.GET("/bookings/:kind/:id/payment", hd.GetPayment)
		admin.POST("/bookings/:kind/:id/payment", hd.ValidatePayment)
		admin.POST("/bookings/:kind/:id/cancel", hd.CancelBooking)

		// Uploads & profile
		api.POST("/upload", requireAuth, hd.Upload)
		api.POST("/profile/avatar", requireAuth, hd.UpdateAvatar)
	}

	h.SetRouter(r)
	return r
}
