package routes

import (
	"time"

	"github.com/souramoo/calorie-counter-vibe/controllers"
	"github.com/souramoo/calorie-counter-vibe/middlewares"
	"github.com/souramoo/calorie-counter-vibe/services"
	"github.com/souramoo/calorie-counter-vibe/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps is everything the router needs to build its handlers.
type Deps struct {
	DB             *gorm.DB
	Log            zerolog.Logger
	Tokens         *utils.TokenManager
	Auth           *services.AuthService
	Users          *services.UserService
	Entries        *services.EntryService
	Stats          *services.StatsService
	Hub            *services.RealtimeHub
	CORSOrigins    []string
	MetricsEnabled bool
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middlewares.RequestID(),
		middlewares.Recovery(d.Log),
		middlewares.RequestLogger(d.Log),
		cors.New(corsConfig(d.CORSOrigins)),
	)
	if d.MetricsEnabled {
		r.Use(middlewares.Metrics())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	health := controllers.NewHealthController(d.DB)
	r.GET("/", health.Root)
	r.GET("/healthz", health.Healthz)

	authCtl := controllers.NewAuthController(d.Auth)
	userCtl := controllers.NewUserController(d.Users)
	entryCtl := controllers.NewEntryController(d.Entries, d.Stats)
	rtCtl := controllers.NewRealtimeController(d.Hub)

	api := r.Group("/api")

	// Public auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.POST("/forgot-password", authCtl.ForgotPassword)
		auth.POST("/reset-password", authCtl.ResetPassword)
	}

	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware(d.Tokens))

	users := protected.Group("/users")
	{
		users.GET("/me", userCtl.GetProfile)
		users.PUT("/me", userCtl.UpdateProfile)
	}

	calories := protected.Group("/calories")
	{
		calories.POST("", entryCtl.Create)
		calories.GET("", entryCtl.List)
		calories.GET("/stats", entryCtl.PeriodStats)
		calories.GET("/series", entryCtl.Series)
		calories.GET("/:id", entryCtl.Get)
		calories.PUT("/:id", entryCtl.Update)
		calories.DELETE("/:id", entryCtl.Delete)
	}

	protected.GET("/ws", rtCtl.EntriesWS)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders: []string{middlewares.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
