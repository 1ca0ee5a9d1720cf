package router

import (
	"time"

	"github.com/circle-umd/circleup-v2/internal/auth"
	"github.com/circle-umd/circleup-v2/internal/config"
	"github.com/circle-umd/circleup-v2/internal/database"
	"github.com/circle-umd/circleup-v2/internal/event"
	"github.com/circle-umd/circleup-v2/internal/friendship"
	"github.com/circle-umd/circleup-v2/internal/middleware"
	"github.com/circle-umd/circleup-v2/internal/profile"
	"github.com/circle-umd/circleup-v2/internal/rsvp"
	"github.com/circle-umd/circleup-v2/internal/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Router struct {
	engine            *gin.Engine
	authHandler       *auth.AuthHandler
	feedHandler       *event.FeedHandler
	rsvpHandler       *rsvp.RSVPHandler
	friendshipHandler *friendship.FriendshipHandler
	profileHandler    *profile.ProfileHandler
	rateLimitMW       *middleware.RateLimitMiddleware
	authMW            *middleware.AuthMiddleware
}

func NewRouter(
	db *gorm.DB,
	redisClient *database.RedisClient,
	minioClient *database.MinIOClient,
	cfg *config.Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	// Add middlewares
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.LogApi())

	// Initialize repositories
	userRepo := auth.NewUserRepository(db)
	profileRepo := profile.NewProfileRepository(db)
	eventRepo := event.NewEventRepository(db)
	rsvpRepo := rsvp.NewRSVPRepository(db)
	friendshipRepo := friendship.NewFriendshipRepository(db)

	// Initialize services
	redisService := services.NewRedisService(redisClient)
	friendshipService := friendship.NewFriendshipService(friendshipRepo, cfg.App.BaseURL)
	authService := auth.NewAuthService(userRepo, friendshipService, cfg.JWT.Secret, cfg.JWT.ExpirationTime)
	profileService := profile.NewProfileService(profileRepo, minioClient)
	feedService := event.NewFeedService(eventRepo)
	rsvpService := rsvp.NewRSVPService(rsvpRepo)

	return &Router{
		engine:            engine,
		authHandler:       auth.NewAuthHandler(authService),
		feedHandler:       event.NewFeedHandler(feedService),
		rsvpHandler:       rsvp.NewRSVPHandler(rsvpService),
		friendshipHandler: friendship.NewFriendshipHandler(friendshipService),
		profileHandler:    profile.NewProfileHandler(profileService, friendshipService),
		rateLimitMW:       middleware.NewRateLimitMiddleware(redisService),
		authMW:            middleware.NewAuthMiddleware(cfg.JWT.Secret),
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", r.authHandler.Register)
	api.POST("/auth/login", r.authHandler.Login)

	// Authenticated routes
	authed := api.Group("/")
	authed.Use(r.authMW.RequireAuth())
	authed.Use(r.rateLimitMW.RateLimit(100, time.Minute)) // 100 requests per minute
	{
		authed.GET("/auth/me", r.authHandler.Me)

		r.feedHandler.RegisterRoutes(authed)
		r.rsvpHandler.RegisterRoutes(authed)
		r.friendshipHandler.RegisterRoutes(authed)
		r.profileHandler.RegisterRoutes(authed)
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
