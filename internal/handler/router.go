package handler

import (
	"net/http"
	"strings"

	"hostelhub/internal/campus"
	"hostelhub/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildInfo is reported by /health and /version
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// CORSConfig lists the comma-separated CORS settings
type CORSConfig struct {
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// Deps holds everything the router wires into handlers
type Deps struct {
	Listings     *service.ListingService
	Signup       *service.SignupService
	Bookings     *service.BookingService
	Reviews      *service.ReviewService
	Wishlist     *service.WishlistService
	Dashboard    *service.DashboardService
	Directory    *campus.Directory
	Logger       *zap.Logger
	Build        BuildInfo
	CORS         CORSConfig
	DefaultLimit int
	MaxLimit     int
}

// NewRouter builds the gin engine with every route registered
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(Recovery(d.Logger), RequestLogger(d.Logger))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = splitCSV(d.CORS.AllowedOrigins, "*")
	corsConfig.AllowMethods = splitCSV(d.CORS.AllowedMethods, "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	corsConfig.AllowHeaders = splitCSV(d.CORS.AllowedHeaders, "Content-Type,Authorization")
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "hostelhub",
			"version":    d.Build.Version,
			"build_time": d.Build.BuildTime,
			"git_commit": d.Build.GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    d.Build.Version,
			"build_time": d.Build.BuildTime,
			"git_commit": d.Build.GitCommit,
		})
	})

	listings := NewListingHandler(d.Listings, d.DefaultLimit, d.MaxLimit)
	campusDir := NewCampusHandler(d.Directory)
	signup := NewSignupHandler(d.Signup)
	bookings := NewBookingHandler(d.Bookings)
	reviews := NewReviewHandler(d.Reviews)
	wishlist := NewWishlistHandler(d.Wishlist)
	dashboard := NewDashboardHandler(d.Dashboard)

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Listing endpoints
		apiV1.GET("/listings", listings.List)
		apiV1.POST("/listings/search", listings.Search)
		apiV1.GET("/listings/:id", listings.Get)
		apiV1.POST("/listings", listings.Create)
		apiV1.PUT("/listings/:id", listings.Update)
		apiV1.POST("/listings/:id/assign", listings.AssignAgent)
		apiV1.POST("/listings/:id/verification", listings.SubmitVerification)

		// Review endpoints
		apiV1.GET("/listings/:id/reviews", reviews.List)
		apiV1.POST("/listings/:id/reviews", reviews.Create)
		apiV1.POST("/reviews/:id/helpful", reviews.ToggleHelpful)

		// Campus directory
		apiV1.GET("/campus/towns", campusDir.Towns)
		apiV1.GET("/campus/universities", campusDir.Universities)

		// Signup endpoints
		apiV1.GET("/signup/roles", signup.Roles)
		apiV1.POST("/signup/validate", signup.ValidateStep)
		apiV1.POST("/signup", signup.Register)
		apiV1.POST("/login", signup.Login)

		// Booking endpoints
		apiV1.POST("/bookings/quote", bookings.Quote)
		apiV1.POST("/bookings", bookings.Create)
		apiV1.PATCH("/bookings/:id/status", bookings.UpdateStatus)

		// Per-user endpoints
		apiV1.GET("/users/:id/wishlist", wishlist.List)
		apiV1.POST("/users/:id/wishlist/:listingId", wishlist.Add)
		apiV1.DELETE("/users/:id/wishlist/:listingId", wishlist.Remove)
		apiV1.GET("/users/:id/dashboard", dashboard.Get)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}

func splitCSV(value, fallback string) []string {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
