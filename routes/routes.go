package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/reposekdz/eastgate-sub004/controllers"
	"github.com/reposekdz/eastgate-sub004/middleware"
	"github.com/reposekdz/eastgate-sub004/models"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	avc *controllers.AvailabilityController,
	bc *controllers.BookingController,
	rc *controllers.RoomController,
	ac *controllers.AuthController,
	jwtSecret string,
	rdb *redis.Client,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Booking writes are the only surface worth rate limiting.
	writeLimit := middleware.RateLimit(rdb, 30, time.Minute)

	api := r.Group("/api")
	{
		api.GET("/availability", avc.Check)
		api.GET("/rooms", rc.GetRooms)
		api.GET("/rooms/:id", rc.GetRoom)
		api.GET("/branches", rc.GetBranches)

		api.POST("/auth/login", ac.Login)

		bookings := api.Group("/bookings", middleware.OptionalStaff(jwtSecret))
		{
			bookings.POST("", writeLimit, bc.CreateBooking)
			bookings.GET("/:id", bc.GetBooking)
			bookings.PUT("/:id", writeLimit, bc.UpdateBooking)
			bookings.DELETE("/:id", bc.CancelBooking)
		}

		staff := api.Group("", middleware.RequireStaff(jwtSecret))
		{
			staff.GET("/bookings", bc.ListBookings)
			staff.POST("/staff/bookings", writeLimit, bc.CreateStaffBooking)
			staff.POST("/bookings/:id/confirm", bc.ConfirmBooking)
			staff.POST("/bookings/:id/checkin", bc.CheckInBooking)
			staff.POST("/bookings/:id/checkout", bc.CheckOutBooking)
			staff.PATCH("/rooms/:id/status", rc.UpdateRoomStatus)
		}

		admin := api.Group("", middleware.RequireStaff(jwtSecret, models.StaffRoleAdmin))
		{
			admin.POST("/rooms", rc.CreateRoom)
			admin.PUT("/rooms/:id", rc.UpdateRoom)
			admin.PUT("/rooms/:id/override", rc.SetPriceOverride)
			admin.POST("/branches", rc.CreateBranch)
		}
	}

	return r
}
