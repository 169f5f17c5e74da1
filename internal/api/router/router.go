package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"acadportal/backend/config"
	"acadportal/backend/internal/api/handler"
	"acadportal/backend/internal/api/middleware"
	"acadportal/backend/internal/model"
	"acadportal/backend/pkg/jwt"
	"acadportal/backend/pkg/redis"
)

// Setup builds the gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// authentication (no token required)
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// authenticated routes
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// batches and eligibility
			batches := authorized.Group("/batches")
			{
				batches.GET("", h.Batch.ListBatches)
				batches.GET("/:id", h.Batch.GetBatch)
				batches.GET("/:id/eligibility", middleware.RoleAuth(model.RoleAdmin), h.Batch.GetEligibility)
			}

			// recurring slot templates
			timeSlots := authorized.Group("/time-slots")
			{
				timeSlots.GET("", h.TimeSlot.ListTimeSlots)
				timeSlots.GET("/:id", h.TimeSlot.GetTimeSlot)
				timeSlots.POST("", middleware.RoleAuth(model.RoleAdmin), h.TimeSlot.CreateTimeSlot)
				timeSlots.POST("/check-conflict", middleware.RoleAuth(model.RoleAdmin), h.TimeSlot.CheckConflict)
				timeSlots.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.TimeSlot.UpdateTimeSlot)
				timeSlots.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.TimeSlot.DeleteTimeSlot)
			}

			// dated sessions
			sessions := authorized.Group("/sessions")
			{
				sessions.POST("/materialize", middleware.RoleAuth(model.RoleAdmin), h.Session.Materialize)
				sessions.GET("", h.Session.ListSessions)
				sessions.GET("/:id", h.Session.GetSession)
				sessions.PUT("/:id/status", middleware.RoleAuth(model.RoleAdmin, model.RoleFaculty), h.Session.UpdateStatus)
				sessions.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Session.DeleteSession)

				// attendance
				sessions.GET("/:id/attendance", middleware.RoleAuth(model.RoleAdmin, model.RoleFaculty), h.Attendance.GetRoster)
				sessions.POST("/:id/attendance", middleware.RoleAuth(model.RoleAdmin, model.RoleFaculty), h.Attendance.SaveAttendance)
			}

			// exports
			export := authorized.Group("/export")
			export.Use(middleware.RoleAuth(model.RoleAdmin, model.RoleFaculty))
			{
				export.GET("/sessions", h.Export.ExportSessionsXLSX)
				export.GET("/sessions.ics", h.Export.ExportSessionsICS)
			}
		}
	}

	return r
}
