package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/config"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/api/handler"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/api/middleware"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/model"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/jwt"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/redis"
)

// Setup builds the Gin engine. withAccounts disables the auth and account
// routes when no database is available; the attendance engine keeps serving
// the device-facing endpoints off the CSV ledger.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger, withAccounts bool) *gin.Engine {
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
		// Device-facing endpoints. The original recognizer spoke to a
		// localhost API without credentials, so these stay unauthenticated
		// but rate-limited.
		attendance := v1.Group("/attendance")
		{
			attendance.POST("/recognized",
				middleware.RateLimit(rdb, 60, time.Minute),
				h.Attendance.Recognized)
			attendance.GET("/status/:name", h.Attendance.ShiftStatus)
			attendance.GET("/today", h.Attendance.Today)
			attendance.GET("/history", h.Attendance.History)
		}

		v1.GET("/shifts/:name/calendar.ics", h.Attendance.ShiftCalendar)

		if withAccounts {
			auth := v1.Group("/auth")
			{
				auth.POST("/login",
					middleware.RateLimit(rdb, 10, time.Minute),
					h.Auth.Login)
				auth.POST("/refresh", h.Auth.Refresh)
			}
		}

		// Dashboard endpoints behind JWT.
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			if withAccounts {
				authorized.POST("/auth/logout", h.Auth.Logout)
				authorized.GET("/auth/me", h.Auth.Me)
				authorized.POST("/auth/change-password", h.Auth.ChangePassword)

				users := authorized.Group("/users", middleware.RoleAuth(model.RoleAdmin))
				{
					users.GET("", h.User.List)
					users.POST("", h.User.Create)
					users.PATCH("/:id", h.User.Update)
					users.GET("/profiles", h.User.Profiles)
					users.POST("/profiles/reload", h.User.ReloadProfiles)
				}

				authorized.GET("/attendance/records",
					middleware.RoleAuth(model.RoleAdmin, model.RoleStaff),
					h.Attendance.Records)
				authorized.GET("/devices",
					middleware.RoleAuth(model.RoleAdmin),
					h.Attendance.Devices)
				authorized.POST("/attendance/auto-checkout",
					middleware.RoleAuth(model.RoleAdmin),
					h.Attendance.AutoCheckout)

				export := authorized.Group("/export", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff))
				{
					export.GET("/attendance", h.Export.ExportDay)
				}

				capture := authorized.Group("/capture", middleware.RoleAuth(model.RoleAdmin))
				{
					capture.POST("/start", h.Capture.Start)
					capture.POST("/stop", h.Capture.Stop)
					capture.GET("/status", h.Capture.Status)
				}
			}
		}
	}

	return r
}
