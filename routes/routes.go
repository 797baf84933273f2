package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/kajalsharma987/my-leave-app/handlers"
	"github.com/kajalsharma987/my-leave-app/middlewares"
	"github.com/kajalsharma987/my-leave-app/models"
	"github.com/kajalsharma987/my-leave-app/services"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, svc *services.Service, jwtSecret string) {
	auth := handlers.NewAuthHandler(svc, jwtSecret)
	lv := handlers.NewLeaveHandler(svc)

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.POST("/auth/register", auth.Register)
	e.POST("/auth/login", auth.Login)

	authMW := middlewares.RequireAuth(jwtSecret)

	// ===== Any authenticated user =====
	e.POST("/auth/logout", auth.Logout, authMW)
	e.GET("/teachers", lv.Teachers, authMW)

	// ===== Requesters (students and teachers submit leaves) =====
	leaves := e.Group("/leaves", authMW,
		middlewares.RequireRole(models.RoleStudent, models.RoleTeacher))
	leaves.POST("", lv.Create)
	leaves.GET("/mine", lv.Mine)
	leaves.GET("/day-count", lv.DayCount)

	// ===== Teacher approval queue =====
	teacher := e.Group("/teacher", authMW, middlewares.RequireRole(models.RoleTeacher))
	teacher.GET("/leave-requests", lv.TeacherQueue)
	teacher.POST("/leave-requests/:id/approve", lv.TeacherApprove)
	teacher.POST("/leave-requests/:id/reject", lv.TeacherReject)

	// ===== Admin approval queue =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole(models.RoleAdmin))
	admin.GET("/leave-requests", lv.AdminQueue)
	admin.POST("/leave-requests/:id/approve", lv.AdminApprove)
	admin.POST("/leave-requests/:id/reject", lv.AdminReject)
}
