package router

import (
	"campusMatching/internal/middleware"
	"campusMatching/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupStudentRoutes(api *echo.Group, handler *rest.StudentHandler, authRequired echo.MiddlewareFunc) {
	students := api.Group("/students")

	students.POST("/login", handler.Login)
	students.POST("/logout", handler.Logout, authRequired)
	students.GET("/me", handler.Me, authRequired)
}

func SetupClubRoutes(api *echo.Group, handler *rest.ClubHandler) {
	clubs := api.Group("/clubs")

	clubs.GET("", handler.GetAllClubs)
	clubs.GET("/:id", handler.GetClubByID)
}

func SetBanditRoutes(api *echo.Group, handler *rest.BanditHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)
	reco.GET("", handler.Recommend, middleware.RecommendMetrics("recommend"))
	reco.GET("/best", handler.Best, middleware.RecommendMetrics("best"))
	reco.GET("/debug", handler.DebugRecommend, middleware.RecommendMetrics("debug"))
	reco.POST("/feedback", handler.Feedback)
}

func SetBanditAdminRoutes(api *echo.Group, handler *rest.BanditAdminHandler, authRequired, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin/bandit", authRequired, adminOnly)

	admin.POST("/reset", handler.Reset)
	admin.GET("/stats", handler.Stats)
	admin.POST("/replay", handler.Replay)
}
