package routes

import (
	"net/http"

	apperrors "github.com/KingGimer44/VideoJuego/common/errors"
	"github.com/KingGimer44/VideoJuego/controllers"

	"github.com/gin-gonic/gin"
)

// APIPrefix is the second mount point for every resource route.
const APIPrefix = "/api"

// RegisterAuthRoutes sets up login and registration.
func RegisterAuthRoutes(r gin.IRouter, ac *controllers.AuthController) {
	authRoutes := r.Group("/auth")
	authRoutes.POST("/login", ac.Login)
	authRoutes.POST("/register", ac.Register)
}

// RegisterGameRoutes sets up the catalog. writeGuards run before the
// create, update and delete handlers only.
func RegisterGameRoutes(r gin.IRouter, gc *controllers.GameController, writeGuards ...gin.HandlerFunc) {
	gameRoutes := r.Group("/games")
	gameRoutes.GET("", gc.ListGames)
	gameRoutes.GET("/:id", gc.GetGame)

	writeRoutes := gameRoutes.Group("")
	writeRoutes.Use(writeGuards...)
	writeRoutes.POST("", gc.CreateGame)
	writeRoutes.PUT("/:id", gc.UpdateGame)
	writeRoutes.DELETE("/:id", gc.DeleteGame)
}

// RegisterSystemRoutes adds /health and the JSON 404 and 405 fallbacks.
func RegisterSystemRoutes(r *gin.Engine, serviceName string) {
	r.HandleMethodNotAllowed = true

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": serviceName})
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": apperrors.MsgRouteNotFound})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": apperrors.MsgMethodNotAllowed})
	})
}

// Register mounts auth and games at the root and under /api, plus the system routes.
func Register(r *gin.Engine, serviceName string, ac *controllers.AuthController, gc *controllers.GameController, writeGuards ...gin.HandlerFunc) {
	for _, base := range []gin.IRouter{r, r.Group(APIPrefix)} {
		RegisterAuthRoutes(base, ac)
		RegisterGameRoutes(base, gc, writeGuards...)
	}
	RegisterSystemRoutes(r, serviceName)
}
