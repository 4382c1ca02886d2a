package routes

import (
	"Tally/controllers"
	"Tally/services/store"
	"Tally/sync"
	"Tally/utils"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures the HTTP reporting surface. All session traffic
// goes over socket.io; nothing here mutates state.
func SetupRoutes(router *gin.Engine, sessionStore *store.Store, syncManager *sync.SyncManager) {
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/")

	api.GET("/", controllers.Root)

	api.GET("/ping", controllers.Ping)

	api.GET("/status", controllers.Status(sessionStore, syncManager))
}
