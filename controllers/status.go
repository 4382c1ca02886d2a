package controllers

import (
	"net/http"
	"time"

	"Tally/services/store"
	"Tally/sync"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

// @Summary Root informational endpoint
// @Description Names the service and points at the socket.io entrypoint
// @Tags status
// @Produce json
// @Success 200 {object} object{service=string,socket=string}
// @Router / [get]
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Tally session server",
		"socket":  "/socket.io/",
	})
}

// @Summary Liveness check
// @Description Returns pong while the process is serving
// @Tags status
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// @Summary Service status report
// @Description Live session count, uptime, and archive depth when the PostgreSQL mirror is enabled. Pure reporting, touches no session state.
// @Tags status
// @Produce json
// @Success 200 {object} object{status=string,live_sessions=integer,uptime=string}
// @Router /status [get]
func Status(sessionStore *store.Store, syncManager *sync.SyncManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := gin.H{
			"status":        "ok",
			"live_sessions": sessionStore.Count(),
			"uptime":        time.Since(startedAt).Round(time.Second).String(),
		}

		if syncManager != nil {
			if count, err := syncManager.ArchivedCount(); err == nil {
				response["archived_sessions"] = count
			}
		}

		c.JSON(http.StatusOK, response)
	}
}
