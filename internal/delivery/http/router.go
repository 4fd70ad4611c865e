package http

import (
	"net/http"

	"github.com/clockvault/timeclock-service/internal/delivery/http/handlers"
	"github.com/clockvault/timeclock-service/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(ledgerHandler *handlers.LedgerHandler, adjustmentHandler *handlers.AdjustmentHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1", middleware.TenantRequired())
	{
		v1.POST("/clock-events", ledgerHandler.AppendClockEvent)
		v1.GET("/clock-events", ledgerHandler.ListTenantRecords)
		v1.GET("/clock-events/pending", ledgerHandler.ListPendingRecords)
		v1.GET("/records/:id", ledgerHandler.GetRecord)
		v1.PATCH("/records/:id/status", ledgerHandler.SetRecordStatus)
		v1.POST("/records/:id/notes", ledgerHandler.AddRecordNote)
		v1.GET("/records/:id/verify", ledgerHandler.VerifyRecord)
		v1.GET("/users/:userId/clock-events", ledgerHandler.ListUserRecords)
		v1.GET("/users/:userId/clock-events/last", ledgerHandler.GetLastRecord)

		v1.POST("/adjustments", adjustmentHandler.RequestAdjustment)
		v1.GET("/adjustments", adjustmentHandler.ListAdjustments)
		v1.GET("/adjustments/:id", adjustmentHandler.GetAdjustment)
		v1.POST("/adjustments/:id/approve", adjustmentHandler.ApproveAdjustment)
		v1.POST("/adjustments/:id/reject", adjustmentHandler.RejectAdjustment)
	}

	return router
}
