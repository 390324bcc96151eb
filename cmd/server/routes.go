package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"passlink.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	linkHandler     *handlers.LinkHandler
	redeemHandler   *handlers.RedeemHandler
	callbackHandler *handlers.CallbackHandler
	verifyHandler   *handlers.VerifyHandler
	issueGuard      gin.HandlerFunc
	redeemGuard     gin.HandlerFunc
	devVerify       bool
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Link management (service-to-service)
		links := v1.Group("/auth/links")
		{
			links.POST("", d.issueGuard, d.linkHandler.Issue)
			links.POST("/invalidate", d.linkHandler.Invalidate)
			links.GET("/status", d.linkHandler.Status)
		}

		// Issuer write-back (internal)
		internal := v1.Group("/internal")
		{
			internal.POST("/verification-links", d.callbackHandler.PutLink)
		}
	}

	// Browser-facing redemption
	auth := r.Group("/auth")
	{
		auth.GET("/redeem", d.redeemGuard, d.redeemHandler.Redeem)
		if d.devVerify {
			// Only routed when the in-process issuer mints the artifacts
			auth.GET("/verify", d.verifyHandler.Verify)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID, Idempotency-Key")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "passlink-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
