package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-collection/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Token reads (public)
		v1.GET("/tokens/:id", handler.GetToken)
		v1.GET("/tokens/:id/uri", handler.GetTokenURI)
		v1.GET("/tokens", handler.ListTokens)

		// Minting and URI updates (owner-gated, requires authentication)
		v1.POST("/tokens", middleware.Auth(authCfg), handler.MintToken)
		v1.POST("/tokens/uri", middleware.Auth(authCfg), handler.MintTokenWithURI)
		v1.PUT("/tokens/:id/uri", middleware.Auth(authCfg), handler.UpdateTokenURI)

		// Collection state (public read, authenticated writes)
		v1.GET("/collection", handler.GetCollection)
		v1.PUT("/collection/uri", middleware.Auth(authCfg), handler.UpdateCollectionURI)
		v1.PUT("/collection/owner", middleware.Auth(authCfg), handler.TransferOwnership)
		v1.DELETE("/collection/owner", middleware.Auth(authCfg), handler.RenounceOwnership)

		// Royalty policy (public quote, authenticated writes)
		v1.GET("/royalty/:id", handler.GetRoyaltyInfo)
		v1.PUT("/royalty/receiver", middleware.Auth(authCfg), handler.UpdateRoyaltyReceiver)
		v1.PUT("/royalty/basis-points", middleware.Auth(authCfg), handler.UpdateRoyaltyBasisPoints)

		// Treasury (deposits open, withdrawals authenticated)
		v1.POST("/treasury/deposits", handler.Deposit)
		v1.POST("/treasury/withdrawals", middleware.Auth(authCfg), handler.WithdrawFunds)
		v1.POST("/treasury/erc20-withdrawals", middleware.Auth(authCfg), handler.WithdrawERC20)

		// Changes journal (public read access)
		v1.GET("/changes", handler.ListChanges)

		// Webhook endpoints (requires API key authentication only)
		v1.POST("/webhooks/clients", middleware.APIKeyAuth(authCfg), handler.CreateWebhookClient)
	}
}
