package handler

import (
	"cambio_wallet_back/pkg/middleware"
	"cambio_wallet_back/pkg/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

type Handler struct {
	service *service.Service
}

func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) InitRoute() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     viper.GetStringSlice("cors.origins"),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	auth := router.Group("/auth")
	{
		auth.POST("/sign-up", h.SignUp)
		auth.POST("/sign-in", h.SignIn)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/sign-out", h.SignOut)
		auth.POST("/reset-password", h.ResetPasswordRequest)
		auth.POST("/update-password", h.UpdatePassword)
		auth.GET("/me", middleware.AuthMiddleware(h.service.Authorization), h.GetMe)
	}

	api := router.Group("/api", middleware.AuthMiddleware(h.service.Authorization))
	{
		api.GET("/profile", h.GetProfile)
		api.PUT("/profile", h.UpdateProfile)

		api.GET("/rates/:base", h.RatesSnapshot)

		wallet := api.Group("/wallet")
		{
			wallet.GET("/balance", h.GetBalances)
			wallet.POST("/deposit", h.Deposit)
			wallet.POST("/send", h.Send)
			wallet.GET("/transactions", h.GetTransactions)
		}

		convert := api.Group("/convert")
		{
			convert.POST("/quote", h.Quote)
			convert.POST("/commit", h.Commit)
			convert.GET("/history", h.GetHistory)
			convert.DELETE("/history/:id", h.DeleteHistoryRecord)
		}

		watchlist := api.Group("/watchlist")
		{
			watchlist.GET("/", h.GetWatchlist)
			watchlist.POST("/", h.AddWatchlistEntry)
			watchlist.PUT("/:id", h.UpdateWatchlistEntry)
			watchlist.DELETE("/:id", h.DeleteWatchlistEntry)
		}
	}

	return router
}
