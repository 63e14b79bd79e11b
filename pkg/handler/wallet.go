package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cambio_wallet_back/models"
	"cambio_wallet_back/pkg/middleware"
)

func (h *Handler) GetBalances(c *gin.Context) {
	userId, ok := middleware.GetUserId(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	balances, err := h.service.Wallet.Balances(userId)
	if err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	wrapOkJSON(c, map[string]interface{}{
		"balances": balances,
	})
}

// Пополнение кошелька. Тело запроса: {currency, amount, method}
func (h *Handler) Deposit(c *gin.Context) {
	userId, ok := middleware.GetUserId(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input models.DepositInput
	if err := c.BindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Wallet.Deposit(userId, input); err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Перевод BRL по pix-ключу. Тело запроса: {pix_key, amount}
func (h *Handler) Send(c *gin.Context) {
	userId, ok := middleware.GetUserId(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input models.SendInput
	if err := c.BindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Wallet.Send(userId, input); err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetTransactions(c *gin.Context) {
	userId, ok := middleware.GetUserId(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	transactions, err := h.service.Wallet.Transactions(userId)
	if err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	wrapOkJSON(c, map[string]interface{}{
		"transactions": transactions,
	})
}
