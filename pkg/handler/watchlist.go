package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cambio_wallet_back/models"
	"cambio_wallet_back/pkg/middleware"
)

func (h *Handler) GetWatchlist(c *gin.Context) {
	userId, ok := middleware.GetUserId(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	entries, err := h.service.Watchlist.List(userId)
	if err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	wrapOkJSON(c, map[string]interface{}{
		"watchlist": entries,
	})
}

func (h *Handler) AddWatchlistEntry(c *gin.Context) {
	userId, ok := middleware.GetUserId(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input models.WatchlistAddInput
	if err := c.BindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.Watchlist.Add(userId, input)
	if err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	wrapOkJSON(c, map[string]interface{}{
		"entry": entry,
	})
}

func (h *Handler) UpdateWatchlistEntry(c *gin.Context) {
	userId, ok := middleware.GetUserId(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid entry id")
		return
	}

	var input models.WatchlistUpdateInput
	if err := c.BindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Watchlist.Update(userId, id, input); err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteWatchlistEntry(c *gin.Context) {
	userId, ok := middleware.GetUserId(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := h.service.Watchlist.Delete(userId, id); err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
