package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cambio_wallet_back/models"
	"cambio_wallet_back/pkg/middleware"
)

func (h *Handler) RatesSnapshot(c *gin.Context) {
	snapshot, err := h.service.Conversion.Rates(c.Request.Context(), c.Param("base"))
	if err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// Предварительный расчёт конвертации, балансы не меняет
func (h *Handler) Quote(c *gin.Context) {
	userId, ok := middleware.GetUserId(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.QuoteRequest
	if err := c.BindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := h.service.Conversion.Quote(c.Request.Context(), userId, req)
	if err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	wrapOkJSON(c, map[string]interface{}{
		"quote": quote,
	})
}

// Применение котировки: списание, зачисление, история — одной транзакцией
func (h *Handler) Commit(c *gin.Context) {
	userId, ok := middleware.GetUserId(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.CommitRequest
	if err := c.BindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.service.Conversion.Commit(c.Request.Context(), userId, req.QuoteId)
	if err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	wrapOkJSON(c, map[string]interface{}{
		"conversion": record,
	})
}

func (h *Handler) GetHistory(c *gin.Context) {
	userId, ok := middleware.GetUserId(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	history, err := h.service.Conversion.History(userId)
	if err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	wrapOkJSON(c, map[string]interface{}{
		"history": history,
	})
}

func (h *Handler) DeleteHistoryRecord(c *gin.Context) {
	userId, ok := middleware.GetUserId(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	recordId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid record id")
		return
	}

	if err := h.service.Conversion.DeleteRecord(userId, recordId); err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
