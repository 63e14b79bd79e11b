package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"cambio_wallet_back/pkg/apperr"
)

type Error struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	logrus.Error(message)
	c.AbortWithStatusJSON(statusCode, Error{Message: message})
}

// newDomainErrorResponse подбирает статус по доменной ошибке, чтобы клиент
// видел, какое именно предусловие нарушено, а не общий 500
func newDomainErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidPair):
		newErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrInsufficientFunds):
		newErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, apperr.ErrRateUnavailable):
		newErrorResponse(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, apperr.ErrQuoteExpired):
		newErrorResponse(c, http.StatusGone, err.Error())
	case errors.Is(err, apperr.ErrPairExists), errors.Is(err, apperr.ErrConcurrentUpdate):
		newErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		newErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		newErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

func wrapOkJSON(c *gin.Context, response map[string]interface{}) {
	c.JSON(http.StatusOK, response)
}
