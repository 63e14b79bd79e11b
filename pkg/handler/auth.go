package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"cambio_wallet_back/models"
	"cambio_wallet_back/pkg/apperr"
	"cambio_wallet_back/pkg/middleware"
)

func (h *Handler) SignUp(c *gin.Context) {
	var input models.SignUpInput
	if err := c.BindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.service.Authorization.SignUp(input)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "cannot create user")
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) SignIn(c *gin.Context) {
	var input models.SignInInput
	if err := c.BindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.service.Authorization.SignIn(input)
	if err != nil {
		newErrorResponse(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	c.JSON(http.StatusOK, tokens)
}

type refreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *Handler) Refresh(c *gin.Context) {
	var input refreshInput
	if err := c.BindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.service.Authorization.Refresh(input.RefreshToken)
	if err != nil {
		newErrorResponse(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) SignOut(c *gin.Context) {
	var input refreshInput
	if err := c.BindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Authorization.SignOut(input.RefreshToken); err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	c.Status(http.StatusNoContent)
}

type resetPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) ResetPasswordRequest(c *gin.Context) {
	var input resetPasswordInput
	if err := c.BindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Authorization.RequestPasswordReset(input.Email); err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	// Отвечаем одинаково независимо от того, существует ли email
	c.Status(http.StatusNoContent)
}

type updatePasswordInput struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func (h *Handler) UpdatePassword(c *gin.Context) {
	var input updatePasswordInput
	if err := c.BindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Authorization.UpdatePassword(input.Token, input.NewPassword); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			newErrorResponse(c, http.StatusUnauthorized, "invalid or expired reset token")
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetMe(c *gin.Context) {
	userId, ok := middleware.GetUserId(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.service.Authorization.GetUser(userId)
	if err != nil {
		newErrorResponse(c, http.StatusUnauthorized, "something went wrong")
		return
	}

	wrapOkJSON(c, map[string]interface{}{
		"user": user,
	})
}

func (h *Handler) GetProfile(c *gin.Context) {
	userId, ok := middleware.GetUserId(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := h.service.Authorization.GetProfile(userId)
	if err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	wrapOkJSON(c, map[string]interface{}{
		"profile": profile,
	})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userId, ok := middleware.GetUserId(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input models.UpdateProfileInput
	if err := c.BindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Authorization.UpdateProfile(userId, input); err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
