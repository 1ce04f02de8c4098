package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fotolog/fotolog-backend/internal/http/response"
	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/services"
)

type AuthHandler struct {
	accountService services.AccountService
}

func NewAuthHandler(accountService services.AccountService) *AuthHandler {
	return &AuthHandler{accountService: accountService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Email == "" || req.Password == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("email and password are required"))
		return
	}

	identity, err := ah.accountService.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrAlreadyExists):
			response.RespondError(c, http.StatusConflict, "email_taken", err)
		case errors.Is(err, errs.ErrProviderUnavailable):
			response.RespondError(c, http.StatusServiceUnavailable, "provider_unavailable", err)
		default:
			response.RespondError(c, http.StatusBadRequest, "registration_failed", err)
		}
		return
	}
	response.RespondOK(c, gin.H{"id": identity.ID.String(), "email": identity.Email})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	identity, accessToken, err := ah.accountService.Login(c.Request.Context(), req.Email, req.Password, c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidCredentials):
			response.RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
		case errors.Is(err, errs.ErrProviderUnavailable):
			response.RespondError(c, http.StatusServiceUnavailable, "provider_unavailable", err)
		default:
			response.RespondError(c, http.StatusUnauthorized, "login_failed", err)
		}
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": accessToken,
		"id":           identity.ID.String(),
		"email":        identity.Email,
	})
}
