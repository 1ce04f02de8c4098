package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fotolog/fotolog-backend/internal/http/response"
	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/requestdata"
	"github.com/fotolog/fotolog-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errs.ErrNotAuthenticated)
		return
	}

	user, err := uh.userService.GetByID(c.Request.Context(), rd.IdentityID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			// Authenticated but never provisioned; the first upload will
			// create the row.
			response.RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "lookup_failed", err)
		return
	}
	response.RespondOK(c, user)
}

func (uh *UserHandler) UpdateDisplayName(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errs.ErrNotAuthenticated)
		return
	}

	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := uh.userService.UpdateDisplayName(c.Request.Context(), rd.IdentityID, req.DisplayName); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			response.RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "update_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (uh *UserHandler) ChangePassword(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errs.ErrNotAuthenticated)
		return
	}

	var req struct {
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.NewPassword == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("new_password is required"))
		return
	}

	if err := uh.userService.ChangeOwnCredential(c.Request.Context(), rd.IdentityID, req.NewPassword); err != nil {
		if errors.Is(err, errs.ErrProviderUnavailable) {
			response.RespondError(c, http.StatusServiceUnavailable, "provider_unavailable", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "update_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
