package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fotolog/fotolog-backend/internal/http/response"
	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/services"
)

type AdminHandler struct {
	adminService  services.AdminService
	maxUploadSize int64
}

func NewAdminHandler(adminService services.AdminService, maxUploadSize int64) *AdminHandler {
	return &AdminHandler{adminService: adminService, maxUploadSize: maxUploadSize}
}

func (ah *AdminHandler) ListUsers(c *gin.Context) {
	users, err := ah.adminService.ListUsers(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, users)
}

func (ah *AdminHandler) UpdateUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	var req struct {
		Email       string  `json:"email"`
		DisplayName *string `json:"display_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := ah.adminService.UpdateUser(c.Request.Context(), userID, req.Email, req.DisplayName); err != nil {
		respondAdminError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ah *AdminHandler) RotateCredential(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
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

	if err := ah.adminService.RotateCredential(c.Request.Context(), userID, req.NewPassword); err != nil {
		respondAdminError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ah *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	if err := ah.adminService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondAdminError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ah *AdminHandler) ListPhotos(c *gin.Context) {
	photos, err := ah.adminService.ListPhotos(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, photos)
}

// UploadPhotoFor stores a photo under an arbitrary owner, skipping the
// pipeline's auth and provisioning stages.
func (ah *AdminHandler) UploadPhotoFor(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ah.maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	defer file.Close()

	photo, err := ah.adminService.UploadPhotoFor(c.Request.Context(), ownerID, services.IngestInput{
		FileName: fileHeader.Filename,
		Caption:  c.PostForm("caption"),
		File:     file,
	})
	if err != nil {
		respondPipelineError(c, err)
		return
	}
	response.RespondOK(c, photo)
}

func (ah *AdminHandler) DeletePhoto(c *gin.Context) {
	photoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_photo_id", err)
		return
	}
	if err := ah.adminService.DeletePhoto(c.Request.Context(), photoID); err != nil {
		respondAdminError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ah *AdminHandler) ListActions(c *gin.Context) {
	actions, err := ah.adminService.ListActions(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, actions)
}

func (ah *AdminHandler) DeleteAction(c *gin.Context) {
	actionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_action_id", err)
		return
	}
	if err := ah.adminService.DeleteAction(c.Request.Context(), actionID); err != nil {
		respondAdminError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func respondAdminError(c *gin.Context, err error) {
	if errors.Is(err, errs.ErrNotFound) {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	response.RespondError(c, http.StatusInternalServerError, "admin_operation_failed", err)
}
