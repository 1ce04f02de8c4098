package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fotolog/fotolog-backend/internal/http/response"
	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/requestdata"
	"github.com/fotolog/fotolog-backend/internal/services"
)

type PhotoHandler struct {
	ingestService services.IngestService
	photoService  services.PhotoService
	maxUploadSize int64
}

func NewPhotoHandler(ingestService services.IngestService, photoService services.PhotoService, maxUploadSize int64) *PhotoHandler {
	return &PhotoHandler{
		ingestService: ingestService,
		photoService:  photoService,
		maxUploadSize: maxUploadSize,
	}
}

// Upload runs the full ingestion pipeline for the authenticated caller.
// Multipart form: "file" is the photo, "caption" is optional.
func (ph *PhotoHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ph.maxUploadSize)

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

	photo, err := ph.ingestService.Run(c.Request.Context(), services.IngestInput{
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

func (ph *PhotoHandler) ListFeed(c *gin.Context) {
	photos, err := ph.photoService.ListFeed(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, photos)
}

func (ph *PhotoHandler) ListMine(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errs.ErrNotAuthenticated)
		return
	}
	photos, err := ph.photoService.ListByOwner(c.Request.Context(), rd.IdentityID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, photos)
}

func (ph *PhotoHandler) DeleteMine(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errs.ErrNotAuthenticated)
		return
	}
	photoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_photo_id", err)
		return
	}

	if err := ph.photoService.DeleteOwned(c.Request.Context(), rd.IdentityID, photoID); err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			response.RespondError(c, http.StatusNotFound, "not_found", err)
		case errors.Is(err, errs.ErrPermissionDenied):
			response.RespondError(c, http.StatusForbidden, "forbidden", err)
		default:
			response.RespondError(c, http.StatusInternalServerError, "delete_failed", err)
		}
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// respondPipelineError maps a pipeline failure to a status and a code that
// names the stage. Register-stage failures include the orphaned object's
// address in the payload.
func respondPipelineError(c *gin.Context, err error) {
	var stageErr *services.StageError
	if !errors.As(err, &stageErr) {
		response.RespondError(c, http.StatusInternalServerError, "upload_failed", err)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, errs.ErrProviderUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrTimedOut):
		status = http.StatusGatewayTimeout
	case stageErr.Stage == services.StageUpload:
		status = http.StatusBadGateway
	}

	body := gin.H{
		"error": gin.H{
			"message": stageErr.Error(),
			"code":    string(stageErr.Stage) + "_failed",
		},
	}
	if stageErr.ObjectURL != "" {
		body["object_url"] = stageErr.ObjectURL
	}
	c.JSON(status, body)
}
