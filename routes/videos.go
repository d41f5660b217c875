package routes

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"video-metadata-api/db"
	"video-metadata-api/middleware"
	"video-metadata-api/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	msgVideoNotFound = "no video found with that id"
	msgVideoMissing  = "video does not exist"
	msgIDTaken       = "id already taken"
	msgInternal      = "internal server error"
)

// VideoStore es lo que el handler necesita de la capa de persistencia
type VideoStore interface {
	Get(ctx context.Context, id int64) (models.Video, error)
	Create(ctx context.Context, video models.Video) (models.Video, error)
	Update(ctx context.Context, id int64, patch models.VideoPatch) (models.Video, error)
	Delete(ctx context.Context, id int64) error
}

// VideoHandler atiende el recurso /videos/:video_id
type VideoHandler struct {
	store VideoStore
	log   logrus.FieldLogger
}

// NewVideoHandler crea el handler sobre el store indicado
func NewVideoHandler(store VideoStore, log logrus.FieldLogger) *VideoHandler {
	return &VideoHandler{store: store, log: log}
}

// Register monta el recurso en /videos/:video_id
func (h *VideoHandler) Register(router fiber.Router) {
	videos := router.Group("/videos")
	videos.Get("/:video_id", h.GetVideo)
	videos.Put("/:video_id", h.PutVideo)
	videos.Patch("/:video_id", h.PatchVideo)
	videos.Delete("/:video_id", h.DeleteVideo)
}

// GetVideo obtiene un video por su id
func (h *VideoHandler) GetVideo(c *fiber.Ctx) error {
	id, err := videoID(c)
	if err != nil {
		return err
	}

	video, err := h.store.Get(c.UserContext(), id)
	if errors.Is(err, db.ErrVideoNotFound) {
		return errorJSON(c, http.StatusNotFound, msgVideoNotFound)
	}
	if err != nil {
		return h.internalError(c, err)
	}

	return c.JSON(video.ToResponse())
}

// PutVideo crea un video con el id de la ruta. Nunca sobrescribe uno existente.
func (h *VideoHandler) PutVideo(c *fiber.Ctx) error {
	id, err := videoID(c)
	if err != nil {
		return err
	}

	video, err := parsePutArgs(c)
	if err != nil {
		return validationFailed(c, err)
	}
	video.ID = id

	created, err := h.store.Create(c.UserContext(), video)
	if errors.Is(err, db.ErrVideoExists) {
		return errorJSON(c, http.StatusConflict, msgIDTaken)
	}
	if err != nil {
		return h.internalError(c, err)
	}

	h.logger(c).WithField("video_id", id).Info("Video created")
	return c.Status(http.StatusCreated).JSON(created.ToResponse())
}

// PatchVideo actualiza solo los campos enviados
func (h *VideoHandler) PatchVideo(c *fiber.Ctx) error {
	id, err := videoID(c)
	if err != nil {
		return err
	}

	patch, err := parsePatchArgs(c)
	if err != nil {
		return validationFailed(c, err)
	}

	updated, err := h.store.Update(c.UserContext(), id, patch)
	if errors.Is(err, db.ErrVideoNotFound) {
		return errorJSON(c, http.StatusNotFound, msgVideoMissing)
	}
	if err != nil {
		return h.internalError(c, err)
	}

	h.logger(c).WithField("video_id", id).Info("Video updated")
	return c.JSON(updated.ToResponse())
}

// DeleteVideo elimina un video de la base de datos
func (h *VideoHandler) DeleteVideo(c *fiber.Ctx) error {
	id, err := videoID(c)
	if err != nil {
		return err
	}

	err = h.store.Delete(c.UserContext(), id)
	if errors.Is(err, db.ErrVideoNotFound) {
		return errorJSON(c, http.StatusNotFound, msgVideoMissing)
	}
	if err != nil {
		return h.internalError(c, err)
	}

	h.logger(c).WithField("video_id", id).Info("Video deleted")
	c.Status(http.StatusNoContent)
	return nil
}

// videoID solo acepta enteros no negativos; cualquier otra cosa no es una ruta válida
func videoID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("video_id")
	if raw == "" || raw[0] < '0' || raw[0] > '9' {
		return 0, fiber.ErrNotFound
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fiber.ErrNotFound
	}
	return id, nil
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return c.Status(http.StatusBadRequest).JSON(verr)
	}
	return errorJSON(c, http.StatusBadRequest, err.Error())
}

func (h *VideoHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger(c).WithError(err).Error("Store operation failed")
	return errorJSON(c, http.StatusInternalServerError, msgInternal)
}

func (h *VideoHandler) logger(c *fiber.Ctx) logrus.FieldLogger {
	if rid, ok := c.Locals(middleware.RequestIDKey).(string); ok {
		return h.log.WithField("request_id", rid)
	}
	return h.log
}
