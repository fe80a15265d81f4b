package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"archibridge/application/commands"
	"archibridge/application/commands/bus"
	"archibridge/application/queries"
	querybus "archibridge/application/queries/bus"
	"archibridge/pkg/common"
	apperrors "archibridge/pkg/errors"
)

// ImageHandler handles image store requests
type ImageHandler struct {
	base
}

// NewImageHandler creates a new image handler
func NewImageHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, errors *apperrors.ErrorHandler, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{base{commandBus: commandBus, queryBus: queryBus, errors: errors, logger: logger}}
}

// AddImage handles POST /models/{modelID}/images
func (h *ImageHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := &commands.AddImageCommand{ModelID: chi.URLParam(r, "modelID"), Path: req.Path}
	if !h.send(w, r, cmd) {
		return
	}
	common.RespondJSON(w, http.StatusCreated, map[string]string{"key": cmd.Key})
}

// ListImages handles GET /models/{modelID}/images
func (h *ImageHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	result, ok := h.ask(w, r, queries.ListImagesQuery{ModelID: chi.URLParam(r, "modelID")})
	if !ok {
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// GetImage handles GET /models/{modelID}/images/*; the wildcard is the
// image key, slashes included
func (h *ImageHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	result, ok := h.ask(w, r, queries.GetImageQuery{
		ModelID: chi.URLParam(r, "modelID"),
		Key:     chi.URLParam(r, "*"),
	})
	if !ok {
		return
	}

	img := result.(*queries.GetImageResult)
	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	if img.ContentAddressed {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	} else {
		w.Header().Set("Cache-Control", "no-cache")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img.Data); err != nil {
		h.logger.Warn("Failed to write image", zap.String("key", img.Key), zap.Error(err))
	}
}
