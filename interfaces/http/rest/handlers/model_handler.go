package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"archibridge/application/commands"
	"archibridge/application/commands/bus"
	"archibridge/application/queries"
	querybus "archibridge/application/queries/bus"
	"archibridge/pkg/common"
	apperrors "archibridge/pkg/errors"
)

// ModelHandler handles model lifecycle requests
type ModelHandler struct {
	base
}

// NewModelHandler creates a new model handler
func NewModelHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, errors *apperrors.ErrorHandler, logger *zap.Logger) *ModelHandler {
	return &ModelHandler{base{commandBus: commandBus, queryBus: queryBus, errors: errors, logger: logger}}
}

type createModelRequest struct {
	Name string `json:"name"`
}

type pathRequest struct {
	Path string `json:"path"`
}

type modelIDResponse struct {
	ID string `json:"id"`
}

// CreateModel handles POST /models
func (h *ModelHandler) CreateModel(w http.ResponseWriter, r *http.Request) {
	var req createModelRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := &commands.CreateModelCommand{Name: req.Name}
	if !h.send(w, r, cmd) {
		return
	}
	common.RespondJSON(w, http.StatusCreated, modelIDResponse{ID: cmd.ModelID})
}

// OpenModel handles POST /models/open
func (h *ModelHandler) OpenModel(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := &commands.OpenModelCommand{Path: req.Path}
	if !h.send(w, r, cmd) {
		return
	}
	common.RespondJSON(w, http.StatusCreated, modelIDResponse{ID: cmd.ModelID})
}

// ListModels handles GET /models
func (h *ModelHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	result, ok := h.ask(w, r, queries.ListModelsQuery{})
	if !ok {
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// GetModel handles GET /models/{modelID}
func (h *ModelHandler) GetModel(w http.ResponseWriter, r *http.Request) {
	result, ok := h.ask(w, r, queries.GetModelQuery{ModelID: chi.URLParam(r, "modelID")})
	if !ok {
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// SaveModel handles POST /models/{modelID}/save
func (h *ModelHandler) SaveModel(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := &commands.SaveModelCommand{ModelID: chi.URLParam(r, "modelID"), Path: req.Path}
	if !h.send(w, r, cmd) {
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"path": cmd.SavedTo})
}

// Undo handles POST /models/{modelID}/undo
func (h *ModelHandler) Undo(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.UndoCommand{ModelID: chi.URLParam(r, "modelID")}
	if !h.send(w, r, cmd) {
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"undone": cmd.Label})
}

// Redo handles POST /models/{modelID}/redo
func (h *ModelHandler) Redo(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.RedoCommand{ModelID: chi.URLParam(r, "modelID")}
	if !h.send(w, r, cmd) {
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"redone": cmd.Label})
}
