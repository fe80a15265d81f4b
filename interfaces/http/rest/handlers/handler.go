// Package handlers translates REST requests into commands and queries.
package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"archibridge/application/commands/bus"
	querybus "archibridge/application/queries/bus"
	"archibridge/pkg/common"
	apperrors "archibridge/pkg/errors"
)

// maxBodyBytes bounds JSON request bodies; file contents never travel in them
const maxBodyBytes = 1 << 20

// base carries what every handler needs
type base struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger
}

func (h *base) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := common.ParseJSONBody(w, r, v, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body").WithCause(err))
		return false
	}
	return true
}

func (h *base) send(w http.ResponseWriter, r *http.Request, cmd bus.Command) bool {
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return false
	}
	return true
}

func (h *base) ask(w http.ResponseWriter, r *http.Request, query querybus.Query) (interface{}, bool) {
	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return nil, false
	}
	return result, true
}
