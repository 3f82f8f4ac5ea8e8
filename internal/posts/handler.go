package posts

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/scribe/pkg/handlers"
	"github.com/JaimeStill/scribe/pkg/routes"
)

// Handler provides HTTP endpoints for post generation and review.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "posts"),
	}
}

// Routes returns the route group definition for post endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/posts",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Generate},
			{Method: "POST", Pattern: "/batch", Handler: h.GenerateBatch},
			{Method: "GET", Pattern: "/reviews/{id}", Handler: h.Pending},
			{Method: "POST", Pattern: "/reviews/{id}/resume", Handler: h.Resume},
		},
	}
}

// Generate starts a workflow for the posted source content. Responds 200
// with a terminal outcome or 202 when the workflow suspends for review.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var cmd GenerateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	out, err := h.sys.Generate(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, outcomeStatus(out), out)
}

// GenerateBatch runs independent workflows for each posted input.
func (h *Handler) GenerateBatch(w http.ResponseWriter, r *http.Request) {
	var cmd BatchCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	results, err := h.sys.GenerateBatch(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, results)
}

// Pending returns the draft and critique of a suspended workflow.
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	pending, err := h.sys.Pending(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, pending)
}

// Resume supplies reviewer feedback to a suspended workflow. Responds 200
// with a terminal outcome or 202 when the workflow suspends again.
func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var cmd ResumeCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	out, err := h.sys.Resume(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, outcomeStatus(out), out)
}

func outcomeStatus(out *Outcome) int {
	if out.Pending != nil {
		return http.StatusAccepted
	}
	return http.StatusOK
}
