package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/fleetrent/fleetrent/internal/auth"
	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/service"
)

// AgreementHandler handles rental agreement API requests.
type AgreementHandler struct {
	agreements *service.AgreementService
	logger     zerolog.Logger
}

// NewAgreementHandler creates a new agreement handler.
func NewAgreementHandler(agreements *service.AgreementService, logger zerolog.Logger) *AgreementHandler {
	return &AgreementHandler{
		agreements: agreements,
		logger:     logger.With().Str("handler", "agreement").Logger(),
	}
}

// RegisterRoutes registers agreement routes on the router.
// The collection path is singular for backward compatibility with
// existing API clients.
func (h *AgreementHandler) RegisterRoutes(r chi.Router) {
	r.Route("/agreement", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Patch("/", h.handlePartialUpdate)
			r.Delete("/", h.handleDelete)
		})
	})
}

func (h *AgreementHandler) handleList(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, err.Error())
		return
	}

	agreements, err := h.agreements.List(r.Context(), identity.User.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AgreementShapes(agreements, ShapeList))
}

func (h *AgreementHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, err.Error())
		return
	}

	var payload agreementPayload
	if err := decodePayload(r.Body, &payload); err != nil {
		writeInvalidBody(w)
		return
	}
	if fe := payload.requireAll(); fe != nil {
		writeFieldErrors(w, fe)
		return
	}

	agreement := domain.NewAgreement(identity.User.ID)
	payload.apply(agreement)

	if err := h.agreements.Create(r.Context(), agreement); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, AgreementShape(agreement, ShapeDetail))
}

func (h *AgreementHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := idParam(r)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}

	agreement, err := h.agreements.Get(r.Context(), identity.User.ID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AgreementShape(agreement, ShapeDetail))
}

func (h *AgreementHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *AgreementHandler) handlePartialUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// update implements PUT (full=true) and PATCH (full=false).
func (h *AgreementHandler) update(w http.ResponseWriter, r *http.Request, full bool) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := idParam(r)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}

	var payload agreementPayload
	if err := decodePayload(r.Body, &payload); err != nil {
		writeInvalidBody(w)
		return
	}
	if full {
		if fe := payload.requireAll(); fe != nil {
			writeFieldErrors(w, fe)
			return
		}
	}

	agreement, err := h.agreements.Get(r.Context(), identity.User.ID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	payload.apply(agreement)

	if err := h.agreements.Update(r.Context(), identity.User.ID, agreement); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AgreementShape(agreement, ShapeDetail))
}

func (h *AgreementHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := idParam(r)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}

	if err := h.agreements.Delete(r.Context(), identity.User.ID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
