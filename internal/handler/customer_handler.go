package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/fleetrent/fleetrent/internal/auth"
	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/service"
)

// CustomerHandler handles customer API requests.
type CustomerHandler struct {
	customers *service.CustomerService
	logger    zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(customers *service.CustomerService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		logger:    logger.With().Str("handler", "customer").Logger(),
	}
}

// RegisterRoutes registers customer routes on the router.
func (h *CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Route("/customers", func(r chi.Router) {
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

func (h *CustomerHandler) handleList(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, err.Error())
		return
	}

	customers, err := h.customers.List(r.Context(), identity.User.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CustomerShapes(customers, ShapeList))
}

func (h *CustomerHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, err.Error())
		return
	}

	var payload customerPayload
	if err := decodePayload(r.Body, &payload); err != nil {
		writeInvalidBody(w)
		return
	}
	if fe := payload.requireAll(); fe != nil {
		writeFieldErrors(w, fe)
		return
	}

	customer := domain.NewCustomer(identity.User.ID)
	payload.apply(customer)

	if err := h.customers.Create(r.Context(), customer); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CustomerShape(customer, ShapeDetail))
}

func (h *CustomerHandler) handleGet(w http.ResponseWriter, r *http.Request) {
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

	customer, err := h.customers.Get(r.Context(), identity.User.ID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CustomerShape(customer, ShapeDetail))
}

func (h *CustomerHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *CustomerHandler) handlePartialUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// update implements PUT (full=true) and PATCH (full=false).
func (h *CustomerHandler) update(w http.ResponseWriter, r *http.Request, full bool) {
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

	var payload customerPayload
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

	customer, err := h.customers.Get(r.Context(), identity.User.ID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	payload.apply(customer)

	if err := h.customers.Update(r.Context(), identity.User.ID, customer); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CustomerShape(customer, ShapeDetail))
}

func (h *CustomerHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.customers.Delete(r.Context(), identity.User.ID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
