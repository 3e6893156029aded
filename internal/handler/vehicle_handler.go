package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/fleetrent/fleetrent/internal/auth"
	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/service"
)

// maxImageUploadBytes bounds the multipart memory buffer for uploads.
const maxImageUploadBytes = 32 << 20

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// VehicleHandler handles vehicle API requests.
type VehicleHandler struct {
	vehicles *service.VehicleService
	logger   zerolog.Logger
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(vehicles *service.VehicleService, logger zerolog.Logger) *VehicleHandler {
	return &VehicleHandler{
		vehicles: vehicles,
		logger:   logger.With().Str("handler", "vehicle").Logger(),
	}
}

// RegisterRoutes registers vehicle routes on the router.
func (h *VehicleHandler) RegisterRoutes(r chi.Router) {
	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Patch("/", h.handlePartialUpdate)
			r.Delete("/", h.handleDelete)
			r.Post("/upload-image", h.handleUploadImage)
		})
	})
}

func (h *VehicleHandler) handleList(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, err.Error())
		return
	}

	vehicles, err := h.vehicles.List(r.Context(), identity.User.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, VehicleShapes(vehicles, ShapeList))
}

func (h *VehicleHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, err.Error())
		return
	}

	var payload vehiclePayload
	if err := decodePayload(r.Body, &payload); err != nil {
		writeInvalidBody(w)
		return
	}
	if fe := payload.requireAll(); fe != nil {
		writeFieldErrors(w, fe)
		return
	}

	vehicle := domain.NewVehicle(identity.User.ID)
	payload.apply(vehicle)

	if err := h.vehicles.Create(r.Context(), vehicle); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, VehicleShape(vehicle, ShapeDetail))
}

func (h *VehicleHandler) handleGet(w http.ResponseWriter, r *http.Request) {
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

	vehicle, err := h.vehicles.Get(r.Context(), identity.User.ID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, VehicleShape(vehicle, ShapeDetail))
}

func (h *VehicleHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *VehicleHandler) handlePartialUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// update implements PUT (full=true) and PATCH (full=false).
// Full updates require every mutable field; partial updates accept any
// subset. Neither can change the owner.
func (h *VehicleHandler) update(w http.ResponseWriter, r *http.Request, full bool) {
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

	var payload vehiclePayload
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

	vehicle, err := h.vehicles.Get(r.Context(), identity.User.ID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	payload.apply(vehicle)

	if err := h.vehicles.Update(r.Context(), identity.User.ID, vehicle); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, VehicleShape(vehicle, ShapeDetail))
}

func (h *VehicleHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.vehicles.Delete(r.Context(), identity.User.ID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *VehicleHandler) handleUploadImage(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		writeFieldErrors(w, fieldErrors{"image": {"Invalid multipart form."}})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeFieldErrors(w, fieldErrors{"image": {"No file was submitted."}})
		return
	}
	defer file.Close()

	vehicle, err := h.vehicles.UploadImage(r.Context(), identity.User.ID, id, header.Filename, file, header.Size)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, VehicleShape(vehicle, ShapeImage))
}
