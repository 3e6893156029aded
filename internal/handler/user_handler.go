package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/fleetrent/fleetrent/internal/auth"
	"github.com/fleetrent/fleetrent/internal/service"
)

// UserHandler handles user registration, token issuance and profile
// management.
type UserHandler struct {
	users  *service.UserService
	tokens *service.TokenService
	logger zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users *service.UserService, tokens *service.TokenService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		tokens: tokens,
		logger: logger.With().Str("handler", "user").Logger(),
	}
}

// RegisterPublicRoutes registers the routes reachable without a token.
func (h *UserHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/users", h.handleCreate)
	r.Post("/users/token", h.handleIssueToken)
}

// RegisterProtectedRoutes registers the routes that require a token.
func (h *UserHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Route("/users/me", func(r chi.Router) {
		r.Get("/", h.handleMe)
		r.Put("/", h.handleUpdateMe)
		r.Patch("/", h.handlePatchMe)
	})
}

func (h *UserHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createUserPayload
	if err := decodePayload(r.Body, &payload); err != nil {
		writeInvalidBody(w)
		return
	}

	out, err := h.users.Create(r.Context(), service.CreateUserInput{
		Email:    payload.Email,
		Name:     payload.Name,
		Password: payload.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, UserShape(out.User))
}

func (h *UserHandler) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var payload issueTokenPayload
	if err := decodePayload(r.Body, &payload); err != nil {
		writeInvalidBody(w)
		return
	}

	key, err := h.tokens.Issue(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": key})
}

func (h *UserHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, UserShape(identity.User))
}

func (h *UserHandler) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	h.updateMe(w, r, true)
}

func (h *UserHandler) handlePatchMe(w http.ResponseWriter, r *http.Request) {
	h.updateMe(w, r, false)
}

// updateMe implements PUT (full=true) and PATCH (full=false) on the
// caller's own profile. Email is fixed at registration.
func (h *UserHandler) updateMe(w http.ResponseWriter, r *http.Request, full bool) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, err.Error())
		return
	}

	var payload updateUserPayload
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

	user, err := h.users.Update(r.Context(), service.UpdateUserInput{
		UserID:   identity.User.ID,
		Name:     payload.Name,
		Password: payload.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UserShape(user))
}
