// internal/api/handler/registration.go
package handler

import (
	"net/http"

	"github.com/go-chi/render"

	"trustpanel-registration/internal/domain/registration"
	"trustpanel-registration/pkg/errors"
)

type RegistrationHandler struct {
	service *registration.Service
}

func NewRegistrationHandler(s *registration.Service) *RegistrationHandler {
	return &RegistrationHandler{
		service: s,
	}
}

func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registration.RegistrationRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		WriteError(w, r, errors.NewBadRequestError("invalid request payload"), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, r, resp, http.StatusCreated)
}

func (h *RegistrationHandler) ValidateField(w http.ResponseWriter, r *http.Request) {
	var req registration.FieldCheckRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		WriteError(w, r, errors.NewBadRequestError("invalid request payload"), http.StatusBadRequest)
		return
	}

	result, err := h.service.CheckField(&req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, r, result, http.StatusOK)
}

func (h *RegistrationHandler) PasswordStrength(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		WriteError(w, r, errors.NewBadRequestError("invalid request payload"), http.StatusBadRequest)
		return
	}

	WriteJSON(w, r, registration.ScorePassword(req.Password), http.StatusOK)
}
