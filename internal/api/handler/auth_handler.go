package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"flight_tracker/internal/app/service"
	"flight_tracker/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/create-account", h.createAccount)
	r.Post("/login", h.login)
	r.Put("/update-password", h.updatePassword)
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *AuthHandler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req service.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.authService.CreateAccount(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			common.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, common.ErrConflict):
			common.RespondWithError(w, http.StatusConflict, "Username already exists")
		default:
			common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		}
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, messageResponse{Message: "Account created successfully"})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			common.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, common.ErrUnauthorized):
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		default:
			common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		}
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) updatePassword(w http.ResponseWriter, r *http.Request) {
	var req service.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.authService.UpdatePassword(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			common.RespondWithError(w, http.StatusBadRequest, "All fields are required")
		case errors.Is(err, common.ErrNotFound):
			common.RespondWithError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, common.ErrUnauthorized):
			common.RespondWithError(w, http.StatusUnauthorized, "Current password is incorrect")
		default:
			common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		}
		return
	}
	common.RespondWithJSON(w, http.StatusOK, messageResponse{Message: "Password updated successfully"})
}
