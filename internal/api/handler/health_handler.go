package handler

import (
	"context"
	"net/http"

	"flight_tracker/internal/common"

	"github.com/go-chi/chi/v5"
)

type HealthHandler struct {
	pingDB func(ctx context.Context) error
}

func NewHealthHandler(pingDB func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{pingDB: pingDB}
}

func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.health)
	r.Get("/db-check", h.dbCheck)
}

func (h *HealthHandler) health(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// dbCheck reports database connectivity separately from the plain health
// check, so a broken database shows up here instead of failing unrelated
// endpoints.
func (h *HealthHandler) dbCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.pingDB(r.Context()); err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Database connection failed")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"database_status": "healthy"})
}
