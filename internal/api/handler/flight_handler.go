package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"flight_tracker/internal/app/service"
	"flight_tracker/internal/common"
	"flight_tracker/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type FlightHandler struct {
	flightService *service.FlightService
}

func NewFlightHandler(flightService *service.FlightService) *FlightHandler {
	return &FlightHandler{flightService: flightService}
}

func (h *FlightHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/clear", h.clear)
	r.Post("/search", h.search)
	r.Get("/airline", h.filterByAirline)
	r.Get("/price", h.filterByPrice)
	r.Get("/origin", h.filterByOrigin)
}

type flightsResponse struct {
	Status  string               `json:"status"`
	Flights []model.FlightRecord `json:"flights"`
}

type statusMessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func respondWithFlights(w http.ResponseWriter, flights []model.FlightRecord) {
	if flights == nil {
		flights = []model.FlightRecord{}
	}
	common.RespondWithJSON(w, http.StatusOK, flightsResponse{Status: "success", Flights: flights})
}

func (h *FlightHandler) list(w http.ResponseWriter, r *http.Request) {
	respondWithFlights(w, h.flightService.List())
}

func (h *FlightHandler) clear(w http.ResponseWriter, r *http.Request) {
	h.flightService.Clear()
	common.RespondWithJSON(w, http.StatusOK, statusMessageResponse{
		Status:  "success",
		Message: "All flights have been cleared",
	})
}

func (h *FlightHandler) search(w http.ResponseWriter, r *http.Request) {
	var req service.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	flights, err := h.flightService.Search(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			common.RespondWithError(w, http.StatusBadRequest, "Origin, destination, and departure date are required")
		case errors.Is(err, common.ErrProvider):
			common.RespondWithError(w, http.StatusBadGateway, "Flight search failed")
		default:
			common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		}
		return
	}
	respondWithFlights(w, flights)
}

func (h *FlightHandler) filterByAirline(w http.ResponseWriter, r *http.Request) {
	flights, err := h.flightService.FilterByAirline(r.URL.Query().Get("airline_code"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Airline code is required")
		return
	}
	respondWithFlights(w, flights)
}

func (h *FlightHandler) filterByPrice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	flights, err := h.flightService.FilterByPriceRange(q.Get("min"), q.Get("max"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid price range")
		return
	}
	respondWithFlights(w, flights)
}

func (h *FlightHandler) filterByOrigin(w http.ResponseWriter, r *http.Request) {
	flights, err := h.flightService.FilterByOrigin(r.URL.Query().Get("origin_code"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Origin code is required")
		return
	}
	respondWithFlights(w, flights)
}
