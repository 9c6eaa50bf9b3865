package service

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"flight_tracker/internal/common"
	"flight_tracker/internal/domain/model"
	"flight_tracker/internal/domain/repository"
	"flight_tracker/internal/platform/amadeus"
)

// FlightProvider is the external flight-offer search collaborator.
type FlightProvider interface {
	SearchOffers(ctx context.Context, q amadeus.SearchQuery) ([]model.FlightRecord, error)
}

type FlightService struct {
	provider   FlightProvider
	flightRepo repository.FlightRepository
}

func NewFlightService(provider FlightProvider, flightRepo repository.FlightRepository) *FlightService {
	return &FlightService{provider: provider, flightRepo: flightRepo}
}

type SearchRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	Adults        int    `json:"adults,omitempty"`
}

// Search queries the provider and stores the results, returning only the
// flights not already in the cache.
func (s *FlightService) Search(ctx context.Context, req SearchRequest) ([]model.FlightRecord, error) {
	if req.Origin == "" || req.Destination == "" || req.DepartureDate == "" {
		return nil, common.ErrValidation
	}
	adults := req.Adults
	if adults <= 0 {
		adults = 1
	}

	records, err := s.provider.SearchOffers(ctx, amadeus.SearchQuery{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        adults,
	})
	if err != nil {
		return nil, fmt.Errorf("flight search failed: %w", err)
	}

	inserted := s.flightRepo.Append(records)
	if len(inserted) > 0 {
		log.Printf("Added %d unique flight(s) to memory", len(inserted))
	} else {
		log.Println("No new flights found to add")
	}
	return inserted, nil
}

func (s *FlightService) List() []model.FlightRecord {
	return s.flightRepo.List()
}

func (s *FlightService) Clear() {
	s.flightRepo.Clear()
	log.Println("Cleared all flights from memory")
}

func (s *FlightService) FilterByAirline(code string) ([]model.FlightRecord, error) {
	if code == "" {
		return nil, common.ErrValidation
	}
	return s.flightRepo.FilterByAirline(code), nil
}

func (s *FlightService) FilterByOrigin(code string) ([]model.FlightRecord, error) {
	if code == "" {
		return nil, common.ErrValidation
	}
	return s.flightRepo.FilterByOrigin(code), nil
}

// FilterByPriceRange parses the bounds and filters on the numeric amount of
// each record's price. A non-numeric bound or min > max is rejected rather
// than treated as an empty range.
func (s *FlightService) FilterByPriceRange(minStr, maxStr string) ([]model.FlightRecord, error) {
	min, err := strconv.ParseFloat(minStr, 64)
	if err != nil {
		return nil, fmt.Errorf("min %q is not numeric: %w", minStr, common.ErrInvalidRange)
	}
	max, err := strconv.ParseFloat(maxStr, 64)
	if err != nil {
		return nil, fmt.Errorf("max %q is not numeric: %w", maxStr, common.ErrInvalidRange)
	}
	if min > max {
		return nil, fmt.Errorf("min %v exceeds max %v: %w", min, max, common.ErrInvalidRange)
	}
	return s.flightRepo.FilterByPriceRange(min, max), nil
}
