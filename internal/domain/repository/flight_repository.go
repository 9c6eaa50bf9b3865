package repository

import (
	"sync"

	"flight_tracker/internal/domain/model"
)

// FlightRepository holds the flights collected so far. The collection lives in
// process memory only; a restart loses it.
type FlightRepository interface {
	Append(records []model.FlightRecord) []model.FlightRecord
	List() []model.FlightRecord
	Clear()
	FilterByAirline(code string) []model.FlightRecord
	FilterByOrigin(code string) []model.FlightRecord
	FilterByPriceRange(min, max float64) []model.FlightRecord
}

type memoryFlightRepository struct {
	mu      sync.RWMutex
	flights []model.FlightRecord
}

// NewMemoryFlightRepository returns an empty in-memory flight store. One
// instance is constructed per process and injected into the flight service.
func NewMemoryFlightRepository() FlightRepository {
	return &memoryFlightRepository{}
}

// Append inserts each record that is not already present, comparing all fields,
// and returns the subset actually inserted. Insertion order is preserved.
func (r *memoryFlightRepository) Append(records []model.FlightRecord) []model.FlightRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	inserted := []model.FlightRecord{}
	for _, rec := range records {
		if r.contains(rec) {
			continue
		}
		r.flights = append(r.flights, rec)
		inserted = append(inserted, rec)
	}
	return inserted
}

// contains assumes r.mu is held.
func (r *memoryFlightRepository) contains(rec model.FlightRecord) bool {
	for _, existing := range r.flights {
		if existing == rec {
			return true
		}
	}
	return false
}

// List returns a snapshot copy in insertion order.
func (r *memoryFlightRepository) List() []model.FlightRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]model.FlightRecord, len(r.flights))
	copy(snapshot, r.flights)
	return snapshot
}

func (r *memoryFlightRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flights = nil
}

func (r *memoryFlightRepository) FilterByAirline(code string) []model.FlightRecord {
	return r.filter(func(f model.FlightRecord) bool { return f.Airline == code })
}

func (r *memoryFlightRepository) FilterByOrigin(code string) []model.FlightRecord {
	return r.filter(func(f model.FlightRecord) bool { return f.Origin == code })
}

// FilterByPriceRange keeps records whose parsed amount lies in [min, max].
// Records whose price does not parse are skipped.
func (r *memoryFlightRepository) FilterByPriceRange(min, max float64) []model.FlightRecord {
	return r.filter(func(f model.FlightRecord) bool {
		amount, err := f.PriceAmount()
		if err != nil {
			return false
		}
		return amount >= min && amount <= max
	})
}

func (r *memoryFlightRepository) filter(keep func(model.FlightRecord) bool) []model.FlightRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []model.FlightRecord{}
	for _, f := range r.flights {
		if keep(f) {
			matched = append(matched, f)
		}
	}
	return matched
}
