package repository

import (
	"testing"

	"flight_tracker/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFlight() model.FlightRecord {
	return model.FlightRecord{
		Airline:       "AA",
		Origin:        "JFK",
		Destination:   "LAX",
		DepartureDate: "2024-12-20",
		ReturnDate:    "2024-12-27",
		Price:         "250.00 USD",
	}
}

func TestAppend_DeduplicatesOnAllFields(t *testing.T) {
	repo := NewMemoryFlightRepository()

	inserted := repo.Append([]model.FlightRecord{sampleFlight()})
	require.Len(t, inserted, 1)

	// Identical record again: nothing new stored.
	inserted = repo.Append([]model.FlightRecord{sampleFlight()})
	assert.Empty(t, inserted)
	assert.Len(t, repo.List(), 1)

	// Any field differing makes it a distinct flight.
	other := sampleFlight()
	other.Price = "275.00 USD"
	inserted = repo.Append([]model.FlightRecord{other})
	assert.Len(t, inserted, 1)
	assert.Len(t, repo.List(), 2)
}

func TestAppend_ReturnsOnlyNewRecords(t *testing.T) {
	repo := NewMemoryFlightRepository()
	repo.Append([]model.FlightRecord{sampleFlight()})

	other := sampleFlight()
	other.Airline = "DL"

	inserted := repo.Append([]model.FlightRecord{sampleFlight(), other})
	require.Len(t, inserted, 1)
	assert.Equal(t, "DL", inserted[0].Airline)
}

func TestList_SnapshotInInsertionOrder(t *testing.T) {
	repo := NewMemoryFlightRepository()
	first := sampleFlight()
	second := sampleFlight()
	second.Airline = "DL"
	repo.Append([]model.FlightRecord{first, second})

	got := repo.List()
	require.Len(t, got, 2)
	assert.Equal(t, "AA", got[0].Airline)
	assert.Equal(t, "DL", got[1].Airline)

	// Mutating the snapshot must not touch the store.
	got[0].Airline = "XX"
	assert.Equal(t, "AA", repo.List()[0].Airline)
}

func TestClear_Idempotent(t *testing.T) {
	repo := NewMemoryFlightRepository()
	repo.Append([]model.FlightRecord{sampleFlight()})

	repo.Clear()
	assert.Empty(t, repo.List())

	repo.Clear()
	assert.Empty(t, repo.List())
}

func TestFilters_Scenario(t *testing.T) {
	repo := NewMemoryFlightRepository()
	inserted := repo.Append([]model.FlightRecord{sampleFlight()})
	require.Len(t, inserted, 1)

	assert.Len(t, repo.FilterByAirline("AA"), 1)
	assert.Empty(t, repo.FilterByAirline("DL"))
	assert.Empty(t, repo.FilterByAirline("aa"), "airline match is case-sensitive")

	assert.Len(t, repo.FilterByOrigin("JFK"), 1)
	assert.Empty(t, repo.FilterByOrigin("LAX"))

	assert.Len(t, repo.FilterByPriceRange(200, 300), 1)
	assert.Empty(t, repo.FilterByPriceRange(300, 400))
	assert.Len(t, repo.FilterByPriceRange(250, 250), 1, "bounds are inclusive")
}

func TestFilterByPriceRange_SkipsUnparsablePrice(t *testing.T) {
	repo := NewMemoryFlightRepository()
	bad := sampleFlight()
	bad.Price = "n/a"
	repo.Append([]model.FlightRecord{sampleFlight(), bad})

	assert.Len(t, repo.FilterByPriceRange(0, 1000), 1)
}
