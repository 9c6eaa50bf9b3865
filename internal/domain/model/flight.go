package model

import (
	"strconv"
	"strings"
)

// FlightRecord is a normalized flight offer. It is a plain comparable value:
// two records describe the same flight iff every field matches, so == is the
// duplicate check used by the in-memory store.
type FlightRecord struct {
	Airline       string `json:"airline"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	Price         string `json:"price"` // "<amount> <currency>", e.g. "250.00 USD"
}

// PriceAmount parses the numeric amount out of the record's price string.
func (f FlightRecord) PriceAmount() (float64, error) {
	amount, _, _ := strings.Cut(f.Price, " ")
	return strconv.ParseFloat(amount, 64)
}
