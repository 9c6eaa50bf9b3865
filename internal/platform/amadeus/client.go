// Package amadeus is the client for the external flight-offer provider. It
// exchanges API credentials for a short-lived bearer token, queries the
// flight-offers endpoint, and normalizes offers into FlightRecords.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"flight_tracker/internal/common"
	"flight_tracker/internal/domain/model"
	"flight_tracker/internal/platform/cache"
	"flight_tracker/internal/platform/config"
)

const (
	tokenPath  = "/v1/security/oauth2/token"
	offersPath = "/v2/shopping/flight-offers"

	// The cached token expires this much earlier than the provider says, so a
	// token handed out near the end of its life is never used.
	tokenTTLMargin = 60 * time.Second
)

type SearchQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
}

type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	currency   string
	maxOffers  int
	httpClient *http.Client
	tokens     cache.TokenCache
}

func NewClient(cfg *config.Config, tokens cache.TokenCache) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.AmadeusBaseURL, "/"),
		apiKey:     cfg.AmadeusAPIKey,
		apiSecret:  cfg.AmadeusAPISecret,
		currency:   cfg.ProviderCurrency,
		maxOffers:  cfg.ProviderMaxOffers,
		httpClient: &http.Client{Timeout: cfg.ProviderTimeout},
		tokens:     tokens,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// accessToken returns a cached bearer token or fetches a fresh one.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	token, ok, err := c.tokens.Get(ctx)
	if err != nil {
		// A broken cache should not take flight search down with it.
		log.Printf("token cache read failed, fetching fresh token: %v", err)
	}
	if ok {
		return token, nil
	}
	return c.fetchToken(ctx)
}

func (c *Client) fetchToken(ctx context.Context) (string, error) {
	if c.apiKey == "" || c.apiSecret == "" {
		return "", fmt.Errorf("API_KEY and API_SECRET must be set: %w", common.ErrProviderAuth)
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.apiKey)
	form.Set("client_secret", c.apiSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching access token: %w: %v", common.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return "", fmt.Errorf("token endpoint returned %d: %w", resp.StatusCode, common.ErrProviderAuth)
	}
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("token endpoint returned %d: %w", resp.StatusCode, common.ErrProvider)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decoding token response: %w: %v", common.ErrProvider, err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("access token missing from response: %w", common.ErrProvider)
	}

	ttl := time.Duration(tr.ExpiresIn)*time.Second - tokenTTLMargin
	if ttl > 0 {
		if err := c.tokens.Set(ctx, tr.AccessToken, ttl); err != nil {
			log.Printf("token cache write failed: %v", err)
		}
	}
	return tr.AccessToken, nil
}

type offersResponse struct {
	Data []offer `json:"data"`
}

type offer struct {
	ID                     string            `json:"id"`
	Source                 string            `json:"source"`
	Itineraries            []itinerary       `json:"itineraries"`
	Price                  offerPrice        `json:"price"`
	ValidatingAirlineCodes []string          `json:"validatingAirlineCodes"`
	TravelerPricings       []json.RawMessage `json:"travelerPricings"`
}

type itinerary struct {
	Segments []segment `json:"segments"`
}

type segment struct {
	CarrierCode string   `json:"carrierCode"`
	Departure   endpoint `json:"departure"`
	Arrival     endpoint `json:"arrival"`
}

type endpoint struct {
	IataCode string `json:"iataCode"`
}

type offerPrice struct {
	GrandTotal string `json:"grandTotal"`
	Currency   string `json:"currency"`
}

// SearchOffers queries the provider and returns the normalized records. A 401
// on the offers endpoint invalidates the cached token and retries once with a
// fresh one; the cached token may simply have been revoked.
func (c *Client) SearchOffers(ctx context.Context, q SearchQuery) ([]model.FlightRecord, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.doSearch(ctx, token, q)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if err := c.tokens.Invalidate(ctx); err != nil {
			log.Printf("token cache invalidate failed: %v", err)
		}
		if token, err = c.fetchToken(ctx); err != nil {
			return nil, err
		}
		if resp, err = c.doSearch(ctx, token, q); err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("offers endpoint returned 401: %w", common.ErrProviderAuth)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("offers endpoint returned %d: %w", resp.StatusCode, common.ErrProvider)
	}

	var or offersResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return nil, fmt.Errorf("decoding offers response: %w: %v", common.ErrProvider, err)
	}

	return c.normalize(or, q), nil
}

func (c *Client) doSearch(ctx context.Context, token string, q SearchQuery) (*http.Response, error) {
	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartureDate)
	params.Set("adults", strconv.Itoa(q.Adults))
	params.Set("currencyCode", c.currency)
	params.Set("max", strconv.Itoa(c.maxOffers))
	if q.ReturnDate != "" {
		params.Set("returnDate", q.ReturnDate)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+offersPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building offers request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching flight offers: %w: %v", common.ErrProvider, err)
	}
	return resp, nil
}

// normalize validates each offer and maps it to a FlightRecord. Malformed
// offers are skipped, and offers repeating an (airline, price) pair already
// seen in this response are dropped.
func (c *Client) normalize(or offersResponse, q SearchQuery) []model.FlightRecord {
	type offerKey struct {
		airline string
		price   float64
	}
	seen := make(map[offerKey]struct{})
	records := []model.FlightRecord{}

	for _, o := range or.Data {
		if o.ID == "" || o.Source == "" || len(o.Itineraries) == 0 ||
			len(o.ValidatingAirlineCodes) == 0 || len(o.TravelerPricings) == 0 {
			log.Printf("skipping offer %q: missing required fields", o.ID)
			continue
		}

		segments := o.Itineraries[0].Segments
		if len(segments) == 0 {
			log.Printf("skipping offer %q: no segments", o.ID)
			continue
		}
		first, last := segments[0], segments[len(segments)-1]

		airline := first.CarrierCode
		if airline == "" || o.Price.GrandTotal == "" {
			log.Printf("skipping offer %q: incomplete carrier or price", o.ID)
			continue
		}

		amount, err := strconv.ParseFloat(o.Price.GrandTotal, 64)
		if err != nil {
			log.Printf("skipping offer %q: invalid price %q", o.ID, o.Price.GrandTotal)
			continue
		}

		origin := first.Departure.IataCode
		destination := last.Arrival.IataCode
		if origin == destination {
			log.Printf("skipping offer %q: origin equals destination", o.ID)
			continue
		}

		key := offerKey{airline: airline, price: amount}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		currency := o.Price.Currency
		if currency == "" {
			currency = "USD"
		}

		records = append(records, model.FlightRecord{
			Airline:       airline,
			Origin:        origin,
			Destination:   destination,
			DepartureDate: q.DepartureDate,
			ReturnDate:    q.ReturnDate,
			Price:         o.Price.GrandTotal + " " + currency,
		})
	}

	return records
}
