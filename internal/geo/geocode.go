package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Address is the subset of reverse-geocode fields the location screen uses.
type Address struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Client talks to a Nominatim-compatible reverse-geocoding endpoint. Failures
// are expected and non-fatal: the caller shows a fallback instead.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type reverseResponse struct {
	Address struct {
		City     string `json:"city"`
		Town     string `json:"town"`
		Village  string `json:"village"`
		District string `json:"state_district"`
		State    string `json:"state"`
		Postcode string `json:"postcode"`
	} `json:"address"`
}

// Reverse resolves coordinates into city/state/pincode fields.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (Address, error) {
	endpoint := fmt.Sprintf("%s/reverse?%s", c.baseURL, url.Values{
		"format": {"jsonv2"},
		"lat":    {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":    {strconv.FormatFloat(lon, 'f', -1, 64)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Address{}, err
	}
	req.Header.Set("User-Agent", "bookhive-api")

	res, err := c.http.Do(req)
	if err != nil {
		return Address{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("reverse geocode returned status %d", res.StatusCode)
	}

	var payload reverseResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return Address{}, err
	}

	city := payload.Address.City
	if city == "" {
		city = payload.Address.Town
	}
	if city == "" {
		city = payload.Address.Village
	}
	if city == "" {
		city = payload.Address.District
	}

	return Address{
		City:    city,
		State:   payload.Address.State,
		Pincode: payload.Address.Postcode,
	}, nil
}
