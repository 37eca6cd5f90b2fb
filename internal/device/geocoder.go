package device

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"fieldtask/internal/errors"
	"fieldtask/internal/logging"
)

// HTTPGeocoder reverse-geocodes positions against a Nominatim-style
// endpoint.
type HTTPGeocoder struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGeocoder creates a geocoder for the given endpoint.
func NewHTTPGeocoder(baseURL string, client *http.Client) *HTTPGeocoder {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPGeocoder{
		baseURL: baseURL,
		client:  client,
	}
}

type geocodeResponse struct {
	Name    string `json:"name"`
	Error   string `json:"error"`
	Address struct {
		Suburb       string `json:"suburb"`
		CityDistrict string `json:"city_district"`
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		State        string `json:"state"`
		Country      string `json:"country"`
	} `json:"address"`
}

// ReverseGeocode resolves a position to an address. A position the
// service cannot name yields a nil address and a nil error.
func (g *HTTPGeocoder) ReverseGeocode(ctx context.Context, pos Position) (*Address, error) {
	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", fmt.Sprintf("%f", pos.Latitude))
	query.Set("lon", fmt.Sprintf("%f", pos.Longitude))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.NewTransportError("reverse geocode", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.NewTransportError("reverse geocode", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewTransportError("reverse geocode", fmt.Errorf("status %d", resp.StatusCode)).
			WithContext("status", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.NewTransportError("reverse geocode", err)
	}
	if body.Error != "" {
		// The service answered but could not name the position.
		logging.Debugf("geocode miss at %f,%f: %s\n", pos.Latitude, pos.Longitude, body.Error)
		return nil, nil
	}

	addr := &Address{
		Name:     body.Name,
		District: body.Address.CityDistrict,
		City:     body.Address.City,
		Region:   body.Address.State,
		Country:  body.Address.Country,
	}
	if addr.District == "" {
		addr.District = body.Address.Suburb
	}
	if addr.City == "" {
		addr.City = body.Address.Town
	}
	if addr.City == "" {
		addr.City = body.Address.Village
	}
	if (Address{}) == *addr {
		return nil, nil
	}
	return addr, nil
}
