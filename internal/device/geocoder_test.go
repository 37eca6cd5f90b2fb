package device

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldtask/internal/errors"
)

func TestHTTPGeocoder_ReverseGeocode(t *testing.T) {
	ctx := context.Background()
	pos := Position{Latitude: -33.45, Longitude: -70.66}

	t.Run("maps a full response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
			assert.NotEmpty(t, r.URL.Query().Get("lat"))
			assert.NotEmpty(t, r.URL.Query().Get("lon"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"name": "Plaza de Armas",
				"address": {
					"city_district": "Santiago Centro",
					"city": "Santiago",
					"state": "Región Metropolitana",
					"country": "Chile"
				}
			}`))
		}))
		defer server.Close()
		geocoder := NewHTTPGeocoder(server.URL, server.Client())

		addr, err := geocoder.ReverseGeocode(ctx, pos)

		require.NoError(t, err)
		require.NotNil(t, addr)
		assert.Equal(t, "Plaza de Armas", addr.Name)
		assert.Equal(t, "Santiago Centro", addr.District)
		assert.Equal(t, "Santiago", addr.City)
		assert.Equal(t, "Región Metropolitana", addr.Region)
		assert.Equal(t, "Chile", addr.Country)
	})

	t.Run("falls back from city to town to village", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"address": {"village": "Pirque", "country": "Chile"}}`))
		}))
		defer server.Close()
		geocoder := NewHTTPGeocoder(server.URL, server.Client())

		addr, err := geocoder.ReverseGeocode(ctx, pos)

		require.NoError(t, err)
		require.NotNil(t, addr)
		assert.Equal(t, "Pirque", addr.City)
	})

	t.Run("suburb backs up the district", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"address": {"suburb": "Ñuñoa", "country": "Chile"}}`))
		}))
		defer server.Close()
		geocoder := NewHTTPGeocoder(server.URL, server.Client())

		addr, err := geocoder.ReverseGeocode(ctx, pos)

		require.NoError(t, err)
		require.NotNil(t, addr)
		assert.Equal(t, "Ñuñoa", addr.District)
	})

	t.Run("unnameable position yields nil address without error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error": "Unable to geocode"}`))
		}))
		defer server.Close()
		geocoder := NewHTTPGeocoder(server.URL, server.Client())

		addr, err := geocoder.ReverseGeocode(ctx, pos)

		assert.NoError(t, err)
		assert.Nil(t, addr)
	})

	t.Run("empty response yields nil address without error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()
		geocoder := NewHTTPGeocoder(server.URL, server.Client())

		addr, err := geocoder.ReverseGeocode(ctx, pos)

		assert.NoError(t, err)
		assert.Nil(t, addr)
	})

	t.Run("server error is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()
		geocoder := NewHTTPGeocoder(server.URL, server.Client())

		_, err := geocoder.ReverseGeocode(ctx, pos)

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTransport))
	})

	t.Run("unreachable endpoint is a transport error", func(t *testing.T) {
		geocoder := NewHTTPGeocoder("http://127.0.0.1:1", &http.Client{})

		_, err := geocoder.ReverseGeocode(ctx, pos)

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTransport))
	})
}

func TestStaticLocator_CurrentPosition(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the configured position", func(t *testing.T) {
		locator := NewStaticLocator(&Position{Latitude: 1.5, Longitude: 2.5})

		pos, err := locator.CurrentPosition(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1.5, pos.Latitude)
		assert.Equal(t, 2.5, pos.Longitude)
	})

	t.Run("no position is a permission denial", func(t *testing.T) {
		locator := NewStaticLocator(nil)

		_, err := locator.CurrentPosition(ctx)

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypePermission))
	})
}
