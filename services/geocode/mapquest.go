package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"campfinder/config"
	"campfinder/models"
	"campfinder/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// MapQuestGeocoder resolves addresses through the MapQuest geocoding API,
// caching results in Redis keyed by the raw address string.
type MapQuestGeocoder struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cache   *redis.Client
}

// NewMapQuestGeocoder builds a geocoder from the app configuration. The
// HTTP client carries a bounded timeout so a slow upstream cannot hold a
// request open indefinitely.
func NewMapQuestGeocoder(cache *redis.Client) *MapQuestGeocoder {
	return &MapQuestGeocoder{
		baseURL: config.AppConfig.GeocoderURL,
		apiKey:  config.AppConfig.GeocoderAPIKey,
		client:  &http.Client{Timeout: 5 * time.Second},
		cache:   cache,
	}
}

// mapquestResponse mirrors the subset of the upstream payload we consume.
type mapquestResponse struct {
	Results []struct {
		Locations []struct {
			Street     string `json:"street"`
			City       string `json:"adminArea5"`
			State      string `json:"adminArea3"`
			PostalCode string `json:"postalCode"`
			Country    string `json:"adminArea1"`
			LatLng     struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
		} `json:"locations"`
	} `json:"results"`
}

// Geocode resolves the given address, consulting the cache first.
func (g *MapQuestGeocoder) Geocode(ctx context.Context, address string) (*models.Location, error) {
	logger := utils.GetLogger()
	cacheKey := utils.GeoCachePrefix + address

	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, cacheKey).Result(); err == nil {
			var loc models.Location
			if err := json.Unmarshal([]byte(cached), &loc); err == nil {
				return &loc, nil
			}
		} else if err != redis.Nil {
			logger.Warn("geocode cache read failed", zap.Error(err))
		}
	}

	reqURL := fmt.Sprintf("%s?key=%s&location=%s&maxResults=1",
		g.baseURL, url.QueryEscape(g.apiKey), url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var payload mapquestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if len(payload.Results) == 0 || len(payload.Results[0].Locations) == 0 {
		return nil, fmt.Errorf("no geocode result for %q", address)
	}

	hit := payload.Results[0].Locations[0]
	loc := &models.Location{
		Type:             "Point",
		Coordinates:      []float64{hit.LatLng.Lng, hit.LatLng.Lat},
		FormattedAddress: address,
		Street:           hit.Street,
		City:             hit.City,
		State:            hit.State,
		Zipcode:          hit.PostalCode,
		Country:          hit.Country,
	}

	if g.cache != nil {
		if data, err := json.Marshal(loc); err == nil {
			if err := g.cache.Set(ctx, cacheKey, data, utils.GeoCacheTTL).Err(); err != nil {
				logger.Warn("geocode cache write failed", zap.Error(err))
			}
		}
	}

	return loc, nil
}
