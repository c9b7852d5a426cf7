package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"tolet/models"
	"tolet/storage"
	"tolet/utils"
)

// Place is one geocoding result.
type Place struct {
	Coordinates models.Coordinates `json:"coordinates"`
	DisplayName string             `json:"displayName"`
}

// GeocodeService proxies forward and reverse lookups to a Nominatim-style
// provider. Results are cached for ten minutes so repeated map interactions
// don't hammer the upstream.
type GeocodeService struct {
	baseURL string
	client  *http.Client
	cache   *ttlcache.Cache[string, []Place]
	logger  *utils.Logger
}

// NewGeocodeService creates the service against the given provider base URL.
func NewGeocodeService(baseURL string, logger *utils.Logger) *GeocodeService {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, []Place](10 * time.Minute),
		ttlcache.WithDisableTouchOnHit[string, []Place](),
	)
	go cache.Start()

	return &GeocodeService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		logger:  logger,
	}
}

// Search performs a forward lookup of a free-text query.
func (s *GeocodeService) Search(ctx context.Context, query string) ([]Place, error) {
	key := "s:" + query
	if item := s.cache.Get(key); item != nil {
		return item.Value(), nil
	}

	u := fmt.Sprintf("%s/search?format=json&q=%s", s.baseURL, url.QueryEscape(query))
	var raw []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := s.getJSON(ctx, u, &raw); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(raw))
	for _, r := range raw {
		lat, err1 := strconv.ParseFloat(r.Lat, 64)
		lng, err2 := strconv.ParseFloat(r.Lon, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		places = append(places, Place{
			Coordinates: models.Coordinates{Lat: lat, Lng: lng},
			DisplayName: r.DisplayName,
		})
	}
	s.cache.Set(key, places, ttlcache.DefaultTTL)
	return places, nil
}

// Reverse resolves coordinates to a display name.
func (s *GeocodeService) Reverse(ctx context.Context, c models.Coordinates) (string, error) {
	key := fmt.Sprintf("r:%.6f,%.6f", c.Lat, c.Lng)
	if item := s.cache.Get(key); item != nil {
		if v := item.Value(); len(v) > 0 {
			return v[0].DisplayName, nil
		}
		return "", nil
	}

	u := fmt.Sprintf("%s/reverse?format=json&lat=%f&lon=%f", s.baseURL, c.Lat, c.Lng)
	var raw struct {
		DisplayName string `json:"display_name"`
	}
	if err := s.getJSON(ctx, u, &raw); err != nil {
		return "", err
	}

	s.cache.Set(key, []Place{{Coordinates: c, DisplayName: raw.DisplayName}}, ttlcache.DefaultTTL)
	return raw.DisplayName, nil
}

func (s *GeocodeService) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("geocode: build request: %w", err)
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "tolet/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: geocode status %d", storage.ErrRemoteUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("geocode: decode response: %w", err)
	}
	return nil
}

// Close stops the result cache.
func (s *GeocodeService) Close() {
	s.cache.Stop()
}
