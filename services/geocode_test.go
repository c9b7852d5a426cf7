package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"tolet/models"
	"tolet/storage"
	"tolet/utils"
)

func TestGeocodeSearch(t *testing.T) {
	var hits atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/search" {
			t.Errorf("path = %s; want /search", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "Viman Nagar Pune" {
			t.Errorf("q = %q", q)
		}
		if ua := r.Header.Get("User-Agent"); ua != "tolet/1.0" {
			t.Errorf("user agent = %q", ua)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"lat": "18.5679", "lon": "73.9143", "display_name": "Viman Nagar, Pune, Maharashtra"},
			{"lat": "bad", "lon": "input", "display_name": "ignored"}
		]`))
	}))
	defer upstream.Close()

	s := NewGeocodeService(upstream.URL, utils.NewLogger())
	defer s.Close()

	places, err := s.Search(context.Background(), "Viman Nagar Pune")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(places) != 1 {
		t.Fatalf("got %d places; want 1 (unparseable rows dropped)", len(places))
	}
	p := places[0]
	if p.Coordinates.Lat != 18.5679 || p.Coordinates.Lng != 73.9143 {
		t.Errorf("coordinates = %+v", p.Coordinates)
	}
	if p.DisplayName != "Viman Nagar, Pune, Maharashtra" {
		t.Errorf("display name = %q", p.DisplayName)
	}

	// Second identical query is served from cache.
	if _, err := s.Search(context.Background(), "Viman Nagar Pune"); err != nil {
		t.Fatalf("cached search: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("upstream hit %d times; want 1", hits.Load())
	}
}

func TestGeocodeReverse(t *testing.T) {
	var hits atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/reverse" {
			t.Errorf("path = %s; want /reverse", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name": "Koramangala, Bengaluru, Karnataka"}`))
	}))
	defer upstream.Close()

	s := NewGeocodeService(upstream.URL, utils.NewLogger())
	defer s.Close()

	c := models.Coordinates{Lat: 12.9339, Lng: 77.6231}
	name, err := s.Reverse(context.Background(), c)
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if name != "Koramangala, Bengaluru, Karnataka" {
		t.Errorf("name = %q", name)
	}

	if _, err := s.Reverse(context.Background(), c); err != nil {
		t.Fatalf("cached reverse: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("upstream hit %d times; want 1", hits.Load())
	}
}

func TestGeocodeUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	s := NewGeocodeService(upstream.URL, utils.NewLogger())
	defer s.Close()

	_, err := s.Search(context.Background(), "anywhere")
	if !errors.Is(err, storage.ErrRemoteUnavailable) {
		t.Errorf("error = %v; want ErrRemoteUnavailable", err)
	}
}
