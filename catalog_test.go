package mimiry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListInstanceTypes_QueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/instances" {
			t.Errorf("expected path /instances, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("currency"); got != "usd" {
			t.Errorf("expected default currency usd, got %q", got)
		}
		if got := r.URL.Query().Get("provider"); got != "datacrunch" {
			t.Errorf("expected provider filter, got %q", got)
		}
		_ = json.NewEncoder(w).Encode([]InstanceType{
			{InstanceType: "1V100.6V", GPUType: "V100", PricePerHour: 0.89, Currency: "usd"},
		})
	}))
	defer server.Close()

	c, err := New("mky_test", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	types, err := c.ListInstanceTypes(context.Background(), ListInstanceTypesOptions{Provider: "datacrunch"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(types) != 1 || types[0].InstanceType != "1V100.6V" {
		t.Errorf("unexpected result: %+v", types)
	}
}

func TestCheckAvailability_Paths(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/availability":
			if got := r.URL.Query().Get("provider"); got != "" {
				t.Errorf("expected no provider filter, got %q", got)
			}
			_ = json.NewEncoder(w).Encode([]Availability{
				{InstanceType: "1V100.6V", IsAvailable: true, Locations: []string{"FIN-01"}},
			})
		case "/availability/8H100.640G":
			if got := r.URL.Query().Get("provider"); got != "datacrunch" {
				t.Errorf("expected provider filter, got %q", got)
			}
			_ = json.NewEncoder(w).Encode(Availability{InstanceType: "8H100.640G", IsAvailable: false})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	defer server.Close()

	c, err := New("mky_test", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	all, err := c.CheckAvailability(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 || !all[0].IsAvailable {
		t.Errorf("unexpected result: %+v", all)
	}

	one, err := c.CheckInstanceAvailability(context.Background(), "8H100.640G", "datacrunch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if one.InstanceType != "8H100.640G" || one.IsAvailable {
		t.Errorf("unexpected result: %+v", one)
	}
}

func TestListImages_Filters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images" {
			t.Errorf("expected path /images, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("instance_type") != "1V100.6V" || q.Get("provider") != "datacrunch" {
			t.Errorf("unexpected query %v", q)
		}
		_ = json.NewEncoder(w).Encode([]OSImage{
			{Code: "ubuntu-22.04-cuda-12.0", OS: "ubuntu", CUDAVersion: "12.0"},
		})
	}))
	defer server.Close()

	c, err := New("mky_test", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	images, err := c.ListImages(context.Background(), ListImagesOptions{
		InstanceType: "1V100.6V",
		Provider:     "datacrunch",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(images) != 1 || images[0].CUDAVersion != "12.0" {
		t.Errorf("unexpected result: %+v", images)
	}
}

func TestListProvidersAndLocations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/providers":
			_ = json.NewEncoder(w).Encode([]Provider{{Slug: "datacrunch", Name: "DataCrunch", IsActive: true}})
		case "/locations":
			if got := r.URL.Query().Get("provider"); got != "datacrunch" {
				t.Errorf("expected provider filter, got %q", got)
			}
			_ = json.NewEncoder(w).Encode([]Location{{Code: "FIN-01", Country: "FI"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c, err := New("mky_test", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	providers, err := c.ListProviders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(providers) != 1 || !providers[0].IsActive {
		t.Errorf("unexpected result: %+v", providers)
	}

	locs, err := c.ListLocations(context.Background(), "datacrunch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locs) != 1 || locs[0].Code != "FIN-01" {
		t.Errorf("unexpected result: %+v", locs)
	}
}
