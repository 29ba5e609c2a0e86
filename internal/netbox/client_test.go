package netbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newMockNetBox creates a test HTTP server that mimics NetBox API responses.
// Returns the server and a record of request method+path pairs for verification.
func newMockNetBox(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var requests []string

	mux := http.NewServeMux()

	// Sites
	mux.HandleFunc("GET /api/dcim/sites/", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, "GET /api/dcim/sites/")
		if r.URL.Query().Get("slug") == "dc1" {
			writeTestJSON(w, ListResponse[NBSite]{Count: 1, Results: []NBSite{{ID: 3, Name: "DC1", Slug: "dc1"}}})
			return
		}
		writeTestJSON(w, ListResponse[NBSite]{Count: 0, Results: []NBSite{}})
	})

	// Manufacturers
	mux.HandleFunc("GET /api/dcim/manufacturers/", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, "GET /api/dcim/manufacturers/")
		if r.URL.Query().Get("name") == "Cisco" {
			writeTestJSON(w, ListResponse[NBManufacturer]{Count: 1, Results: []NBManufacturer{{ID: 5, Name: "Cisco", Slug: "cisco"}}})
			return
		}
		writeTestJSON(w, ListResponse[NBManufacturer]{Count: 0, Results: []NBManufacturer{}})
	})
	mux.HandleFunc("POST /api/dcim/manufacturers/", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, "POST /api/dcim/manufacturers/")
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		writeTestJSON(w, NBManufacturer{ID: 20, Name: body["name"], Slug: body["slug"]})
	})

	// Device types
	mux.HandleFunc("GET /api/dcim/device-types/", func(w http.ResponseWriter, _ *http.Request) {
		requests = append(requests, "GET /api/dcim/device-types/")
		writeTestJSON(w, ListResponse[NBDeviceType]{Count: 0, Results: []NBDeviceType{}})
	})
	mux.HandleFunc("POST /api/dcim/device-types/", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, "POST /api/dcim/device-types/")
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		writeTestJSON(w, NBDeviceType{ID: 30, Model: body["model"].(string), Slug: body["slug"].(string)})
	})

	// Platforms
	mux.HandleFunc("GET /api/dcim/platforms/", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, "GET /api/dcim/platforms/")
		if r.URL.Query().Get("slug") == "cisco_ios" {
			writeTestJSON(w, ListResponse[NBPlatform]{Count: 1, Results: []NBPlatform{{ID: 7, Name: "cisco_ios", Slug: "cisco_ios", NapalmDriver: "ios"}}})
			return
		}
		writeTestJSON(w, ListResponse[NBPlatform]{Count: 0, Results: []NBPlatform{}})
	})
	mux.HandleFunc("POST /api/dcim/platforms/", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, "POST /api/dcim/platforms/")
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		writeTestJSON(w, NBPlatform{ID: 70, Name: body["name"], Slug: body["slug"], NapalmDriver: body["napalm_driver"]})
	})

	// Devices
	mux.HandleFunc("GET /api/dcim/devices/", func(w http.ResponseWriter, _ *http.Request) {
		requests = append(requests, "GET /api/dcim/devices/")
		writeTestJSON(w, ListResponse[NBDevice]{Count: 0, Results: []NBDevice{}})
	})
	mux.HandleFunc("POST /api/dcim/devices/", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, "POST /api/dcim/devices/")
		var req NBDeviceCreateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.WriteHeader(http.StatusCreated)
		writeTestJSON(w, NBDevice{ID: 100, Name: req.Name, Serial: req.Serial})
	})
	mux.HandleFunc("PATCH /api/dcim/devices/{id}/", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, "PATCH /api/dcim/devices/"+r.PathValue("id")+"/")
		var fields map[string]any
		_ = json.NewDecoder(r.Body).Decode(&fields)
		dev := NBDevice{ID: 100, Name: "sw1"}
		if s, ok := fields["serial"].(string); ok {
			dev.Serial = s
		}
		writeTestJSON(w, dev)
	})

	// Interfaces
	mux.HandleFunc("GET /api/dcim/interfaces/", func(w http.ResponseWriter, _ *http.Request) {
		requests = append(requests, "GET /api/dcim/interfaces/")
		writeTestJSON(w, ListResponse[NBInterface]{Count: 0, Results: []NBInterface{}})
	})
	mux.HandleFunc("POST /api/dcim/interfaces/", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, "POST /api/dcim/interfaces/")
		var req NBInterfaceCreateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.WriteHeader(http.StatusCreated)
		writeTestJSON(w, NBInterface{ID: 200, Name: req.Name})
	})

	// IP addresses
	mux.HandleFunc("GET /api/ipam/ip-addresses/", func(w http.ResponseWriter, _ *http.Request) {
		requests = append(requests, "GET /api/ipam/ip-addresses/")
		writeTestJSON(w, ListResponse[NBIPAddress]{Count: 0, Results: []NBIPAddress{}})
	})
	mux.HandleFunc("POST /api/ipam/ip-addresses/", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, "POST /api/ipam/ip-addresses/")
		var req NBIPAddressCreateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.WriteHeader(http.StatusCreated)
		writeTestJSON(w, NBIPAddress{ID: 300, Address: req.Address})
	})
	mux.HandleFunc("PATCH /api/ipam/ip-addresses/{id}/", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, "PATCH /api/ipam/ip-addresses/"+r.PathValue("id")+"/")
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeTestJSON(w, NBIPAddress{
			ID:                 300,
			Address:            "10.1.1.1/24",
			AssignedObjectType: body["assigned_object_type"].(string),
			AssignedObjectID:   int(body["assigned_object_id"].(float64)),
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &requests
}

func writeTestJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func testClient(t *testing.T) (*Client, *[]string) {
	t.Helper()
	srv, requests := newMockNetBox(t)
	return NewClient(srv.URL, "test-token", 5*time.Second), requests
}

func TestFindManufacturerByName(t *testing.T) {
	client, _ := testClient(t)

	m, err := client.FindManufacturerByName(context.Background(), "Cisco")
	if err != nil {
		t.Fatalf("FindManufacturerByName: %v", err)
	}
	if m == nil || m.ID != 5 {
		t.Fatalf("manufacturer = %+v, want ID 5", m)
	}

	missing, err := client.FindManufacturerByName(context.Background(), "Nonexistent")
	if err != nil {
		t.Fatalf("FindManufacturerByName (missing): %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing manufacturer, got %+v", missing)
	}
}

func TestCreateManufacturer_slugs_name(t *testing.T) {
	client, requests := testClient(t)

	m, err := client.CreateManufacturer(context.Background(), "Dell Inc.")
	if err != nil {
		t.Fatalf("CreateManufacturer: %v", err)
	}
	if m.Slug != "dell-inc" {
		t.Errorf("slug = %q, want %q", m.Slug, "dell-inc")
	}

	found := false
	for _, r := range *requests {
		if r == "POST /api/dcim/manufacturers/" {
			found = true
		}
	}
	if !found {
		t.Error("expected POST /api/dcim/manufacturers/ request")
	}
}

func TestFindPlatformBySlug(t *testing.T) {
	client, _ := testClient(t)

	p, err := client.FindPlatformBySlug(context.Background(), "cisco_ios")
	if err != nil {
		t.Fatalf("FindPlatformBySlug: %v", err)
	}
	if p == nil || p.NapalmDriver != "ios" {
		t.Fatalf("platform = %+v, want driver %q", p, "ios")
	}
}

func TestCreatePlatform(t *testing.T) {
	client, _ := testClient(t)

	p, err := client.CreatePlatform(context.Background(), "juniper_junos", "junos")
	if err != nil {
		t.Fatalf("CreatePlatform: %v", err)
	}
	if p.Slug != "juniper_junos" || p.NapalmDriver != "junos" {
		t.Errorf("platform = %+v, want slug juniper_junos driver junos", p)
	}
}

func TestCreateDevice(t *testing.T) {
	client, _ := testClient(t)

	dev, err := client.CreateDevice(context.Background(), NBDeviceCreateRequest{
		Name:       "sw1",
		DeviceType: 30,
		Role:       40,
		Site:       3,
		Status:     "active",
		Serial:     "ABC123",
	})
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}
	if dev.ID != 100 || dev.Serial != "ABC123" {
		t.Errorf("device = %+v, want ID 100 serial ABC123", dev)
	}
}

func TestUpdateDevice(t *testing.T) {
	client, requests := testClient(t)

	dev, err := client.UpdateDevice(context.Background(), 100, map[string]any{"serial": "XYZ789"})
	if err != nil {
		t.Fatalf("UpdateDevice: %v", err)
	}
	if dev.Serial != "XYZ789" {
		t.Errorf("serial = %q, want %q", dev.Serial, "XYZ789")
	}

	found := false
	for _, r := range *requests {
		if r == "PATCH /api/dcim/devices/100/" {
			found = true
		}
	}
	if !found {
		t.Error("expected PATCH /api/dcim/devices/100/ request")
	}
}

func TestAssignIPAddress(t *testing.T) {
	client, _ := testClient(t)

	ip, err := client.AssignIPAddress(context.Background(), 300, 200)
	if err != nil {
		t.Fatalf("AssignIPAddress: %v", err)
	}
	if ip.AssignedObjectType != "dcim.interface" || ip.AssignedObjectID != 200 {
		t.Errorf("assignment = %+v, want dcim.interface/200", ip)
	}
}

func TestClient_error_status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail": "Invalid token"}`, http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "bad-token", time.Second)
	_, err := client.FindManufacturerByName(context.Background(), "Cisco")
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
}
