package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/Ryladain/Inventory-files/internal/catalog"
	"github.com/Ryladain/Inventory-files/internal/inventory"
	"github.com/Ryladain/Inventory-files/internal/loot"
	"github.com/Ryladain/Inventory-files/internal/models"
	"github.com/Ryladain/Inventory-files/internal/roster"
	"github.com/Ryladain/Inventory-files/internal/storage"
)

const (
	master int64 = 1
	karla  int64 = 10
	nait   int64 = 20
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := storage.NewJSONFile(filepath.Join(t.TempDir(), "inventory_data.json"))
	cat := catalog.New(nil, []models.CatalogItem{
		{Name: "Longsword", Category: "Weapons", Description: "A versatile blade."},
	})
	svc := inventory.New(inventory.Deps{
		Store:   store,
		Catalog: cat,
		Engine:  loot.NewEngine(loot.NewSource(5), cat, loot.Options{}),
		Roster:  roster.New(master, map[string]int64{"Karla": karla, "Nait": nait}, "Nait"),
	}, inventory.Options{})
	return New(svc)
}

func do(t *testing.T, s *Server, method, path string, actor int64, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != 0 {
		req.Header.Set(ActorHeader, strconv.FormatInt(actor, 10))
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/health", 0, nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestCategories(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/categories", 0, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 7 || got[0] != "Clothing" || got[6] != "Magic Item" {
		t.Fatalf("categories = %v", got)
	}
}

func TestCatalogSearch(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/catalog/search?q=long&category=weapons", 0, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got struct {
		Items []models.CatalogItem `json:"items"`
		Total int                  `json:"total_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Total != 1 || got.Items[0].Name != "Longsword" {
		t.Fatalf("search = %+v", got)
	}

	rec = do(t, s, http.MethodGet, "/api/catalog/search?q=x&category=potions", 0, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown category status = %d", rec.Code)
	}
}

func TestAddConfirmRemoveFlow(t *testing.T) {
	s := newTestServer(t)
	base := "/api/inventories/" + strconv.FormatInt(karla, 10)

	rec := do(t, s, http.MethodPost, base+"/items", karla, models.AddItemRequest{Category: "Weapons", Text: "longsord"})
	if rec.Code != http.StatusOK {
		t.Fatalf("add with match: status = %d body %s", rec.Code, rec.Body.String())
	}
	var res inventory.AddResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Suggestion == nil || res.Suggestion.Name != "Longsword" {
		t.Fatalf("expected suggestion, got %+v", res)
	}

	rec = do(t, s, http.MethodPost, base+"/items/confirm", karla, models.ConfirmRequest{
		Category: "Weapons", Name: res.Suggestion.Name, Raw: res.Suggestion.Raw, Accept: true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("confirm: status = %d body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodPost, base+"/items", karla, models.AddItemRequest{Category: "Clothing", Text: "Moth-eaten scarf"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add custom: status = %d body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodGet, base, karla, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}
	var inv struct {
		Inventory models.Inventory `json:"inventory"`
		Total     int              `json:"total_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &inv); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if inv.Total != 2 || inv.Inventory[models.Weapons][0].Name != "Longsword" {
		t.Fatalf("inventory = %+v", inv)
	}

	rec = do(t, s, http.MethodDelete, base+"/items/clothing/0", karla, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: status = %d body %s", rec.Code, rec.Body.String())
	}
	rec = do(t, s, http.MethodDelete, base+"/items/clothing/0", karla, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("remove missing: status = %d", rec.Code)
	}
}

func TestConfirmRejectsNameOutsideCatalog(t *testing.T) {
	s := newTestServer(t)
	base := "/api/inventories/" + strconv.FormatInt(karla, 10)

	rec := do(t, s, http.MethodPost, base+"/items/confirm", karla, models.ConfirmRequest{
		Category: "Weapons", Name: "Longsword" + models.DescriptionSeparator + "cursed", Accept: true,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("confirm: status = %d body %s", rec.Code, rec.Body.String())
	}
}

func TestSimulateEndpoint(t *testing.T) {
	s := newTestServer(t)
	base := "/api/inventories/" + strconv.FormatInt(nait, 10)

	rec := do(t, s, http.MethodPost, base+"/simulate", nait, models.SimulateRequest{Days: 3})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty inventory: status = %d", rec.Code)
	}

	do(t, s, http.MethodPost, base+"/items", nait, models.AddItemRequest{Category: "Gear", Text: "Lantern"})

	rec = do(t, s, http.MethodPost, base+"/simulate", nait, models.SimulateRequest{Days: 3})
	if rec.Code != http.StatusOK {
		t.Fatalf("simulate: status = %d body %s", rec.Code, rec.Body.String())
	}
	var report models.SimulationReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(report.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(report.Days))
	}

	rec = do(t, s, http.MethodPost, base+"/simulate", nait, models.SimulateRequest{Days: 0})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("days=0: status = %d", rec.Code)
	}
	rec = do(t, s, http.MethodGet, base+"/simulations", nait, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("json store has no journal: status = %d", rec.Code)
	}
}

func TestPermissions(t *testing.T) {
	s := newTestServer(t)
	karlaPath := "/api/inventories/" + strconv.FormatInt(karla, 10)

	tcs := []struct {
		name   string
		method string
		path   string
		actor  int64
		body   interface{}
		want   int
	}{
		{"no actor", http.MethodGet, karlaPath, 0, nil, http.StatusUnauthorized},
		{"bad user id", http.MethodGet, "/api/inventories/abc", karla, nil, http.StatusBadRequest},
		{"other player", http.MethodGet, karlaPath, nait, nil, http.StatusForbidden},
		{"guest", http.MethodGet, karlaPath, 99, nil, http.StatusForbidden},
		{"master", http.MethodGet, karlaPath, master, nil, http.StatusOK},
		{"master on stranger", http.MethodGet, "/api/inventories/99", master, nil, http.StatusNotFound},
		{"simulate not allowed", http.MethodPost, karlaPath + "/simulate", karla, models.SimulateRequest{Days: 1}, http.StatusForbidden},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, tc.method, tc.path, tc.actor, tc.body)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}
