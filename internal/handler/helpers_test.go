package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/cocoa-pos/api/internal/config"
	"github.com/cocoa-pos/api/internal/menu"
	"github.com/cocoa-pos/api/internal/router"
	"github.com/cocoa-pos/api/internal/service"
	"github.com/cocoa-pos/api/internal/ws"
)

const testMenu = `{
	"Bebidas 🥛": {
		"Coca Cola": 2.5
	},
	"Pizzas Enteras 🍕": {
		"Margarita": {
			"price": 9.35,
			"+": {"+ queso": 2.5},
			"-": {"- tomate": 0}
		}
	},
	"Entrantes 🥗": {
		"Croquetas": 7.5
	}
}`

// newTestRouter wires the real floor and router the way main does, minus the
// websocket hub goroutine lifetime concerns (broadcasts go to an empty hub).
func newTestRouter(t *testing.T) (chi.Router, *service.Floor) {
	t.Helper()

	catalog, err := menu.Load(strings.NewReader(testMenu))
	if err != nil {
		t.Fatalf("load test menu: %v", err)
	}

	cfg := &config.Config{
		Port:           "0",
		AllowedOrigins: []string{"http://localhost:5173"},
		ServePolicy:    "flag",
	}

	hub := ws.NewHub()
	go hub.Run()
	pub := ws.NewPublisher(hub)

	floor := service.NewFloor(service.Config{
		Catalog:     catalog,
		ServePolicy: cfg.ServePolicy,
		Notifier:    pub,
	})
	pub.Bind(floor)

	return router.New(cfg, catalog, floor, hub, pub), floor
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeMap(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// addOrder places one order over the API and returns the new line item id.
func addOrder(t *testing.T, r http.Handler, tableID, product string) string {
	t.Helper()
	rr := doRequest(t, r, "POST", "/tables/"+tableID+"/orders", map[string]string{"product": product})
	if rr.Code != http.StatusCreated {
		t.Fatalf("add order: status %d, body %s", rr.Code, rr.Body.String())
	}
	resp := decodeMap(t, rr)
	orders, ok := resp["orders"].([]interface{})
	if !ok || len(orders) == 0 {
		t.Fatalf("add order: missing orders in %v", resp)
	}
	last := orders[len(orders)-1].(map[string]interface{})
	id, _ := last["id"].(string)
	if id == "" {
		t.Fatalf("add order: missing item id in %v", last)
	}
	return id
}

