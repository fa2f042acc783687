// Command seed fills a running server with demo orders so the screens have
// something to show during development.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/cocoa-pos/api/pkg/logging"
)

type tableSeed struct {
	tableID  int
	products []string
	notes    string
}

// Product names must match the embedded catalog exactly (FindProduct is an
// exact case-insensitive match, not a fuzzy one).
var demoTables = []tableSeed{
	{tableID: 1, products: []string{"(1) Margarita", "Esp. carbonara", "Coca cola"}},
	{tableID: 3, products: []string{"Nachos", "(5) Cuatro quesos"}},
	{tableID: 19, products: []string{"(1) Margarita"}, notes: "pedido 17"},
	{tableID: 27, products: []string{"Esp. carbonara", "Cheesecake"}, notes: "Calle Mayor 3"},
}

func main() {
	godotenv.Load()
	logging.Setup()

	baseURL := flag.String("url", "", "Base URL of the running server")
	flag.Parse()

	if *baseURL == "" {
		*baseURL = os.Getenv("SEED_URL")
	}
	if *baseURL == "" {
		*baseURL = "http://localhost:8081"
	}

	for _, seed := range demoTables {
		for _, product := range seed.products {
			if err := post(*baseURL, fmt.Sprintf("/tables/%d/orders", seed.tableID), map[string]string{"product": product}); err != nil {
				slog.Error("seed order", "table", seed.tableID, "product", product, "error", err)
				os.Exit(1)
			}
		}
		if seed.notes != "" {
			if err := put(*baseURL, fmt.Sprintf("/tables/%d/notes", seed.tableID), map[string]string{"notes": seed.notes}); err != nil {
				slog.Error("seed notes", "table", seed.tableID, "error", err)
				os.Exit(1)
			}
		}
		slog.Info("seeded table", "table", seed.tableID, "orders", len(seed.products))
	}
}

func post(base, path string, body any) error {
	return send(http.MethodPost, base+path, body)
}

func put(base, path string, body any) error {
	return send(http.MethodPut, base+path, body)
}

func send(method, url string, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %d", method, url, resp.StatusCode)
	}
	return nil
}
