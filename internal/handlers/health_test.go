package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCheckHealth(t *testing.T) {
	r := gin.New()
	r.GET("/health", NewHealthHandler("csv", "legacy").CheckHealth)

	w := doRequest(r, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body struct {
		Status     string `json:"status"`
		Service    string `json:"service"`
		Components struct {
			StoreDriver string `json:"store_driver"`
			ErrorFilter string `json:"error_filter"`
		} `json:"components"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}

	if body.Status != "ok" || body.Service != "reviewboard" {
		t.Errorf("unexpected health payload: %+v", body)
	}
	if body.Components.StoreDriver != "csv" || body.Components.ErrorFilter != "legacy" {
		t.Errorf("unexpected components: %+v", body.Components)
	}
}
