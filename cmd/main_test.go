package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paddockai/paddock/internal/services"
)

func TestMainServer(t *testing.T) {
	// No provider credentials are set in the test environment, so every
	// infrastructure handle is nil and chat requests are rejected with a
	// structured error rather than a hung stream.
	svcs, err := services.InitializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	defer svcs.Close()

	server := httptest.NewServer(setupRouter(svcs))
	defer server.Close()

	t.Run("chat endpoint rejects empty messages", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/v1/chat", "application/json", strings.NewReader(`{"messages": []}`))
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, resp.StatusCode)
		}

		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode error body: %v", err)
		}
		if body.Error != "No user message provided." {
			t.Errorf("Expected error %q, got %q", "No user message provided.", body.Error)
		}
	})

	t.Run("chat endpoint rejects request without providers", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/v1/chat", "application/json", strings.NewReader(`{
			"messages": [{"role": "user", "content": "Who won the 2023 championship?"}]
		}`))
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, resp.StatusCode)
		}
	})

	t.Run("invalid endpoint", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/invalid")
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status code %d, got %d", http.StatusNotFound, resp.StatusCode)
		}
	})
}
