package imagen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Options{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		Model:      "imagen-test",
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, server
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("NewClient should fail without an api key")
	}
}

func TestGenerateSendsPredictPayload(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"predictions": []map[string]any{
				{"bytesBase64Encoded": base64.StdEncoding.EncodeToString([]byte("image-bytes"))},
			},
		})
	})

	data, err := client.Generate(context.Background(), "a lighthouse", 1280, 720)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Fatalf("decoded data = %q", data)
	}
	if gotPath != "/models/imagen-test:predict" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("api key header = %q", gotKey)
	}

	instances, ok := gotBody["instances"].(map[string]any)
	if !ok {
		t.Fatalf("instances missing or wrong shape: %#v", gotBody)
	}
	if instances["prompt"] != "a lighthouse" {
		t.Fatalf("prompt = %v", instances["prompt"])
	}
	if instances["imageSize"] != "1280x720" {
		t.Fatalf("imageSize = %v", instances["imageSize"])
	}
	params, ok := gotBody["parameters"].(map[string]any)
	if !ok || params["sampleCount"] != float64(1) {
		t.Fatalf("parameters mismatch: %#v", gotBody["parameters"])
	}
}

func TestGenerateSurfacesUpstreamErrorMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 429, "message": "quota exhausted"},
		})
	})

	_, err := client.Generate(context.Background(), "a lighthouse", 1024, 1024)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("want StatusError, got %v", err)
	}
	if statusErr.Status != http.StatusTooManyRequests {
		t.Fatalf("Status = %d", statusErr.Status)
	}
	if statusErr.Message != "quota exhausted" {
		t.Fatalf("Message = %q", statusErr.Message)
	}
}

func TestGenerateFailsOnEmptyPredictions(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"predictions": []map[string]any{}})
	})

	if _, err := client.Generate(context.Background(), "a lighthouse", 512, 512); !errors.Is(err, ErrNoImage) {
		t.Fatalf("want ErrNoImage, got %v", err)
	}
}

func TestGenerateFailsOnBlankImageData(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"predictions": []map[string]any{{"bytesBase64Encoded": ""}},
		})
	})

	if _, err := client.Generate(context.Background(), "a lighthouse", 512, 512); !errors.Is(err, ErrNoImage) {
		t.Fatalf("want ErrNoImage, got %v", err)
	}
}
