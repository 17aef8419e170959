package image

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestOpenAIGenerateInline(t *testing.T) {
	encoded := pngBase64(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("auth header = %q", auth)
		}
		var req openAIImageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Size != "1024x1024" || req.N != 1 {
			t.Errorf("unexpected request %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": encoded}},
		})
	}))
	defer srv.Close()

	o := NewOpenAI(OpenAIOptions{APIKey: "test-key", BaseURL: srv.URL, Logger: zerolog.Nop()})
	img, err := o.Generate(context.Background(), "serum bottle", DefaultSize)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if img.Bounds().Dx() != 6 {
		t.Fatalf("unexpected image %v", img.Bounds())
	}
}

func TestOpenAIGenerateFetchesURL(t *testing.T) {
	encoded := pngBase64(t)
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/images/generations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"url": srv.URL + "/generated.png"}},
		})
	})
	mux.HandleFunc("/generated.png", func(w http.ResponseWriter, r *http.Request) {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			t.Fatal(err)
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(raw)
	})

	o := NewOpenAI(OpenAIOptions{APIKey: "k", BaseURL: srv.URL, Logger: zerolog.Nop()})
	img, err := o.Generate(context.Background(), "serum", DefaultSize)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if img.Bounds().Dx() != 6 {
		t.Fatalf("unexpected image %v", img.Bounds())
	}
}

func TestOpenAIGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data":  []map[string]string{},
			"error": map[string]string{"message": "billing hard limit reached"},
		})
	}))
	defer srv.Close()

	o := NewOpenAI(OpenAIOptions{APIKey: "k", BaseURL: srv.URL, Logger: zerolog.Nop()})
	if _, err := o.Generate(context.Background(), "serum", DefaultSize); err == nil {
		t.Fatal("expected api error")
	}
}

func TestSnapOpenAISize(t *testing.T) {
	cases := []struct {
		size Size
		want string
	}{
		{Size{1024, 1024}, "1024x1024"},
		{Size{1792, 1024}, "1792x1024"},
		{Size{1920, 1080}, "1792x1024"},
		{Size{1080, 1920}, "1024x1792"},
		{Size{512, 512}, "1024x1024"},
	}
	for _, tc := range cases {
		if got := snapOpenAISize(tc.size); got != tc.want {
			t.Errorf("snapOpenAISize(%v) = %q, want %q", tc.size, got, tc.want)
		}
	}
}
