package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gnomegl/mcavail/internal/client"
)

func newTestChecker(t *testing.T, baseURL string) *Checker {
	t.Helper()
	c, err := client.NewHTTPClient(client.ClientConfig{Timeout: HTTPRequestTimeoutSeconds})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewChecker(c, baseURL)
}

func lookupServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/users/profiles/minecraft/")
		switch name {
		case "Steve":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"8667ba71b85a4004af54457a9734eed7","name":"Steve"}`))
		case "Alex", "with space":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"path":"/users/profiles/minecraft/` + name + `","errorMessage":"Couldn't find any profile with name ` + name + `"}`))
		case "Notch":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Not Found"}`))
		default:
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`Couldn't find any profile`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChecker_Classification(t *testing.T) {
	srv := lookupServer(t)
	ch := newTestChecker(t, srv.URL+"/users/profiles/minecraft")

	tests := []struct {
		name       string
		wantStatus CheckStatus
		wantCode   int
	}{
		{"Steve", CheckStatusTaken, 200},
		{"Alex", CheckStatusAvailable, 404},
		{"Notch", CheckStatusTaken, 404},
		{"Throttled", CheckStatusTaken, 429},
		{"with space", CheckStatusAvailable, 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ch.Check(context.Background(), tt.name)
			if res.Status != tt.wantStatus {
				t.Fatalf("status: got %q want %q", res.Status, tt.wantStatus)
			}
			if res.ResponseCode != tt.wantCode {
				t.Fatalf("response code: got %d want %d", res.ResponseCode, tt.wantCode)
			}
			if res.Name != tt.name {
				t.Fatalf("name: got %q want %q", res.Name, tt.name)
			}
		})
	}
}

func TestChecker_TakenDecodesProfileID(t *testing.T) {
	srv := lookupServer(t)
	ch := newTestChecker(t, srv.URL+"/users/profiles/minecraft/")

	res := ch.Check(context.Background(), "Steve")
	if res.ProfileID != "8667ba71b85a4004af54457a9734eed7" {
		t.Fatalf("profile id: got %q", res.ProfileID)
	}
	if res.Available() {
		t.Fatalf("a 200 response must never be available")
	}
}

func TestChecker_NetworkErrorIsNotAvailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	ch := newTestChecker(t, base)
	res := ch.Check(context.Background(), "Alex")

	if res.Status != CheckStatusError {
		t.Fatalf("status: got %q want %q", res.Status, CheckStatusError)
	}
	if res.Available() {
		t.Fatalf("network failures must be classified as not available")
	}
	if !strings.Contains(res.Error, "Alex") {
		t.Fatalf("error should name the entry, got %q", res.Error)
	}
	if res.ResponseCode != 0 {
		t.Fatalf("response code should be unset, got %d", res.ResponseCode)
	}
}

func TestChecker_LookupURL(t *testing.T) {
	ch := NewChecker(nil, "")
	if got := ch.LookupURL("Notch"); got != "https://api.mojang.com/users/profiles/minecraft/Notch" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := ch.LookupURL("a b"); got != "https://api.mojang.com/users/profiles/minecraft/a%20b" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestClassifyResponse(t *testing.T) {
	if ClassifyResponse(404, "Couldn't find any profile with name x") != CheckStatusAvailable {
		t.Fatalf("404 with marker should be available")
	}
	if ClassifyResponse(404, "") != CheckStatusTaken {
		t.Fatalf("404 without marker should be taken")
	}
	if ClassifyResponse(200, "Couldn't find any profile") != CheckStatusTaken {
		t.Fatalf("200 should be taken regardless of body")
	}
	if ClassifyResponse(500, "Couldn't find any profile") != CheckStatusTaken {
		t.Fatalf("other statuses should be taken")
	}
}
