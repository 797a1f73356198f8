package updater

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// --- normalizeVersion ---

func TestNormalizeVersion_StripsV(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"v1.2.3", "1.2.3"},
		{"1.2.3", "1.2.3"},
		{"", ""},
		{"v", ""},
		{"vv1.0.0", "v1.0.0"}, // only strips one leading v
	}

	for _, tt := range tests {
		if got := normalizeVersion(tt.input); got != tt.want {
			t.Errorf("normalizeVersion(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// --- isNewer ---

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
	}{
		{"newer patch", "0.2.0", "0.2.1", true},
		{"newer minor", "0.2.0", "0.3.0", true},
		{"newer major", "0.2.0", "1.0.0", true},
		{"same version", "0.2.0", "0.2.0", false},
		{"older version", "0.3.0", "0.2.0", false},
		{"empty current", "", "0.2.0", false},
		{"empty latest", "0.2.0", "", false},
		{"dev current", "dev", "0.2.0", false},
		{"two part version", "0.2", "0.3.0", true},
		{"minor jump", "0.9.0", "0.10.0", true},
		{"prerelease suffix", "1.0.0", "1.0.1-rc1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNewer(tt.current, tt.latest); got != tt.want {
				t.Errorf("isNewer(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}

// --- CheckVersion ---

func withServer(t *testing.T, h http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	origEndpoint, origClient := releaseEndpoint, httpClient
	releaseEndpoint, httpClient = srv.URL, srv.Client()
	t.Cleanup(func() { releaseEndpoint, httpClient = origEndpoint, origClient })
}

func TestCheckVersion_UpdateAvailable(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "tianav/v0.1.0" {
			t.Errorf("User-Agent = %q", got)
		}
		_ = json.NewEncoder(w).Encode(releaseInfo{TagName: "v0.2.0", HTMLURL: "https://example.test/r"})
	})

	result, err := CheckVersion(context.Background(), "v0.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.UpdateAvailable || result.LatestVersion != "0.2.0" || result.ReleaseURL != "https://example.test/r" {
		t.Errorf("result = %+v", result)
	}
}

func TestCheckVersion_UpToDate(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(releaseInfo{TagName: "v0.1.0"})
	})

	result, err := CheckVersion(context.Background(), "0.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.UpdateAvailable {
		t.Error("same version must not be an update")
	}
}

func TestCheckVersion_HTTPError(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	result, err := CheckVersion(context.Background(), "0.1.0")
	if err == nil {
		t.Fatal("expected error")
	}
	if result.CurrentVersion != "0.1.0" || result.UpdateAvailable {
		t.Errorf("result = %+v", result)
	}
}

func TestCheckVersion_BadJSON(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})

	if _, err := CheckVersion(context.Background(), "0.1.0"); err == nil {
		t.Error("expected parse error")
	}
}
