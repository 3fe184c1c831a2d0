package gcalendar_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"time-tracking-assistant/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

func testClient(t *testing.T, handler http.HandlerFunc) *gcalendar.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	httpClient := ts.Client()
	httpClient.Transport = &rewriteTransport{
		Transport: httpClient.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}

	client, err := gcalendar.NewClientFromHTTP(context.Background(), httpClient)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client
}

const installedCreds = `{
	"installed": {
		"client_id": "test-client-id.apps.googleusercontent.com",
		"project_id": "test-project",
		"auth_uri": "https://accounts.google.com/o/oauth2/auth",
		"token_uri": "https://oauth2.googleapis.com/token",
		"client_secret": "test-secret",
		"redirect_uris": ["http://localhost"]
	}
}`

func TestNewClientFromCredentials(t *testing.T) {
	dir := t.TempDir()

	t.Run("broken credentials", func(t *testing.T) {
		if _, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(`{"broken":true}`), ""); err == nil {
			t.Errorf("expected decoding failure")
		}
	})

	t.Run("installed app with token", func(t *testing.T) {
		tokenPath := filepath.Join(dir, "token.json")
		tok := &oauth2.Token{AccessToken: "dummy", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)}
		if err := gcalendar.SaveToken(tokenPath, tok); err != nil {
			t.Fatalf("SaveToken() error = %v", err)
		}

		if _, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(installedCreds), tokenPath); err != nil {
			t.Fatalf("expected parsing to succeed: %v", err)
		}
	})

	t.Run("installed app without token", func(t *testing.T) {
		if _, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(installedCreds), ""); err == nil {
			t.Fatalf("expected error without token path")
		}
	})

	t.Run("installed app bad token", func(t *testing.T) {
		tokenPath := filepath.Join(dir, "bad.json")
		os.WriteFile(tokenPath, []byte(`{"broken": true`), 0o600)

		if _, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(installedCreds), tokenPath); err == nil {
			t.Fatalf("expected parsing to fail on bad token")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := gcalendar.NewClientFromCredentialsFile(context.Background(), filepath.Join(dir, "nope.json"), ""); err == nil {
			t.Errorf("expected reading file error")
		}
	})
}

func TestCreateEvent(t *testing.T) {
	var body map[string]any
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/calendar/v3/calendars/primary/events" && r.Method == http.MethodPost {
			raw, _ := io.ReadAll(r.Body)
			json.Unmarshal(raw, &body)
			w.Write([]byte(`{"id": "event-123", "summary": "Deep Work", "htmlLink": "https://calendar.google.com/event-uri"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	event, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
		Summary:    "Deep Work",
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Timezone:   "UTC",
		Properties: map[string]string{"time_entry_id": "7"},
	})
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	if event.ID != "event-123" || event.HtmlLink != "https://calendar.google.com/event-uri" {
		t.Errorf("unexpected event: %+v", event)
	}

	ext, _ := body["extendedProperties"].(map[string]any)
	private, _ := ext["private"].(map[string]any)
	if private["time_entry_id"] != "7" {
		t.Errorf("extended properties not sent: %v", body["extendedProperties"])
	}
	startField, _ := body["start"].(map[string]any)
	if startField["dateTime"] != "2025-03-14T09:00:00Z" {
		t.Errorf("unexpected start: %v", body["start"])
	}
}

func TestCreateEvent_APIError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
		Summary:   "Title",
		StartTime: time.Now(),
		EndTime:   time.Now().Add(time.Hour),
	})
	if err == nil {
		t.Fatalf("expected api error")
	}
}
