package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	tu "github.com/leonardonapoless/PAMS/internal/testing"
)

func TestSonglinkService(t *testing.T) {
	t.Run("Resolve Maps Platform Links", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("url"); got != "https://open.spotify.com/track/track1" {
				t.Errorf("unexpected url param %q", got)
			}
			w.Write([]byte(`{
				"linksByPlatform": {
					"appleMusic": {"url": "https://music.apple.com/x", "nativeAppUriMobile": "music://x"},
					"spotify": {"url": "https://open.spotify.com/track/track1"},
					"youtube": {"url": "https://youtube.com/watch?v=x"}
				}
			}`))
		}))
		defer srv.Close()

		svc := NewSonglinkService(srv.URL, srv.Client())
		links, err := svc.Resolve(context.Background(), "https://open.spotify.com/track/track1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if links.AppleMusic == nil || links.AppleMusic.WebURL != "https://music.apple.com/x" {
			t.Errorf("unexpected apple music link: %+v", links.AppleMusic)
		}
		if links.AppleMusic.NativeURL != "music://x" {
			t.Errorf("expected native deep link, got %q", links.AppleMusic.NativeURL)
		}
		if links.Spotify == nil || links.Spotify.NativeURL != "" {
			t.Errorf("unexpected spotify link: %+v", links.Spotify)
		}
		if links.Tidal != nil {
			t.Errorf("expected nil tidal entry, got %+v", links.Tidal)
		}
		if links.YouTube == nil {
			t.Error("expected youtube entry")
		}
	})

	t.Run("Failure Yields Nil Links", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		svc := NewSonglinkService(srv.URL, srv.Client())
		links, err := svc.Resolve(context.Background(), "https://open.spotify.com/track/track1")
		if err == nil {
			t.Error("expected an error for logging")
		}
		if links != nil {
			t.Errorf("expected nil links on failure, got %+v", links)
		}
	})

	t.Run("Transport Error Yields Nil Links", func(t *testing.T) {
		client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}

		svc := NewSonglinkService("https://api.song.link/v1-alpha.1", client)
		links, err := svc.Resolve(context.Background(), "https://open.spotify.com/track/track1")
		if err == nil {
			t.Error("expected an error for logging")
		}
		if links != nil {
			t.Errorf("expected nil links on failure, got %+v", links)
		}
	})

	t.Run("Unreadable Body Yields Nil Links", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusOK, Body: &tu.FCloser{}}
		client := &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)}

		svc := NewSonglinkService("https://api.song.link/v1-alpha.1", client)
		if links, err := svc.Resolve(context.Background(), "https://open.spotify.com/track/track1"); err == nil || links != nil {
			t.Errorf("expected nil links and an error, got %+v, %v", links, err)
		}
	})

	t.Run("Empty URL", func(t *testing.T) {
		svc := NewSonglinkService("", nil)
		if links, err := svc.Resolve(context.Background(), ""); err == nil || links != nil {
			t.Errorf("expected nil links and an error, got %+v, %v", links, err)
		}
	})
}
