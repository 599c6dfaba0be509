// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/leonardonapoless/PAMS/internal/models"
)

// MockCatalog is a configurable test double for [services.CatalogService].
// Unset hooks return zero values without error.
type MockCatalog struct {
	SearchFunc func(ctx context.Context, term string) ([]models.Track, error)
	TrackFunc  func(ctx context.Context, id string) (*models.Track, error)
}

func (m *MockCatalog) SearchTracks(ctx context.Context, term string) ([]models.Track, error) {
	if m.SearchFunc == nil {
		return nil, nil
	}
	return m.SearchFunc(ctx, term)
}

func (m *MockCatalog) Track(ctx context.Context, id string) (*models.Track, error) {
	if m.TrackFunc == nil {
		return nil, nil
	}
	return m.TrackFunc(ctx, id)
}

func (m *MockCatalog) Name() string { return "mock" }

// MockLinks is a configurable test double for [services.LinkResolver].
type MockLinks struct {
	ResolveFunc func(ctx context.Context, trackURL string) (*models.PlatformLinks, error)
}

func (m *MockLinks) Resolve(ctx context.Context, trackURL string) (*models.PlatformLinks, error) {
	if m.ResolveFunc == nil {
		return nil, nil
	}
	return m.ResolveFunc(ctx, trackURL)
}

// MockCredits is a configurable test double for [services.CreditsService].
type MockCredits struct {
	LookupFunc func(ctx context.Context, isrc string) (models.Credits, error)
}

func (m *MockCredits) Lookup(ctx context.Context, isrc string) (models.Credits, error) {
	if m.LookupFunc == nil {
		return models.Credits{}, nil
	}
	return m.LookupFunc(ctx, isrc)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
