// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/lectern-app/lectern/internal/models"
)

// MockIngestor is a test double for [services.Ingestor]
type MockIngestor struct {
	Blocks []models.TopicBlock
	Err    error
}

func (m *MockIngestor) IngestDocument(ctx context.Context, path string) ([]models.TopicBlock, error) {
	return m.Blocks, m.Err
}

func (m *MockIngestor) Name() string { return "mock" }

// MockPublisher is a test double for [publish.Publisher]
type MockPublisher struct {
	PlaylistID    string
	Err           error
	Authenticated bool
	Calls         [][]string
}

func (m *MockPublisher) CreatePlaylist(ctx context.Context, title, description string, videoIDs []string) (string, error) {
	m.Calls = append(m.Calls, videoIDs)
	if m.Err != nil {
		return "", m.Err
	}
	return m.PlaylistID, nil
}

func (m *MockPublisher) Available() bool { return m.Authenticated }
func (m *MockPublisher) Name() string    { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
