// Syllabus ingestion backend client
//
// Communicates with the FastAPI backend that extracts topics from an uploaded
// document and resolves candidate videos for each topic.
package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/lectern-app/lectern/internal/models"
	"github.com/lectern-app/lectern/internal/shared"
)

const defaultBackendBaseURL string = "http://localhost:8000"

// BackendService implements [Ingestor] against the syllabus backend.
type BackendService struct {
	baseURL    string
	httpClient *http.Client
}

var _ Ingestor = (*BackendService)(nil)

// NewBackendService creates a new ingestion backend client.
func NewBackendService(baseURL string) *BackendService {
	if baseURL == "" {
		baseURL = defaultBackendBaseURL
	}

	return &BackendService{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// Name returns the collaborator name.
func (b *BackendService) Name() string {
	return "Syllabus Backend"
}

// IngestDocument uploads a syllabus document and returns topic blocks with
// candidate videos.
//
// Calls POST /api/documents on the backend. A backend failure is surfaced
// verbatim; no partial topic set is ever returned.
func (b *BackendService) IngestDocument(ctx context.Context, path string) ([]models.TopicBlock, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDocumentMissing, err)
	}

	reqBody, err := json.Marshal(struct {
		Filename string `json:"filename"`
		Content  string `json:"content"`
	}{
		Filename: filepath.Base(path),
		Content:  base64.StdEncoding.EncodeToString(content),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ingestion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/documents", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrIngestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return nil, fmt.Errorf("%w: %s", shared.ErrIngestFailed, errResp.Detail)
		}
		return nil, fmt.Errorf("%w: status %d", shared.ErrIngestFailed, resp.StatusCode)
	}

	var result struct {
		Topics []models.TopicBlock `json:"topics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode ingestion response: %w", err)
	}

	if len(result.Topics) == 0 {
		return nil, shared.ErrNoTopics
	}

	return result.Topics, nil
}
