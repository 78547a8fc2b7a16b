// package services defines interfaces for the external collaborators
//
// Ingestion backend, YouTube proxy
package services

import (
	"context"

	"github.com/lectern-app/lectern/internal/models"
)

// Ingestor converts an uploaded syllabus document into topic blocks with
// candidate videos attached. The ingestion call is the only way topic blocks
// enter the system.
type Ingestor interface {
	// IngestDocument uploads the document at path and returns one TopicBlock
	// per extracted topic. On failure the returned error message is shown to
	// the user verbatim and no partial topics are returned.
	IngestDocument(ctx context.Context, path string) ([]models.TopicBlock, error)

	// Name returns the collaborator name for logging.
	Name() string
}

// Searcher resolves an ad hoc topic query into candidate videos without going
// through document ingestion.
type Searcher interface {
	SearchVideos(ctx context.Context, query string, maxResults int) ([]models.VideoCandidate, error)
}
