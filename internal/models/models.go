// package models defines the data model for the syllabus playlist curator
package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the curator.
// Implementations include PersistedSnapshot.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// VideoCandidate is one video returned by the backend for a topic query.
// Immutable once received.
type VideoCandidate struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Channel      string    `json:"channel"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Description  string    `json:"description,omitempty"`
	Views        int64     `json:"views"`
	Likes        int64     `json:"likes"`
	DurationCode string    `json:"durationCode"` // ISO-8601 duration, e.g. PT1H2M3S
	PublishedAt  time.Time `json:"publishedAt"`
}

// URL returns the public watch URL for the candidate.
func (v VideoCandidate) URL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// TopicBlock groups raw candidate videos under one syllabus-derived topic.
// The order of Videos is the arbitrary input order from the backend.
type TopicBlock struct {
	Topic  string           `json:"topic"`
	Videos []VideoCandidate `json:"videos"`
}

// CuratedTopicBlock is the per-topic result of slot curation: at most four
// distinct videos in slot-fill order (liked, viewed, shortest, newest).
type CuratedTopicBlock struct {
	Topic  string           `json:"topic"`
	Videos []VideoCandidate `json:"videos"`
}

// SnapshotGroup is one topic's marked videos inside an export snapshot.
type SnapshotGroup struct {
	Topic  string           `json:"topic"`
	Videos []VideoCandidate `json:"videos"`
}

// Snapshot is the external-facing export payload: the marked subset of the
// curated set, grouped by topic in display order.
type Snapshot struct {
	Name        string          `json:"name"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Topics      []SnapshotGroup `json:"topics"`
}

// VideoCount returns the total number of videos across all topic groups.
func (s Snapshot) VideoCount() int {
	n := 0
	for _, group := range s.Topics {
		n += len(group.Videos)
	}
	return n
}

// VideoIDs flattens the snapshot into an ordered list of video ids
// (topic order, then within-topic order).
func (s Snapshot) VideoIDs() []string {
	ids := make([]string, 0, s.VideoCount())
	for _, group := range s.Topics {
		for _, video := range group.Videos {
			ids = append(ids, video.ID)
		}
	}
	return ids
}
