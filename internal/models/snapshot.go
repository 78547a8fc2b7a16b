package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// PersistedSnapshot is a saved curation snapshot as stored in the snapshots table.
// The topic groups are serialized into a JSON payload column; counts are
// denormalized for cheap listing.
type PersistedSnapshot struct {
	id          string
	sequence    int
	name        string
	actor       string
	topicCount  int
	videoCount  int
	payload     string
	generatedAt time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

var _ Model = (*PersistedSnapshot)(nil)

// NewPersistedSnapshot builds a persistable record from an export snapshot.
// The id is assigned by the repository on Create.
func NewPersistedSnapshot(snapshot Snapshot, actor string) (*PersistedSnapshot, error) {
	payload, err := json.Marshal(snapshot.Topics)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot topics: %w", err)
	}

	now := time.Now().UTC()
	return &PersistedSnapshot{
		name:        snapshot.Name,
		actor:       actor,
		topicCount:  len(snapshot.Topics),
		videoCount:  snapshot.VideoCount(),
		payload:     string(payload),
		generatedAt: snapshot.GeneratedAt,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// HydrateSnapshot reconstructs a PersistedSnapshot from database columns.
func HydrateSnapshot(id string, sequence int, name, actor string, topicCount, videoCount int, payload string, generatedAt, createdAt, updatedAt time.Time) *PersistedSnapshot {
	return &PersistedSnapshot{
		id:          id,
		sequence:    sequence,
		name:        name,
		actor:       actor,
		topicCount:  topicCount,
		videoCount:  videoCount,
		payload:     payload,
		generatedAt: generatedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (s *PersistedSnapshot) ID() string           { return s.id }
func (s *PersistedSnapshot) Sequence() int        { return s.sequence }
func (s *PersistedSnapshot) Name() string         { return s.name }
func (s *PersistedSnapshot) Actor() string        { return s.actor }
func (s *PersistedSnapshot) TopicCount() int      { return s.topicCount }
func (s *PersistedSnapshot) VideoCount() int      { return s.videoCount }
func (s *PersistedSnapshot) Payload() string      { return s.payload }
func (s *PersistedSnapshot) GeneratedAt() time.Time { return s.generatedAt }
func (s *PersistedSnapshot) CreatedAt() time.Time { return s.createdAt }
func (s *PersistedSnapshot) UpdatedAt() time.Time { return s.updatedAt }

// SetID assigns the generated id. Called by the repository on Create.
func (s *PersistedSnapshot) SetID(id string) { s.id = id }

// SetSequence assigns the per-table sequence number. Called by the repository on Create.
func (s *PersistedSnapshot) SetSequence(sequence int) { s.sequence = sequence }

// Touch updates the updated_at timestamp.
func (s *PersistedSnapshot) Touch() { s.updatedAt = time.Now().UTC() }

// Validate checks that the snapshot record is storable.
func (s *PersistedSnapshot) Validate() error {
	if s.name == "" {
		return fmt.Errorf("snapshot name is required")
	}
	if s.payload == "" {
		return fmt.Errorf("snapshot payload is required")
	}
	if s.generatedAt.IsZero() {
		return fmt.Errorf("snapshot generation timestamp is required")
	}
	return nil
}

// Topics deserializes the stored topic groups.
func (s *PersistedSnapshot) Topics() ([]SnapshotGroup, error) {
	var groups []SnapshotGroup
	if err := json.Unmarshal([]byte(s.payload), &groups); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot payload: %w", err)
	}
	return groups, nil
}

// Export reconstructs the snapshot payload as an export value.
func (s *PersistedSnapshot) Export() (Snapshot, error) {
	groups, err := s.Topics()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Name: s.name, GeneratedAt: s.generatedAt, Topics: groups}, nil
}
