package curation

import (
	"time"

	"github.com/lectern-app/lectern/internal/models"
)

// Session holds the live curation state for one active review: the immutable
// topic blocks, the tunable inputs (duration threshold, sort criterion), and
// the derived state (curated blocks, marked set).
//
// Any input change triggers a synchronous recompute that replaces the derived
// state wholesale before control returns to the caller, so the marked set is
// never derived from a half-updated curated set. This includes sort-only
// changes: the source behavior resets marks on every parameter change, and the
// session preserves that, trading durability of manual toggles for predictable
// fresh defaults.
//
// A Session is confined to a single goroutine.
type Session struct {
	blocks    []models.TopicBlock
	threshold int
	criterion Criterion

	curated []models.CuratedTopicBlock // slot order, untouched by display sorting
	marked  MarkedSet
}

// NewSession creates an empty session with the default threshold and
// relevance ordering.
func NewSession() *Session {
	return &Session{
		threshold: MinDurationSeconds,
		criterion: SortRelevance,
		marked:    NewMarkedSet(),
	}
}

// SetTopicBlocks installs a freshly ingested topic set and recomputes.
// Passing nil clears the session.
func (s *Session) SetTopicBlocks(blocks []models.TopicBlock) {
	s.blocks = blocks
	s.recompute()
}

// SetDurationThreshold changes the minimum-duration threshold and recomputes.
func (s *Session) SetDurationThreshold(seconds int) {
	s.threshold = seconds
	s.recompute()
}

// SetSortCriterion changes the display order and recomputes.
func (s *Session) SetSortCriterion(criterion Criterion) {
	s.criterion = criterion
	s.recompute()
}

// recompute replaces all derived state: re-curates every topic from scratch,
// then reseeds the marked set from the new curated blocks.
func (s *Session) recompute() {
	s.curated = CurateAll(s.blocks, s.threshold)
	s.marked = AutoSelect(s.curated)
}

// Criterion returns the active sort criterion.
func (s *Session) Criterion() Criterion {
	return s.criterion
}

// Threshold returns the active minimum-duration threshold in seconds.
func (s *Session) Threshold() int {
	return s.threshold
}

// Curated returns the curated blocks in the current display order.
// Sorting is computed from the untouched slot-order blocks on every call.
func (s *Session) Curated() []models.CuratedTopicBlock {
	return SortAll(s.curated, s.criterion)
}

// TopicCount returns the number of topics in the session, empty or not.
func (s *Session) TopicCount() int {
	return len(s.curated)
}

// Marked returns a copy of the current marked set.
func (s *Session) Marked() MarkedSet {
	return s.marked.Clone()
}

// ToggleMark flips the marked state of a video id. Ids not present in any
// curated block are ignored.
func (s *Session) ToggleMark(id string) bool {
	if !s.contains(id) {
		return false
	}
	next := s.marked.Clone()
	next.toggle(id)
	s.marked = next
	return true
}

func (s *Session) contains(id string) bool {
	for _, block := range s.curated {
		for _, video := range block.Videos {
			if video.ID == id {
				return true
			}
		}
	}
	return false
}

// Projection returns the marked videos grouped by topic in display order.
func (s *Session) Projection() []models.SnapshotGroup {
	return Project(s.Curated(), s.marked)
}

// Snapshot builds a named export payload from the current projection.
func (s *Session) Snapshot(name string, generatedAt time.Time) models.Snapshot {
	return BuildSnapshot(name, s.Curated(), s.marked, generatedAt)
}

// PublishIDs flattens the projection into the ordered id list used for the
// publish request: topic order, then within-topic display order.
func (s *Session) PublishIDs() []string {
	var ids []string
	for _, group := range s.Projection() {
		for _, video := range group.Videos {
			ids = append(ids, video.ID)
		}
	}
	return ids
}
