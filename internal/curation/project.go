package curation

import (
	"time"

	"github.com/lectern-app/lectern/internal/models"
)

// Project builds the external-facing grouping of marked videos: for each
// curated block, the subset of its videos whose id is marked, in the block's
// current display order. Topics whose marked subset is empty are dropped.
//
// Both the snapshot file and the publish request are built from this one
// projection, so "what counts as selected" has a single source of truth.
func Project(blocks []models.CuratedTopicBlock, marked MarkedSet) []models.SnapshotGroup {
	groups := make([]models.SnapshotGroup, 0, len(blocks))

	for _, block := range blocks {
		var selected []models.VideoCandidate
		for _, video := range block.Videos {
			if marked.Contains(video.ID) {
				selected = append(selected, video)
			}
		}
		if len(selected) == 0 {
			continue
		}
		groups = append(groups, models.SnapshotGroup{Topic: block.Topic, Videos: selected})
	}

	return groups
}

// BuildSnapshot assembles a named, timestamped export payload from the
// current projection.
func BuildSnapshot(name string, blocks []models.CuratedTopicBlock, marked MarkedSet, generatedAt time.Time) models.Snapshot {
	return models.Snapshot{
		Name:        name,
		GeneratedAt: generatedAt,
		Topics:      Project(blocks, marked),
	}
}
