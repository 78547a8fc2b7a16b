package curation

import "github.com/lectern-app/lectern/internal/models"

// AutoSelect derives the default export marks from a freshly curated set:
// exactly one video per non-empty topic, the one with the maximum view count.
// Ties break toward the earliest slot (first occurrence wins). Empty topics
// contribute no mark.
//
// The returned set replaces any previous marks entirely; manual toggles are
// only durable between recomputes, not across them.
func AutoSelect(blocks []models.CuratedTopicBlock) MarkedSet {
	marked := NewMarkedSet()

	for _, block := range blocks {
		if len(block.Videos) == 0 {
			continue
		}

		best := block.Videos[0]
		for _, video := range block.Videos[1:] {
			if video.Views > best.Views {
				best = video
			}
		}
		marked.add(best.ID)
	}

	return marked
}
