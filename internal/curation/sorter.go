package curation

import (
	"fmt"
	"sort"

	"github.com/lectern-app/lectern/internal/models"
)

// Criterion selects the display order of an already-curated block.
type Criterion string

const (
	SortRelevance Criterion = "relevance" // slot-fill order, the curator's output
	SortViews     Criterion = "views"     // views descending
	SortLikes     Criterion = "likes"     // likes descending
	SortDate      Criterion = "date"      // published date descending
	SortDuration  Criterion = "duration"  // duration descending
)

// Criteria lists all supported sort criteria in cycling order for the UI.
var Criteria = []Criterion{SortRelevance, SortViews, SortLikes, SortDate, SortDuration}

// ParseCriterion validates a user-supplied criterion name.
func ParseCriterion(s string) (Criterion, error) {
	for _, c := range Criteria {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown sort criterion %q", s)
}

// Next returns the criterion after c in cycling order.
func (c Criterion) Next() Criterion {
	for i, candidate := range Criteria {
		if candidate == c {
			return Criteria[(i+1)%len(Criteria)]
		}
	}
	return SortRelevance
}

// SortCurated reorders a curated block by the given criterion without changing
// membership. The input block is left untouched: the sorter always works on a
// copy, so reverting to [SortRelevance] restores the exact slot order.
func SortCurated(block models.CuratedTopicBlock, criterion Criterion) models.CuratedTopicBlock {
	sorted := models.CuratedTopicBlock{Topic: block.Topic, Videos: make([]models.VideoCandidate, len(block.Videos))}
	copy(sorted.Videos, block.Videos)

	var less func(a, b models.VideoCandidate) bool
	switch criterion {
	case SortViews:
		less = func(a, b models.VideoCandidate) bool { return a.Views > b.Views }
	case SortLikes:
		less = func(a, b models.VideoCandidate) bool { return a.Likes > b.Likes }
	case SortDate:
		less = func(a, b models.VideoCandidate) bool { return a.PublishedAt.After(b.PublishedAt) }
	case SortDuration:
		less = func(a, b models.VideoCandidate) bool {
			return ParseDuration(a.DurationCode) > ParseDuration(b.DurationCode)
		}
	default:
		// relevance keeps slot order
		return sorted
	}

	sort.SliceStable(sorted.Videos, func(i, j int) bool { return less(sorted.Videos[i], sorted.Videos[j]) })
	return sorted
}

// SortAll applies SortCurated to every block, preserving topic order.
func SortAll(blocks []models.CuratedTopicBlock, criterion Criterion) []models.CuratedTopicBlock {
	sorted := make([]models.CuratedTopicBlock, len(blocks))
	for i, block := range blocks {
		sorted[i] = SortCurated(block, criterion)
	}
	return sorted
}
