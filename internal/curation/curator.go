package curation

import (
	"sort"

	"github.com/lectern-app/lectern/internal/models"
)

// MaxSlots is the number of selection axes the curator fills per topic.
const MaxSlots = 4

// slotLess orders candidates for one selection axis. Sorts are stable, so
// ties fall back to original input order and results stay reproducible.
type slotLess func(a, b models.VideoCandidate) bool

var slotCriteria = []slotLess{
	func(a, b models.VideoCandidate) bool { return a.Likes > b.Likes },                                                 // most liked
	func(a, b models.VideoCandidate) bool { return a.Views > b.Views },                                                 // most viewed
	func(a, b models.VideoCandidate) bool { return ParseDuration(a.DurationCode) < ParseDuration(b.DurationCode) },     // shortest qualifying
	func(a, b models.VideoCandidate) bool { return a.PublishedAt.After(b.PublishedAt) },                                // newest
}

// CurateTopic selects at most four distinct videos for one topic, one per
// selection axis in fixed priority order: most liked, most viewed, shortest
// qualifying, newest.
//
// A video that wins several axes is only chosen once; the next axis takes the
// first candidate not already picked. With fewer than four distinct qualifying
// candidates, fewer slots are filled. The result order is slot-fill order.
func CurateTopic(block models.TopicBlock, thresholdSeconds int) models.CuratedTopicBlock {
	curated := models.CuratedTopicBlock{Topic: block.Topic}

	candidates := FilterCandidates(block.Videos, thresholdSeconds)
	if len(candidates) == 0 {
		return curated
	}

	chosen := make(map[string]bool, MaxSlots)

	for _, less := range slotCriteria {
		ranked := make([]models.VideoCandidate, len(candidates))
		copy(ranked, candidates)
		sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })

		for _, candidate := range ranked {
			if !chosen[candidate.ID] {
				chosen[candidate.ID] = true
				curated.Videos = append(curated.Videos, candidate)
				break
			}
		}
	}

	return curated
}

// CurateAll curates every topic block, preserving topic order. Topics with no
// qualifying candidates yield an empty curated block rather than being dropped,
// so the caller can render an explicit "no matches" placeholder.
func CurateAll(blocks []models.TopicBlock, thresholdSeconds int) []models.CuratedTopicBlock {
	curated := make([]models.CuratedTopicBlock, len(blocks))
	for i, block := range blocks {
		curated[i] = CurateTopic(block, thresholdSeconds)
	}
	return curated
}
