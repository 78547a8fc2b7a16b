package curation

import "github.com/lectern-app/lectern/internal/models"

// MinDurationSeconds is the default minimum duration threshold. Videos at or
// under this length are treated as non-substantive (shorts, trailers) and are
// excluded from curation entirely.
const MinDurationSeconds = 60

// FilterCandidates returns the sub-sequence of candidates whose parsed
// duration strictly exceeds the threshold, preserving input order.
func FilterCandidates(candidates []models.VideoCandidate, thresholdSeconds int) []models.VideoCandidate {
	filtered := make([]models.VideoCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if ParseDuration(candidate.DurationCode) > thresholdSeconds {
			filtered = append(filtered, candidate)
		}
	}
	return filtered
}
