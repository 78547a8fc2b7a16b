package curation

import (
	"time"

	"github.com/lectern-app/lectern/internal/models"
)

// fixture describes a candidate tersely for test tables.
type fixture struct {
	id        string
	views     int64
	likes     int64
	duration  string
	published string // RFC3339, defaults to 2024-01-01
}

func candidateFixtures(fixtures ...fixture) []models.VideoCandidate {
	candidates := make([]models.VideoCandidate, len(fixtures))
	for i, f := range fixtures {
		published := f.published
		if published == "" {
			published = "2024-01-01T00:00:00Z"
		}
		ts, err := time.Parse(time.RFC3339, published)
		if err != nil {
			panic("bad fixture timestamp: " + published)
		}
		duration := f.duration
		if duration == "" {
			duration = "PT10M"
		}
		candidates[i] = models.VideoCandidate{
			ID:           f.id,
			Title:        "Video " + f.id,
			Channel:      "Channel " + f.id,
			ThumbnailURL: "https://i.ytimg.com/vi/" + f.id + "/hqdefault.jpg",
			Views:        f.views,
			Likes:        f.likes,
			DurationCode: duration,
			PublishedAt:  ts,
		}
	}
	return candidates
}

func topicFixture(topic string, fixtures ...fixture) models.TopicBlock {
	return models.TopicBlock{Topic: topic, Videos: candidateFixtures(fixtures...)}
}

func videoIDs(videos []models.VideoCandidate) []string {
	ids := make([]string, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
	}
	return ids
}

func sameIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
