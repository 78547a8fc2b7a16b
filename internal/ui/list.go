package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/lectern-app/lectern/internal/curation"
	"github.com/lectern-app/lectern/internal/models"
	"github.com/lectern-app/lectern/internal/shared"
)

var (
	_ list.Item = topicItem{}
	_ list.Item = videoItem{}
)

// topicItem wraps [models.CuratedTopicBlock] to implement [list.Item].
type topicItem struct {
	block  models.CuratedTopicBlock
	marked int
}

func (i topicItem) FilterValue() string { return i.block.Topic }
func (i topicItem) Title() string       { return i.block.Topic }
func (i topicItem) Description() string {
	if len(i.block.Videos) == 0 {
		return "no videos over the duration threshold"
	}
	return fmt.Sprintf("%d curated • %d marked", len(i.block.Videos), i.marked)
}

// videoItem wraps [models.VideoCandidate] to implement [list.Item].
type videoItem struct {
	video  models.VideoCandidate
	marked bool
}

func (i videoItem) FilterValue() string { return i.video.Title }
func (i videoItem) Title() string {
	box := "[ ]"
	if i.marked {
		box = "[x]"
	}
	return fmt.Sprintf("%s %s", box, i.video.Title)
}

func (i videoItem) Description() string {
	duration := shared.FormatDuration(curation.ParseDuration(i.video.DurationCode))
	return fmt.Sprintf("%s • %s • %s views • %s likes",
		i.video.Channel, duration, formatCount(i.video.Views), formatCount(i.video.Likes))
}

// formatCount renders large counts with a compact suffix (1.2K, 3.4M).
func formatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
