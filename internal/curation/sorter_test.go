package curation

import (
	"sort"
	"testing"

	"github.com/lectern-app/lectern/internal/models"
)

func curatedFixture() models.CuratedTopicBlock {
	// slot order: a (liked), b (viewed), c (shortest), d (newest)
	return models.CuratedTopicBlock{
		Topic: "Hash Tables",
		Videos: candidateFixtures(
			fixture{id: "a", likes: 900, views: 100, duration: "PT20M", published: "2023-01-01T00:00:00Z"},
			fixture{id: "b", likes: 100, views: 900, duration: "PT30M", published: "2024-01-01T00:00:00Z"},
			fixture{id: "c", likes: 50, views: 500, duration: "PT2M", published: "2022-01-01T00:00:00Z"},
			fixture{id: "d", likes: 10, views: 300, duration: "PT40M", published: "2025-01-01T00:00:00Z"},
		),
	}
}

func TestSortCurated(t *testing.T) {
	tc := []struct {
		name      string
		criterion Criterion
		want      []string
	}{
		{name: "relevance keeps slot order", criterion: SortRelevance, want: []string{"a", "b", "c", "d"}},
		{name: "views descending", criterion: SortViews, want: []string{"b", "c", "d", "a"}},
		{name: "likes descending", criterion: SortLikes, want: []string{"a", "b", "c", "d"}},
		{name: "date descending", criterion: SortDate, want: []string{"d", "b", "a", "c"}},
		{name: "duration descending", criterion: SortDuration, want: []string{"d", "b", "a", "c"}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			block := curatedFixture()
			sorted := SortCurated(block, tt.criterion)

			if !sameIDs(videoIDs(sorted.Videos), tt.want) {
				t.Errorf("order = %v, want %v", videoIDs(sorted.Videos), tt.want)
			}

			// membership never changes
			gotIDs := videoIDs(sorted.Videos)
			wantIDs := videoIDs(block.Videos)
			sort.Strings(gotIDs)
			sort.Strings(wantIDs)
			if !sameIDs(gotIDs, wantIDs) {
				t.Errorf("membership changed: %v vs %v", gotIDs, wantIDs)
			}
		})
	}
}

func TestSortCuratedNonDestructive(t *testing.T) {
	block := curatedFixture()

	byDate := SortCurated(block, SortDate)
	if sameIDs(videoIDs(byDate.Videos), videoIDs(block.Videos)) {
		t.Fatal("date sort should reorder this fixture")
	}

	// original slot order must be untouched so relevance restores it exactly
	if !sameIDs(videoIDs(block.Videos), []string{"a", "b", "c", "d"}) {
		t.Errorf("input block was mutated: %v", videoIDs(block.Videos))
	}

	restored := SortCurated(block, SortRelevance)
	if !sameIDs(videoIDs(restored.Videos), []string{"a", "b", "c", "d"}) {
		t.Errorf("relevance should restore slot order, got %v", videoIDs(restored.Videos))
	}
}

func TestParseCriterion(t *testing.T) {
	for _, c := range Criteria {
		got, err := ParseCriterion(string(c))
		if err != nil || got != c {
			t.Errorf("ParseCriterion(%q) = %v, %v", c, got, err)
		}
	}

	if _, err := ParseCriterion("alphabetical"); err == nil {
		t.Error("unknown criterion should error")
	}
}

func TestCriterionNext(t *testing.T) {
	if SortRelevance.Next() != SortViews {
		t.Errorf("relevance should cycle to views, got %s", SortRelevance.Next())
	}
	if Criteria[len(Criteria)-1].Next() != SortRelevance {
		t.Errorf("last criterion should cycle back to relevance")
	}
	if Criterion("bogus").Next() != SortRelevance {
		t.Errorf("unknown criterion should reset to relevance")
	}
}
