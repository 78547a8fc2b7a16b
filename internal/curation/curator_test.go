package curation

import (
	"reflect"
	"testing"

	"github.com/lectern-app/lectern/internal/models"
)

func TestCurateTopic(t *testing.T) {
	t.Run("fills all four slots in order", func(t *testing.T) {
		// liked -> a, viewed -> b, shortest -> c, newest -> d
		block := topicFixture("Sorting Algorithms",
			fixture{id: "a", likes: 900, views: 100, duration: "PT20M"},
			fixture{id: "b", likes: 100, views: 900, duration: "PT30M"},
			fixture{id: "c", likes: 50, views: 50, duration: "PT2M"},
			fixture{id: "d", likes: 10, views: 10, duration: "PT40M", published: "2025-06-01T00:00:00Z"},
			fixture{id: "e", likes: 5, views: 5, duration: "PT50M"},
		)

		curated := CurateTopic(block, MinDurationSeconds)

		want := []string{"a", "b", "c", "d"}
		if !sameIDs(videoIDs(curated.Videos), want) {
			t.Errorf("slot order = %v, want %v", videoIDs(curated.Videos), want)
		}
	})

	t.Run("winner of two axes occupies only one slot", func(t *testing.T) {
		// a has both max likes and max views; slot 2 must take the runner-up by views
		block := topicFixture("Graph Theory",
			fixture{id: "a", likes: 1000, views: 1000, duration: "PT15M"},
			fixture{id: "b", likes: 10, views: 800, duration: "PT16M"},
			fixture{id: "c", likes: 20, views: 300, duration: "PT17M"},
			fixture{id: "d", likes: 30, views: 200, duration: "PT18M"},
			fixture{id: "e", likes: 40, views: 100, duration: "PT19M"},
			fixture{id: "f", likes: 50, views: 50, duration: "PT20M"},
		)

		curated := CurateTopic(block, MinDurationSeconds)

		if len(curated.Videos) != MaxSlots {
			t.Fatalf("expected %d slots filled, got %d", MaxSlots, len(curated.Videos))
		}
		if curated.Videos[0].ID != "a" {
			t.Errorf("slot 1 (most liked) = %s, want a", curated.Videos[0].ID)
		}
		if curated.Videos[1].ID != "b" {
			t.Errorf("slot 2 (most viewed) must skip a and take b, got %s", curated.Videos[1].ID)
		}
	})

	t.Run("fewer candidates fill fewer slots", func(t *testing.T) {
		block := topicFixture("Recursion",
			fixture{id: "a", likes: 10, views: 10},
			fixture{id: "b", likes: 20, views: 5},
		)

		curated := CurateTopic(block, MinDurationSeconds)

		if len(curated.Videos) != 2 {
			t.Fatalf("2 distinct candidates must fill exactly 2 slots, got %d", len(curated.Videos))
		}
		seen := map[string]bool{}
		for _, v := range curated.Videos {
			if seen[v.ID] {
				t.Errorf("duplicate id %s in curated block", v.ID)
			}
			seen[v.ID] = true
		}
	})

	t.Run("empty after filtering yields empty block", func(t *testing.T) {
		block := topicFixture("Shorts Only",
			fixture{id: "a", duration: "PT60S"},
			fixture{id: "b", duration: "PT1M"},
		)

		curated := CurateTopic(block, MinDurationSeconds)

		if len(curated.Videos) != 0 {
			t.Errorf("expected empty curated block, got %d videos", len(curated.Videos))
		}
		if curated.Topic != "Shorts Only" {
			t.Errorf("topic label must survive, got %q", curated.Topic)
		}
	})

	t.Run("ties break by input order", func(t *testing.T) {
		// all metrics equal; every axis should pick in input order
		block := topicFixture("Ties",
			fixture{id: "first", likes: 10, views: 10, duration: "PT5M"},
			fixture{id: "second", likes: 10, views: 10, duration: "PT5M"},
			fixture{id: "third", likes: 10, views: 10, duration: "PT5M"},
			fixture{id: "fourth", likes: 10, views: 10, duration: "PT5M"},
		)

		curated := CurateTopic(block, MinDurationSeconds)

		want := []string{"first", "second", "third", "fourth"}
		if !sameIDs(videoIDs(curated.Videos), want) {
			t.Errorf("tie-break order = %v, want %v", videoIDs(curated.Videos), want)
		}
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		block := topicFixture("Determinism",
			fixture{id: "a", likes: 3, views: 7, duration: "PT3M"},
			fixture{id: "b", likes: 7, views: 3, duration: "PT4M", published: "2024-06-01T00:00:00Z"},
			fixture{id: "c", likes: 5, views: 5, duration: "PT5M"},
			fixture{id: "d", likes: 5, views: 5, duration: "PT2M"},
			fixture{id: "e", likes: 1, views: 9, duration: "PT6M"},
		)

		first := CurateTopic(block, MinDurationSeconds)
		for i := 0; i < 10; i++ {
			if got := CurateTopic(block, MinDurationSeconds); !reflect.DeepEqual(first, got) {
				t.Fatalf("run %d differs: %v vs %v", i, videoIDs(first.Videos), videoIDs(got.Videos))
			}
		}
	})

	t.Run("output is a subset of qualifying input", func(t *testing.T) {
		block := topicFixture("Subset",
			fixture{id: "short", duration: "PT30S", likes: 9999, views: 9999},
			fixture{id: "a", likes: 1, views: 1},
			fixture{id: "b", likes: 2, views: 2},
		)

		curated := CurateTopic(block, MinDurationSeconds)

		for _, v := range curated.Videos {
			if v.ID == "short" {
				t.Error("filtered-out video must never be chosen, even as an axis winner")
			}
		}
	})
}

func TestCurateAll(t *testing.T) {
	curated := CurateAll([]models.TopicBlock{
		topicFixture("A", fixture{id: "a1", likes: 1, views: 1}),
		topicFixture("B"), // no candidates at all
		topicFixture("C", fixture{id: "c1", duration: "PT10S"}), // filtered out
	}, MinDurationSeconds)

	if len(curated) != 3 {
		t.Fatalf("CurateAll must preserve topic count, got %d", len(curated))
	}
	if len(curated[0].Videos) != 1 {
		t.Errorf("topic A should curate 1 video, got %d", len(curated[0].Videos))
	}
	if len(curated[1].Videos) != 0 || len(curated[2].Videos) != 0 {
		t.Error("empty and all-filtered topics should yield empty curated blocks")
	}
}
