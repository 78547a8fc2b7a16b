package curation

import "testing"

func TestParseDuration(t *testing.T) {
	tc := []struct {
		name string
		code string
		want int
	}{
		{name: "full code", code: "PT1H2M3S", want: 3723},
		{name: "hours and minutes", code: "PT1H2M", want: 3720},
		{name: "minutes only", code: "PT15M", want: 900},
		{name: "seconds only", code: "PT45S", want: 45},
		{name: "hours only", code: "PT2H", want: 7200},
		{name: "minutes and seconds", code: "PT4M20S", want: 260},
		{name: "designator only", code: "PT", want: 0},
		{name: "empty string", code: "", want: 0},
		{name: "garbage", code: "1:02:03", want: 0},
		{name: "missing designator", code: "1H2M3S", want: 0},
		{name: "trailing garbage", code: "PT1H2M3Sx", want: 0},
		{name: "large minutes", code: "PT90M", want: 5400},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDuration(tt.code)
			if got != tt.want {
				t.Errorf("ParseDuration(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestFilterCandidates(t *testing.T) {
	candidates := candidateFixtures(
		fixture{id: "a", duration: "PT59S"},
		fixture{id: "b", duration: "PT1M"},  // exactly 60s, excluded
		fixture{id: "c", duration: "PT61S"}, // strictly over, kept
		fixture{id: "d", duration: "PT10M"},
		fixture{id: "e", duration: "not-a-code"}, // parses to 0, excluded
	)

	filtered := FilterCandidates(candidates, MinDurationSeconds)

	if len(filtered) != 2 {
		t.Fatalf("expected 2 qualifying candidates, got %d", len(filtered))
	}
	if filtered[0].ID != "c" || filtered[1].ID != "d" {
		t.Errorf("filter must preserve input order, got %s then %s", filtered[0].ID, filtered[1].ID)
	}
}

func TestFilterCandidatesAllShorts(t *testing.T) {
	candidates := candidateFixtures(
		fixture{id: "a", duration: "PT1M"},
		fixture{id: "b", duration: "PT60S"},
	)

	if got := FilterCandidates(candidates, MinDurationSeconds); len(got) != 0 {
		t.Errorf("two 60s videos should both be filtered, got %d", len(got))
	}
}
