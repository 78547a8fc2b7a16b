package curation

import (
	"regexp"
	"strconv"
)

// durationCode matches YouTube's contentDetails duration encoding (PT1H2M3S).
// Every component is optional; the designator alone parses to zero.
var durationCode = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration converts a compact duration code into total whole seconds.
//
// Missing components default to zero. Malformed input yields zero rather than
// an error so a single bad record never aborts curation of a topic.
func ParseDuration(code string) int {
	match := durationCode.FindStringSubmatch(code)
	if match == nil {
		return 0
	}

	hours := atoiOrZero(match[1])
	minutes := atoiOrZero(match[2])
	seconds := atoiOrZero(match[3])

	return hours*3600 + minutes*60 + seconds
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
