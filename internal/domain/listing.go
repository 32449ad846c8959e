package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ExperienceBracket is one of the fixed years-of-experience ranges.
type ExperienceBracket string

const (
	ExperienceAny    ExperienceBracket = ""
	Experience0to3   ExperienceBracket = "0-3"
	Experience4to8   ExperienceBracket = "4-8"
	Experience8to12  ExperienceBracket = "8-12"
	Experience13Plus ExperienceBracket = "13+"
)

// ExperienceBrackets in display order.
var ExperienceBrackets = []ExperienceBracket{Experience0to3, Experience4to8, Experience8to12, Experience13Plus}

// ParseExperienceBracket accepts "" (no filter) or one of ExperienceBrackets.
func ParseExperienceBracket(s string) (ExperienceBracket, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ExperienceAny, nil
	}
	for _, b := range ExperienceBrackets {
		if string(b) == s {
			return b, nil
		}
	}
	return ExperienceAny, fmt.Errorf("unknown experience bracket %q", s)
}

// Bounds returns the inclusive range. An open top bracket has max < 0.
func (b ExperienceBracket) Bounds() (min, max int) {
	if b == ExperienceAny {
		return 0, -1
	}
	s := string(b)
	if strings.HasSuffix(s, "+") {
		min, _ = strconv.Atoi(strings.TrimSuffix(s, "+"))
		return min, -1
	}
	lo, hi, _ := strings.Cut(s, "-")
	min, _ = strconv.Atoi(lo)
	max, _ = strconv.Atoi(hi)
	return min, max
}

// Contains reports whether years falls inside the bracket.
func (b ExperienceBracket) Contains(years int) bool {
	min, max := b.Bounds()
	if years < min {
		return false
	}
	return max < 0 || years <= max
}

// CandidateFilter is the canonical listing query.
type CandidateFilter struct {
	Search      string
	Location    string
	Nationality string
	Experience  ExperienceBracket
	Profession  string
	Offset      int
	Limit       int
}

// Active reports whether any narrowing field is set.
func (f CandidateFilter) Active() bool {
	return f.Search != "" || f.Location != "" || f.Nationality != "" || f.Experience != ExperienceAny || f.Profession != ""
}

// ListingPage is the listing collaborator response.
type ListingPage struct {
	Candidates []CandidateListing `json:"candidates"`
	TotalCount int64              `json:"totalCount"`
	HasMore    bool               `json:"hasMore"`
}
