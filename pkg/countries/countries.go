// Package countries lists the nationalities and UAE regions a candidate may pick.
package countries

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Emirates are the seven locations candidates can be filtered by.
var Emirates = []string{
	"Abu Dhabi",
	"Dubai",
	"Sharjah",
	"Ajman",
	"Umm Al Quwain",
	"Ras Al Khaimah",
	"Fujairah",
}

// IsEmirate reports whether name is one of Emirates (case-insensitive).
func IsEmirate(name string) bool {
	name = strings.TrimSpace(name)
	for _, e := range Emirates {
		if strings.EqualFold(e, name) {
			return true
		}
	}
	return false
}

var (
	loadOnce sync.Once
	names    []string
	byLower  map[string]string
)

// load walks every two-letter ISO 3166 code and keeps the ones x/text
// knows as countries, named in English.
func load() {
	namer := display.English.Regions()
	byLower = make(map[string]string)
	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			region, err := language.ParseRegion(string([]rune{a, b}))
			if err != nil || !region.IsCountry() || region.IsPrivateUse() {
				continue
			}
			name := namer.Name(region)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if _, dup := byLower[key]; dup {
				continue
			}
			byLower[key] = name
			names = append(names, name)
		}
	}
	sort.Strings(names)
}

// Names returns the sorted English country names.
func Names() []string {
	loadOnce.Do(load)
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Canonical returns the dictionary spelling of a country name.
func Canonical(name string) (string, bool) {
	loadOnce.Do(load)
	n, ok := byLower[strings.ToLower(strings.TrimSpace(name))]
	return n, ok
}

// IsCountry reports whether name is a known country.
func IsCountry(name string) bool {
	_, ok := Canonical(name)
	return ok
}
