// Package slug derives URL-safe identifiers for sessions and speakers
// and resolves collisions deterministically.
package slug

import (
	"fmt"

	goslug "github.com/gosimple/slug"
)

// Entry pairs a stable key (a Pretalx code) with the value to slugify.
type Entry struct {
	Key   string
	Value string
}

// Make returns the URL slug for s.
func Make(s string) string {
	return goslug.Make(s)
}

// Assign computes one slug per entry key. The first entry producing a
// given slug keeps it bare; every later entry colliding on the same
// slug gets an "-N" suffix, counted per slug starting at 1. Callers
// control the outcome by ordering entries before calling.
//
// The second return value maps each colliding bare slug to the keys
// that produced it, in input order. Slugs held by a single key are
// omitted.
func Assign(entries []Entry) (map[string]string, map[string][]string) {
	slugs := make(map[string]string, len(entries))
	counts := make(map[string]int, len(entries))
	byBase := make(map[string][]string)

	for _, e := range entries {
		base := Make(e.Value)
		byBase[base] = append(byBase[base], e.Key)
		n, seen := counts[base]
		if !seen {
			counts[base] = 0
			slugs[e.Key] = base
			continue
		}
		counts[base] = n + 1
		slugs[e.Key] = fmt.Sprintf("%s-%d", base, n+1)
	}

	collisions := make(map[string][]string)
	for base, keys := range byBase {
		if len(keys) > 1 {
			collisions[base] = keys
		}
	}
	return slugs, collisions
}

// Duplicates reports raw values shared by more than one key, keyed by
// value with keys in input order. Unlike Assign it compares values
// before slugification, so "My Talk" and "My talk" stay distinct.
func Duplicates(entries []Entry) map[string][]string {
	byValue := make(map[string][]string)
	for _, e := range entries {
		byValue[e.Value] = append(byValue[e.Value], e.Key)
	}
	dupes := make(map[string][]string)
	for value, keys := range byValue {
		if len(keys) > 1 {
			dupes[value] = keys
		}
	}
	return dupes
}
