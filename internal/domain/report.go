package domain

import "time"

// DownloadReport summarizes one download run: items fetched per resource.
type DownloadReport struct {
	Event      string
	Counts     map[string]int
	StartedAt  time.Time
	FinishedAt time.Time
}

// TransformReport summarizes one transform run. The duplicate maps list
// every colliding value with the codes that claim it; whether duplicates
// fail a build is the caller's policy, the transform only reports them.
type TransformReport struct {
	Event        string
	Sessions     int
	Speakers     int
	ScheduleDays int

	DuplicateSessionSlugs map[string][]string
	DuplicateSpeakerSlugs map[string][]string
	DuplicateTitles       map[string][]string
	DuplicateNames        map[string][]string

	StartedAt  time.Time
	FinishedAt time.Time
}

// DuplicateSlugCount returns how many distinct slug values collided across
// sessions and speakers.
func (r *TransformReport) DuplicateSlugCount() int {
	return len(r.DuplicateSessionSlugs) + len(r.DuplicateSpeakerSlugs)
}

// HasDuplicates reports whether any duplicate slug, title, or name was
// found during the run.
func (r *TransformReport) HasDuplicates() bool {
	return len(r.DuplicateSessionSlugs) > 0 ||
		len(r.DuplicateSpeakerSlugs) > 0 ||
		len(r.DuplicateTitles) > 0 ||
		len(r.DuplicateNames) > 0
}
