package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"confprogram/internal/domain"
	"confprogram/internal/export"
	"confprogram/internal/slug"
)

// TransformService turns the raw downloaded resources of one event into
// the published dataset: the flat session and speaker maps, the day-by-day
// schedule, and the calendar feed.
type TransformService struct {
	store   domain.DataStore
	archive domain.ArchiveRepository
	reports domain.ReportService
	event   string
	website string
	logger  *slog.Logger
}

// NewTransformService creates a TransformService. The archive and report
// dependencies are optional; pass nil to disable them.
func NewTransformService(store domain.DataStore, archive domain.ArchiveRepository, reports domain.ReportService, event, websiteURL string, logger *slog.Logger) *TransformService {
	return &TransformService{
		store:   store,
		archive: archive,
		reports: reports,
		event:   event,
		website: strings.TrimRight(websiteURL, "/"),
		logger:  logger,
	}
}

// Run executes one full transform pass over the event's raw files and
// writes the published dataset. Duplicate slugs, titles, and names are
// reported and logged, never silenced; whether they fail a build is the
// caller's call.
func (s *TransformService) Run(ctx context.Context) (*domain.TransformReport, error) {
	started := time.Now()

	submissions, err := s.loadPublishableSubmissions()
	if err != nil {
		return nil, err
	}
	publishable := make(map[string]bool, len(submissions))
	for _, sub := range submissions {
		publishable[sub.Code] = true
	}

	speakers, err := s.loadPublishableSpeakers(publishable)
	if err != nil {
		return nil, err
	}
	youtube, err := s.loadYoutubeLinks()
	if err != nil {
		return nil, err
	}

	// Slug assignment is order-sensitive: the first claimant of a slug
	// keeps it bare. Both collections get a fixed deterministic order
	// before assignment so reruns produce identical slugs.
	orderSubmissionsBySchedule(submissions)
	slices.SortFunc(speakers, func(a, b domain.PretalxSpeaker) int {
		return strings.Compare(a.Code, b.Code)
	})
	sessionSlugs, sessionCollisions := slug.Assign(titleEntries(submissions))
	speakerSlugs, speakerCollisions := slug.Assign(nameEntries(speakers))

	sessions := make([]*domain.Session, 0, len(submissions))
	for i := range submissions {
		sessions = append(sessions, s.buildSession(&submissions[i], sessionSlugs[submissions[i].Code], youtube))
	}
	relationships := ComputeTimingRelationships(sessions)
	for _, sess := range sessions {
		if rel, ok := relationships[sess.Code]; ok {
			sess.InParallel = rel.InParallel
			sess.After = rel.After
			sess.Before = rel.Before
			sess.Next = rel.Next
			sess.Prev = rel.Prev
		}
	}

	published := make([]*domain.Speaker, 0, len(speakers))
	for i := range speakers {
		published = append(published, s.buildSpeaker(&speakers[i], speakerSlugs[speakers[i].Code]))
	}

	schedule, err := s.buildSchedule(sessions, published)
	if err != nil {
		return nil, err
	}

	if err := s.writeOutputs(sessions, published, schedule); err != nil {
		return nil, err
	}

	report := &domain.TransformReport{
		Event:                 s.event,
		Sessions:              len(sessions),
		Speakers:              len(published),
		DuplicateSessionSlugs: sessionCollisions,
		DuplicateSpeakerSlugs: speakerCollisions,
		DuplicateTitles:       slug.Duplicates(titleEntries(submissions)),
		DuplicateNames:        slug.Duplicates(nameEntries(speakers)),
		StartedAt:             started,
		FinishedAt:            time.Now(),
	}
	if schedule != nil {
		report.ScheduleDays = len(schedule.Days)
	}
	s.warnDuplicates(report)

	if s.archive != nil {
		pub := &domain.Publication{
			Event:          s.event,
			Sessions:       report.Sessions,
			Speakers:       report.Speakers,
			ScheduleDays:   report.ScheduleDays,
			DuplicateSlugs: report.DuplicateSlugCount(),
			PublishedAt:    report.FinishedAt,
		}
		if err := s.archive.SavePublication(ctx, pub); err != nil {
			return nil, fmt.Errorf("archive publication: %w", err)
		}
	}
	if s.reports != nil {
		if err := s.reports.SendTransformReport(ctx, report); err != nil {
			s.logger.Error("failed to send transform report", "error", err)
		}
	}

	s.logger.Info("transform finished",
		"event", s.event,
		"sessions", report.Sessions,
		"speakers", report.Speakers,
		"schedule_days", report.ScheduleDays,
		"duplicate_slugs", report.DuplicateSlugCount(),
	)
	return report, nil
}

func (s *TransformService) loadPublishableSubmissions() ([]domain.PretalxSubmission, error) {
	raw, err := s.store.LoadRaw(domain.ResourceSubmissions)
	if err != nil {
		return nil, fmt.Errorf("load submissions: %w", err)
	}
	var all []domain.PretalxSubmission
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}
	publishable := make([]domain.PretalxSubmission, 0, len(all))
	for _, sub := range all {
		if sub.IsPublishable() {
			publishable = append(publishable, sub)
		}
	}
	return publishable, nil
}

func (s *TransformService) loadPublishableSpeakers(publishable map[string]bool) ([]domain.PretalxSpeaker, error) {
	raw, err := s.store.LoadRaw(domain.ResourceSpeakers)
	if err != nil {
		return nil, fmt.Errorf("load speakers: %w", err)
	}
	var all []domain.PretalxSpeaker
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("decode speakers: %w", err)
	}
	kept := make([]domain.PretalxSpeaker, 0, len(all))
	for _, sp := range all {
		var mine []string
		for _, code := range sp.Submissions {
			if publishable[code] {
				mine = append(mine, code)
			}
		}
		if len(mine) == 0 {
			continue
		}
		slices.Sort(mine)
		sp.Submissions = mine
		kept = append(kept, sp)
	}
	return kept, nil
}

// loadYoutubeLinks reads the optional recording mapping. A missing file
// just means no recordings are published yet.
func (s *TransformService) loadYoutubeLinks() (map[string]string, error) {
	raw, err := s.store.LoadRaw(domain.ResourceYoutube)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load youtube links: %w", err)
	}
	var entries []struct {
		Submission  string `json:"submission"`
		YoutubeLink string `json:"youtube_link"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode youtube links: %w", err)
	}
	links := make(map[string]string, len(entries))
	for _, e := range entries {
		links[e.Submission] = e.YoutubeLink
	}
	return links, nil
}

// orderSubmissionsBySchedule sorts scheduled submissions first by
// ascending start, unscheduled last, ties broken by code.
func orderSubmissionsBySchedule(subs []domain.PretalxSubmission) {
	slices.SortStableFunc(subs, func(a, b domain.PretalxSubmission) int {
		as, bs := submissionStart(&a), submissionStart(&b)
		switch {
		case as == nil && bs != nil:
			return 1
		case as != nil && bs == nil:
			return -1
		case as != nil && bs != nil:
			if c := as.Compare(*bs); c != 0 {
				return c
			}
		}
		return strings.Compare(a.Code, b.Code)
	})
}

func submissionStart(sub *domain.PretalxSubmission) *time.Time {
	if sub.Slot == nil {
		return nil
	}
	return sub.Slot.Start
}

func titleEntries(subs []domain.PretalxSubmission) []slug.Entry {
	entries := make([]slug.Entry, 0, len(subs))
	for _, sub := range subs {
		entries = append(entries, slug.Entry{Key: sub.Code, Value: sub.Title})
	}
	return entries
}

func nameEntries(speakers []domain.PretalxSpeaker) []slug.Entry {
	entries := make([]slug.Entry, 0, len(speakers))
	for _, sp := range speakers {
		entries = append(entries, slug.Entry{Key: sp.Code, Value: sp.Name})
	}
	return entries
}

func (s *TransformService) buildSession(sub *domain.PretalxSubmission, slugVal string, youtube map[string]string) *domain.Session {
	sess := &domain.Session{
		Code:        sub.Code,
		Title:       sub.Title,
		Speakers:    []string(sub.Speakers),
		SessionType: string(sub.SubmissionType),
		Slug:        slugVal,
		Abstract:    sub.Abstract,
		Duration:    string(sub.Duration),
		WebsiteURL:  s.website + "/session/" + slugVal,
		Kind:        domain.ClassifyKind(string(sub.SubmissionType)),
	}
	if track := string(sub.Track); track != "" {
		sess.Track = &track
	}
	if len(sub.Resources) > 0 {
		sess.Resources = sub.Resources
	}
	if sub.Slot != nil {
		if room := string(sub.Slot.Room); room != "" {
			sess.Room = &room
		}
		sess.Start = sub.Slot.Start
		sess.End = sub.Slot.End
	}
	for _, ans := range sub.Answers {
		switch ans.QuestionText() {
		case domain.QuestionTweet:
			sess.Tweet = ans.Answer
		case domain.QuestionDelivery:
			if strings.Contains(ans.Answer, "in-person") {
				sess.Delivery = "in-person"
			} else {
				sess.Delivery = "remote"
			}
		case domain.QuestionLevel:
			sess.Level = strings.ToLower(ans.Answer)
		}
	}
	if link, ok := youtube[sub.Code]; ok {
		sess.YoutubeURL = &link
	}
	return sess
}

func (s *TransformService) buildSpeaker(sp *domain.PretalxSpeaker, slugVal string) *domain.Speaker {
	speaker := &domain.Speaker{
		Code:        sp.Code,
		Name:        sp.Name,
		Biography:   sp.Biography,
		Avatar:      sp.Avatar,
		Slug:        slugVal,
		Submissions: sp.Submissions,
		WebsiteURL:  s.website + "/speaker/" + slugVal,
	}
	for _, ans := range sp.Answers {
		switch ans.QuestionText() {
		case domain.QuestionAffiliation:
			v := ans.Answer
			speaker.Affiliation = &v
		case domain.QuestionHomepage:
			v := ans.Answer
			speaker.Homepage = &v
		case domain.QuestionTwitter:
			v := domain.NormalizeTwitterURL(ans.Answer)
			speaker.TwitterURL = &v
		case domain.QuestionMastodon:
			v := domain.NormalizeMastodonURL(ans.Answer)
			speaker.MastodonURL = &v
		case domain.QuestionLinkedIn:
			v := domain.NormalizeLinkedInURL(ans.Answer)
			speaker.LinkedInURL = &v
		case domain.QuestionGitx:
			v := domain.FirstAnswerToken(ans.Answer)
			speaker.GitxURL = &v
		}
	}
	return speaker
}

// buildSchedule assembles the day view. A missing schedule document skips
// it with a warning so an event can publish sessions before its schedule
// is released.
func (s *TransformService) buildSchedule(sessions []*domain.Session, speakers []*domain.Speaker) (*domain.Schedule, error) {
	raw, err := s.store.LoadRaw(domain.ResourceSchedules)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("schedule document missing, skipping schedule build", "event", s.event)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	var doc domain.PretalxSchedule
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	merged, err := MergeBreaks(doc.Breaks)
	if err != nil {
		return nil, err
	}
	index := make(map[string]*domain.Speaker, len(speakers))
	for _, sp := range speakers {
		index[sp.Code] = sp
	}
	return BuildSchedule(sessions, index, merged)
}

func (s *TransformService) writeOutputs(sessions []*domain.Session, speakers []*domain.Speaker, schedule *domain.Schedule) error {
	sessionsByCode := make(map[string]*domain.Session, len(sessions))
	for _, sess := range sessions {
		sessionsByCode[sess.Code] = sess
	}
	if err := s.store.SavePublicJSON(domain.PublicSessions, sessionsByCode); err != nil {
		return fmt.Errorf("write sessions: %w", err)
	}

	speakersByCode := make(map[string]*domain.Speaker, len(speakers))
	for _, sp := range speakers {
		speakersByCode[sp.Code] = sp
	}
	if err := s.store.SavePublicJSON(domain.PublicSpeakers, speakersByCode); err != nil {
		return fmt.Errorf("write speakers: %w", err)
	}

	if schedule == nil {
		return nil
	}
	if err := s.store.SavePublicJSON(domain.PublicSchedule, schedule); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	ics, err := export.Calendar(schedule, s.event)
	if err != nil {
		return fmt.Errorf("build calendar: %w", err)
	}
	if err := s.store.SavePublicRaw(domain.PublicCalendar, ics); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	return nil
}

func (s *TransformService) warnDuplicates(report *domain.TransformReport) {
	for slugVal, codes := range report.DuplicateSessionSlugs {
		s.logger.Warn("duplicate session slug", "slug", slugVal, "codes", codes)
	}
	for slugVal, codes := range report.DuplicateSpeakerSlugs {
		s.logger.Warn("duplicate speaker slug", "slug", slugVal, "codes", codes)
	}
	for title, codes := range report.DuplicateTitles {
		s.logger.Warn("duplicate session title", "title", title, "codes", codes)
	}
	for name, codes := range report.DuplicateNames {
		s.logger.Warn("duplicate speaker name", "name", name, "codes", codes)
	}
}
