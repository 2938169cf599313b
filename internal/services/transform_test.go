package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confprogram/internal/domain"
)

type fakeDataStore struct {
	raw         map[string][]byte
	savedJSON   map[string]any
	savedRaw    map[string][]byte
	saveJSONErr error
}

func newFakeDataStore() *fakeDataStore {
	return &fakeDataStore{
		raw:       make(map[string][]byte),
		savedJSON: make(map[string]any),
		savedRaw:  make(map[string][]byte),
	}
}

func (f *fakeDataStore) SaveRaw(resource string, data []byte) error {
	f.raw[resource] = data
	return nil
}

func (f *fakeDataStore) LoadRaw(resource string) ([]byte, error) {
	data, ok := f.raw[resource]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func (f *fakeDataStore) SavePublicJSON(name string, v any) error {
	if f.saveJSONErr != nil {
		return f.saveJSONErr
	}
	f.savedJSON[name] = v
	return nil
}

func (f *fakeDataStore) SavePublicRaw(name string, data []byte) error {
	f.savedRaw[name] = data
	return nil
}

func (f *fakeDataStore) LoadPublic(name string) ([]byte, error) {
	return nil, domain.ErrNotFound
}

type fakeArchive struct {
	publications []*domain.Publication
	snapshots    []*domain.Snapshot
}

func (f *fakeArchive) SaveSnapshot(_ context.Context, s *domain.Snapshot) error {
	f.snapshots = append(f.snapshots, s)
	return nil
}

func (f *fakeArchive) LatestSnapshot(context.Context, string, string) (*domain.Snapshot, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeArchive) SavePublication(_ context.Context, p *domain.Publication) error {
	f.publications = append(f.publications, p)
	return nil
}

func (f *fakeArchive) LatestPublication(context.Context, string) (*domain.Publication, error) {
	return nil, domain.ErrNotFound
}

type fakeReporter struct {
	reports []*domain.TransformReport
	err     error
}

func (f *fakeReporter) SendTransformReport(_ context.Context, r *domain.TransformReport) error {
	f.reports = append(f.reports, r)
	return f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const submissionsFixture = `[
  {
    "code": "ABC001",
    "title": "Building Pipelines",
    "speakers": [{"code": "SPK001", "name": "Jordan Lee"}],
    "submission_type": {"en": "Talk"},
    "track": {"en": "Data"},
    "state": "confirmed",
    "abstract": "How we build pipelines.",
    "duration": 45,
    "resources": [{"resource": "/media/slides.pdf", "description": "Slides"}],
    "answers": [
      {
        "question": {"id": 1, "question": {"en": "Abstract as a tweet / toot"}},
        "answer": "Pipelines, but nice.",
        "answer_file": null,
        "submission": "ABC001",
        "person": null
      },
      {
        "question": {"id": 2, "question": {"en": "My presentation can be delivered"}},
        "answer": "in-person only",
        "answer_file": null,
        "submission": "ABC001",
        "person": null
      },
      {
        "question": {"id": 3, "question": {"en": "Expected audience expertise"}},
        "answer": "Advanced",
        "answer_file": null,
        "submission": "ABC001",
        "person": null
      }
    ],
    "slot": {
      "room": {"en": "Forum Hall"},
      "start": "2026-07-15T10:00:00+02:00",
      "end": "2026-07-15T10:45:00+02:00"
    }
  },
  {
    "code": "ABC002",
    "title": "Building Pipelines",
    "speakers": [{"code": "SPK002", "name": "Sam Byrne"}],
    "submission_type": "Talk",
    "track": null,
    "state": "accepted",
    "abstract": "",
    "duration": "45",
    "resources": [],
    "answers": [],
    "slot": {
      "room": {"en": "South Hall 2A"},
      "start": "2026-07-15T10:00:00+02:00",
      "end": "2026-07-15T10:45:00+02:00"
    }
  },
  {
    "code": "REJ001",
    "title": "Not This Year",
    "speakers": [{"code": "SPK003", "name": "Alex Crow"}],
    "submission_type": "Talk",
    "track": null,
    "state": "rejected",
    "abstract": "",
    "duration": 45,
    "resources": [],
    "answers": [],
    "slot": null
  },
  {
    "code": "UNS001",
    "title": "Lightning Talks",
    "speakers": [],
    "submission_type": "Talk",
    "track": null,
    "state": "confirmed",
    "abstract": "",
    "duration": 30,
    "resources": [],
    "answers": [],
    "slot": null
  }
]`

const speakersFixture = `[
  {
    "code": "SPK002",
    "name": "Sam Byrne",
    "biography": null,
    "avatar": "https://example.com/sam.png",
    "submissions": ["ABC002"],
    "answers": []
  },
  {
    "code": "SPK001",
    "name": "Jordan Lee",
    "biography": "Data engineer.",
    "avatar": "https://example.com/jordan.png",
    "submissions": ["REJ001", "ABC001"],
    "answers": [
      {
        "question": {"id": 10, "question": {"en": "Company / Organization / Educational Institution"}},
        "answer": "ACME Corp",
        "answer_file": null,
        "submission": null,
        "person": "SPK001"
      },
      {
        "question": {"id": 11, "question": {"en": "Social (X/Twitter)"}},
        "answer": "@jordanlee",
        "answer_file": null,
        "submission": null,
        "person": "SPK001"
      }
    ]
  },
  {
    "code": "SPK003",
    "name": "Alex Crow",
    "biography": null,
    "avatar": "https://example.com/alex.png",
    "submissions": ["REJ001"],
    "answers": []
  }
]`

const scheduleFixture = `{
  "slots": [],
  "breaks": [
    {
      "slot": {
        "room": {"en": "Forum Hall"},
        "start": "2026-07-15T11:00:00+02:00",
        "end": "2026-07-15T11:30:00+02:00"
      },
      "description": {"en": "Coffee Break"}
    },
    {
      "slot": {
        "room": {"en": "South Hall 2A"},
        "start": "2026-07-15T11:00:00+02:00",
        "end": "2026-07-15T11:30:00+02:00"
      },
      "description": {"en": "Coffee Break"}
    }
  ]
}`

const youtubeFixture = `[
  {"submission": "ABC001", "youtube_link": "https://youtu.be/abc123"}
]`

func seededStore() *fakeDataStore {
	store := newFakeDataStore()
	store.raw[domain.ResourceSubmissions] = []byte(submissionsFixture)
	store.raw[domain.ResourceSpeakers] = []byte(speakersFixture)
	store.raw[domain.ResourceSchedules] = []byte(scheduleFixture)
	store.raw[domain.ResourceYoutube] = []byte(youtubeFixture)
	return store
}

func TestTransformService_Run(t *testing.T) {
	store := seededStore()
	svc := NewTransformService(store, nil, nil, "democon-2026", "http://localhost:3000", testLogger())

	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Sessions, "rejected submissions are not published")
	assert.Equal(t, 2, report.Speakers, "speakers without publishable sessions are dropped")
	assert.Equal(t, 1, report.ScheduleDays)
	assert.Equal(t, map[string][]string{
		"building-pipelines": {"ABC001", "ABC002"},
	}, report.DuplicateSessionSlugs)
	assert.Equal(t, map[string][]string{
		"Building Pipelines": {"ABC001", "ABC002"},
	}, report.DuplicateTitles)
	assert.Empty(t, report.DuplicateSpeakerSlugs)

	sessions, ok := store.savedJSON[domain.PublicSessions].(map[string]*domain.Session)
	require.True(t, ok)
	require.Len(t, sessions, 3)

	first := sessions["ABC001"]
	require.NotNil(t, first)
	assert.Equal(t, "building-pipelines", first.Slug, "equal starts fall back to code order")
	assert.Equal(t, "Talk", first.SessionType)
	require.NotNil(t, first.Track)
	assert.Equal(t, "Data", *first.Track)
	assert.Equal(t, "45", first.Duration)
	assert.Equal(t, "Pipelines, but nice.", first.Tweet)
	assert.Equal(t, "in-person", first.Delivery)
	assert.Equal(t, "advanced", first.Level)
	assert.Equal(t, []string{"SPK001"}, first.Speakers)
	require.Len(t, first.Resources, 1)
	assert.Equal(t, "http://localhost:3000/session/building-pipelines", first.WebsiteURL)
	require.NotNil(t, first.Room)
	assert.Equal(t, "Forum Hall", *first.Room)
	assert.Equal(t, []string{"ABC002"}, first.InParallel)
	assert.Empty(t, first.After)
	assert.Nil(t, first.Next)
	require.NotNil(t, first.YoutubeURL)
	assert.Equal(t, "https://youtu.be/abc123", *first.YoutubeURL)

	second := sessions["ABC002"]
	require.NotNil(t, second)
	assert.Equal(t, "building-pipelines-1", second.Slug)
	assert.Nil(t, second.Track)
	assert.Nil(t, second.Resources, "no resources serializes as null")
	assert.Equal(t, []string{"ABC001"}, second.InParallel)
	assert.Nil(t, second.YoutubeURL)

	unscheduled := sessions["UNS001"]
	require.NotNil(t, unscheduled)
	assert.Nil(t, unscheduled.Room)
	assert.Nil(t, unscheduled.Start)
	assert.Nil(t, unscheduled.InParallel, "untimed sessions keep null relationships")
	assert.Nil(t, unscheduled.Next)

	publishedSpeakers, ok := store.savedJSON[domain.PublicSpeakers].(map[string]*domain.Speaker)
	require.True(t, ok)
	require.Len(t, publishedSpeakers, 2)
	assert.NotContains(t, publishedSpeakers, "SPK003")

	jordan := publishedSpeakers["SPK001"]
	require.NotNil(t, jordan)
	assert.Equal(t, "jordan-lee", jordan.Slug)
	assert.Equal(t, []string{"ABC001"}, jordan.Submissions, "submissions restricted to publishable")
	require.NotNil(t, jordan.Affiliation)
	assert.Equal(t, "ACME Corp", *jordan.Affiliation)
	require.NotNil(t, jordan.TwitterURL)
	assert.Equal(t, "https://x.com/jordanlee", *jordan.TwitterURL)
	assert.Nil(t, jordan.MastodonURL)
	assert.Equal(t, "http://localhost:3000/speaker/jordan-lee", jordan.WebsiteURL)

	schedule, ok := store.savedJSON[domain.PublicSchedule].(*domain.Schedule)
	require.True(t, ok)
	require.Contains(t, schedule.Days, "2026-07-15")
	day := schedule.Days["2026-07-15"]
	assert.Equal(t, []domain.Room{domain.RoomForumHall, domain.RoomSouthHall2A}, day.Rooms)
	require.Len(t, day.Events, 3, "two talks and one merged break")

	calendar := store.savedRaw[domain.PublicCalendar]
	require.NotEmpty(t, calendar)
	assert.Contains(t, string(calendar), "BEGIN:VCALENDAR")
	assert.Contains(t, string(calendar), "UID:ABC001-1@democon-2026")
}

func TestTransformService_Run_SlugsIgnoreRawFileOrder(t *testing.T) {
	store := seededStore()

	var items []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(submissionsFixture), &items))
	slices.Reverse(items)
	reversed, err := json.Marshal(items)
	require.NoError(t, err)
	store.raw[domain.ResourceSubmissions] = reversed

	svc := NewTransformService(store, nil, nil, "democon-2026", "http://localhost:3000", testLogger())
	_, err = svc.Run(context.Background())
	require.NoError(t, err)

	sessions := store.savedJSON[domain.PublicSessions].(map[string]*domain.Session)
	assert.Equal(t, "building-pipelines", sessions["ABC001"].Slug,
		"the start-then-code sort decides slugs, not download order")
	assert.Equal(t, "building-pipelines-1", sessions["ABC002"].Slug)
}

func TestTransformService_Run_WithoutScheduleDocument(t *testing.T) {
	store := seededStore()
	delete(store.raw, domain.ResourceSchedules)
	svc := NewTransformService(store, nil, nil, "democon-2026", "http://localhost:3000", testLogger())

	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.ScheduleDays)
	assert.Contains(t, store.savedJSON, domain.PublicSessions)
	assert.Contains(t, store.savedJSON, domain.PublicSpeakers)
	assert.NotContains(t, store.savedJSON, domain.PublicSchedule)
	assert.NotContains(t, store.savedRaw, domain.PublicCalendar)
}

func TestTransformService_Run_WithoutYoutubeMapping(t *testing.T) {
	store := seededStore()
	delete(store.raw, domain.ResourceYoutube)
	svc := NewTransformService(store, nil, nil, "democon-2026", "http://localhost:3000", testLogger())

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	sessions := store.savedJSON[domain.PublicSessions].(map[string]*domain.Session)
	assert.Nil(t, sessions["ABC001"].YoutubeURL)
}

func TestTransformService_Run_ArchivesPublication(t *testing.T) {
	store := seededStore()
	archive := &fakeArchive{}
	svc := NewTransformService(store, archive, nil, "democon-2026", "http://localhost:3000", testLogger())

	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, archive.publications, 1)
	pub := archive.publications[0]
	assert.Equal(t, "democon-2026", pub.Event)
	assert.Equal(t, report.Sessions, pub.Sessions)
	assert.Equal(t, report.Speakers, pub.Speakers)
	assert.Equal(t, report.ScheduleDays, pub.ScheduleDays)
	assert.Equal(t, 1, pub.DuplicateSlugs)
	assert.Equal(t, report.FinishedAt, pub.PublishedAt)
}

func TestTransformService_Run_ReportFailureIsNotFatal(t *testing.T) {
	store := seededStore()
	reporter := &fakeReporter{err: errors.New("smtp down")}
	svc := NewTransformService(store, nil, reporter, "democon-2026", "http://localhost:3000", testLogger())

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, reporter.reports, 1)
	assert.Equal(t, report, reporter.reports[0])
}

func TestTransformService_Run_MissingSubmissions(t *testing.T) {
	store := newFakeDataStore()
	svc := NewTransformService(store, nil, nil, "democon-2026", "http://localhost:3000", testLogger())

	_, err := svc.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
