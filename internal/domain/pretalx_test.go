package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizedString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain string", input: `"Talk"`, want: "Talk"},
		{name: "localization object", input: `{"en": "Forum Hall"}`, want: "Forum Hall"},
		{name: "null", input: `null`, want: ""},
		{name: "object without en", input: `{"de": "Vortrag"}`, wantErr: ErrMissingLocale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l LocalizedString
			err := json.Unmarshal([]byte(tt.input), &l)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(l))
		})
	}
}

func TestNumericString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "number", input: `45`, want: "45"},
		{name: "string", input: `"45"`, want: "45"},
		{name: "null", input: `null`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n NumericString
			require.NoError(t, json.Unmarshal([]byte(tt.input), &n))
			assert.Equal(t, tt.want, string(n))
		})
	}
}

func TestSpeakerCodes_UnmarshalJSON_SortsCodes(t *testing.T) {
	var codes SpeakerCodes
	input := `[{"code": "ZZZZZZ", "name": "Z"}, {"code": "AAAAAA", "name": "A"}]`
	require.NoError(t, json.Unmarshal([]byte(input), &codes))
	assert.Equal(t, SpeakerCodes{"AAAAAA", "ZZZZZZ"}, codes)
}

func TestPretalxSubmission_Unmarshal(t *testing.T) {
	input := `{
		"code": "ABCDEF",
		"title": "Writing Pipelines",
		"speakers": [{"code": "SPK002", "name": "B"}, {"code": "SPK001", "name": "A"}],
		"submission_type": {"en": "Talk"},
		"track": {"en": "Data"},
		"state": "confirmed",
		"abstract": "All about pipelines.",
		"duration": 45,
		"resources": [{"resource": "/media/slides.pdf", "description": "Slides"}],
		"answers": [
			{
				"question": {"id": 1, "question": {"en": "Expected audience expertise"}},
				"answer": "Intermediate",
				"answer_file": null,
				"submission": "ABCDEF",
				"person": null
			}
		],
		"slot": {
			"room": {"en": "Forum Hall"},
			"start": "2026-07-15T09:00:00+02:00",
			"end": "2026-07-15T09:45:00+02:00"
		}
	}`

	var sub PretalxSubmission
	require.NoError(t, json.Unmarshal([]byte(input), &sub))

	assert.Equal(t, "ABCDEF", sub.Code)
	assert.Equal(t, SpeakerCodes{"SPK001", "SPK002"}, sub.Speakers)
	assert.Equal(t, "Talk", string(sub.SubmissionType))
	assert.Equal(t, "Data", string(sub.Track))
	assert.Equal(t, "45", string(sub.Duration))
	assert.True(t, sub.IsPublishable())
	require.Len(t, sub.Answers, 1)
	assert.Equal(t, QuestionLevel, sub.Answers[0].QuestionText())
	assert.Equal(t, "Intermediate", sub.Answers[0].Answer)
	require.NotNil(t, sub.Slot)
	assert.Equal(t, "Forum Hall", string(sub.Slot.Room))
	require.NotNil(t, sub.Slot.Start)
	assert.Equal(t, 9, sub.Slot.Start.Hour())
}

func TestPretalxSubmission_IsPublishable(t *testing.T) {
	tests := []struct {
		state SubmissionState
		want  bool
	}{
		{state: StateAccepted, want: true},
		{state: StateConfirmed, want: true},
		{state: StateSubmitted, want: false},
		{state: StateWithdrawn, want: false},
		{state: StateRejected, want: false},
		{state: StateCanceled, want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			sub := PretalxSubmission{State: tt.state}
			assert.Equal(t, tt.want, sub.IsPublishable())
		})
	}
}

func TestPretalxSchedule_Unmarshal(t *testing.T) {
	input := `{
		"slots": [],
		"breaks": [
			{
				"slot": {
					"room": {"en": "Club A"},
					"start": "2026-07-15T10:00:00+02:00",
					"end": "2026-07-15T10:30:00+02:00"
				},
				"description": {"en": "Coffee Break"}
			}
		]
	}`

	var sched PretalxSchedule
	require.NoError(t, json.Unmarshal([]byte(input), &sched))
	require.Len(t, sched.Breaks, 1)
	b := sched.Breaks[0]
	assert.Equal(t, "Coffee Break", string(b.Description))
	assert.Equal(t, "Club A", string(b.Slot.Room))
	require.NotNil(t, b.Slot.End)
	assert.Equal(t, 30*time.Minute, b.Slot.End.Sub(*b.Slot.Start))
}

func TestParseRoom(t *testing.T) {
	room, err := ParseRoom("Forum Hall")
	require.NoError(t, err)
	assert.Equal(t, RoomForumHall, room)

	_, err = ParseRoom("Broom Closet")
	require.ErrorIs(t, err, ErrUnknownRoom)
}

func TestSortRooms_CanonicalOrder(t *testing.T) {
	rooms := []Room{RoomClubA, RoomForumHall, RoomTerrace2A, RoomNorthHall}
	SortRooms(rooms)
	assert.Equal(t, []Room{RoomForumHall, RoomNorthHall, RoomTerrace2A, RoomClubA}, rooms)
}

func TestClassifyKind(t *testing.T) {
	tests := []struct {
		submissionType string
		want           SessionKind
	}{
		{submissionType: "Talk", want: KindTalk},
		{submissionType: "Talk (long session)", want: KindTalk},
		{submissionType: "Tutorial", want: KindTutorial},
		{submissionType: "Hands-on Tutorial", want: KindTutorial},
		{submissionType: "Conference Workshop", want: KindWorkshop},
		{submissionType: "Keynote", want: KindKeynote},
		{submissionType: "Announcements", want: KindAnnouncement},
		{submissionType: "keynote", want: KindTalk},
	}

	for _, tt := range tests {
		t.Run(tt.submissionType, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyKind(tt.submissionType))
		})
	}
}

func TestSessionKind_SlotCount(t *testing.T) {
	assert.Equal(t, 1, KindTalk.SlotCount())
	assert.Equal(t, 1, KindKeynote.SlotCount())
	assert.Equal(t, 1, KindAnnouncement.SlotCount())
	assert.Equal(t, 2, KindTutorial.SlotCount())
	assert.Equal(t, 4, KindWorkshop.SlotCount())
}
