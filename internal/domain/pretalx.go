package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

// Answer question texts as configured in the Pretalx event. Extraction
// matches on the English question text, not on question IDs, because IDs
// change between events while the wording is kept.
const (
	QuestionAffiliation = "Company / Organization / Educational Institution"
	QuestionHomepage    = "Social (Homepage)"
	QuestionTwitter     = "Social (X/Twitter)"
	QuestionMastodon    = "Social (Mastodon)"
	QuestionLinkedIn    = "Social (LinkedIn)"
	QuestionGitx        = "Social (Github/Gitlab)"

	QuestionTweet    = "Abstract as a tweet / toot"
	QuestionDelivery = "My presentation can be delivered"
	QuestionLevel    = "Expected audience expertise"
)

// ErrMissingLocale is returned when a localized field carries no English
// value.
var ErrMissingLocale = errors.New("missing english localization")

// LocalizedString decodes Pretalx fields that arrive either as a plain
// string or as a localization object. Only the English value is kept; an
// object without one is an error so that bad payloads fail at the edge.
// JSON null decodes to the empty string.
type LocalizedString string

func (l *LocalizedString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = LocalizedString(s)
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("localized value is neither string nor object: %w", err)
	}
	v, ok := m["en"]
	if !ok {
		return fmt.Errorf("%w in %v", ErrMissingLocale, m)
	}
	*l = LocalizedString(v)
	return nil
}

// NumericString decodes a field that arrives either as a JSON number or as
// a string, keeping the string form. Pretalx sends durations as minute
// integers but the published dataset carries them as strings.
type NumericString string

func (n *NumericString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = NumericString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("value is neither string nor number: %w", err)
	}
	*n = NumericString(num.String())
	return nil
}

// SpeakerCodes decodes the embedded speaker objects of a submission down to
// their codes, sorted ascending. The full speaker details come from the
// speakers resource instead.
type SpeakerCodes []string

func (s *SpeakerCodes) UnmarshalJSON(data []byte) error {
	var refs []struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(data, &refs); err != nil {
		return fmt.Errorf("decode speaker refs: %w", err)
	}
	codes := make([]string, 0, len(refs))
	for _, ref := range refs {
		codes = append(codes, ref.Code)
	}
	slices.Sort(codes)
	*s = codes
	return nil
}

// PretalxQuestion is the question a PretalxAnswer replies to.
type PretalxQuestion struct {
	ID       int             `json:"id"`
	Question LocalizedString `json:"question"`
}

// PretalxAnswer is one answered custom question on a submission or speaker.
type PretalxAnswer struct {
	Question   PretalxQuestion `json:"question"`
	Answer     string          `json:"answer"`
	AnswerFile *string         `json:"answer_file"`
	Submission *string         `json:"submission"`
	Person     *string         `json:"person"`
}

// QuestionText returns the English question text this answer replies to.
func (a PretalxAnswer) QuestionText() string {
	return string(a.Question.Question)
}

// PretalxSlot is the scheduling info attached to a submission or break.
// All fields are optional: an unscheduled submission has a null slot or a
// slot with null members.
type PretalxSlot struct {
	Room  LocalizedString `json:"room"`
	Start *time.Time      `json:"start"`
	End   *time.Time      `json:"end"`
}

// SubmissionState is the review state of a submission.
type SubmissionState string

const (
	StateSubmitted SubmissionState = "submitted"
	StateAccepted  SubmissionState = "accepted"
	StateConfirmed SubmissionState = "confirmed"
	StateWithdrawn SubmissionState = "withdrawn"
	StateRejected  SubmissionState = "rejected"
	StateCanceled  SubmissionState = "canceled"
)

// PretalxSubmission is one raw submission as returned by the API.
type PretalxSubmission struct {
	Code           string            `json:"code"`
	Title          string            `json:"title"`
	Speakers       SpeakerCodes      `json:"speakers"`
	SubmissionType LocalizedString   `json:"submission_type"`
	Track          LocalizedString   `json:"track"`
	State          SubmissionState   `json:"state"`
	Abstract       string            `json:"abstract"`
	Duration       NumericString     `json:"duration"`
	Resources      []SessionResource `json:"resources"`
	Answers        []PretalxAnswer   `json:"answers"`
	Slot           *PretalxSlot      `json:"slot"`
}

// IsPublishable reports whether the submission belongs in the public
// dataset: accepted or confirmed, nothing else.
func (s *PretalxSubmission) IsPublishable() bool {
	return s.State == StateAccepted || s.State == StateConfirmed
}

// PretalxSpeaker is one raw speaker as returned by the API.
type PretalxSpeaker struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Biography   *string         `json:"biography"`
	Avatar      string          `json:"avatar"`
	Submissions []string        `json:"submissions"`
	Answers     []PretalxAnswer `json:"answers"`
}

// PretalxScheduleBreak is one raw per-room break in the schedule document.
type PretalxScheduleBreak struct {
	Slot        PretalxSlot     `json:"slot"`
	Description LocalizedString `json:"description"`
}

// PretalxSchedule is the released schedule document: scheduled submissions
// plus per-room breaks.
type PretalxSchedule struct {
	Slots  []PretalxSubmission    `json:"slots"`
	Breaks []PretalxScheduleBreak `json:"breaks"`
}
