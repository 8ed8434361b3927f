package model

import "time"

// QuestionKind is the canonical question type vocabulary. Raw surveys may
// carry looser aliases ("text", "essay", "radio"...); the survey package maps
// those onto this set during normalization.
type QuestionKind string

const (
	KindShortText    QuestionKind = "short_text"
	KindLongText     QuestionKind = "long_text"
	KindSingleChoice QuestionKind = "multiple_choice" // single-select, radio-style
	KindMultiChoice  QuestionKind = "checkbox"
	KindRating       QuestionKind = "rating"
)

type Audience string

const (
	AudienceAll      Audience = "all"
	AudienceStudents Audience = "students"
	AudienceAlumni   Audience = "alumni"
)

type SurveyStatus string

const (
	SurveyDraft  SurveyStatus = "draft"
	SurveyActive SurveyStatus = "active"
)

type Survey struct {
	ID          string       `json:"_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Audience    Audience     `json:"audience,omitempty"`
	Status      SurveyStatus `json:"status,omitempty"`
	Questions   []Question   `json:"questions"`
	CreatedAt   time.Time    `json:"createdAt,omitempty"`
	UpdatedAt   time.Time    `json:"updatedAt,omitempty"`
}

// Question is the wire shape as the server sends it: fields may be missing or
// loosely typed. Run it through survey.Normalize before rendering or
// validating anything.
type Question struct {
	ID       string       `json:"_id,omitempty"`
	AltID    string       `json:"id,omitempty"`
	Key      string       `json:"key,omitempty"`
	Text     string       `json:"text,omitempty"`
	Label    string       `json:"label,omitempty"`
	Type     QuestionKind `json:"type,omitempty"`
	Order    float64      `json:"order,omitempty"`
	Options  []string     `json:"options,omitempty"`
	Required bool         `json:"required,omitempty"`
	ScaleMax int          `json:"scaleMax,omitempty"`
}

// SurveySummary is the stub returned by the eligibility endpoint. It is not
// the full Survey record: it has no questions.
type SurveySummary struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ResponseAnswer is one entry of a submitted response. Value is a string,
// a list of strings or an integer depending on the question kind; the survey
// package's Value type marshals into the right shape.
type ResponseAnswer struct {
	QuestionID string       `json:"questionId"`
	Type       QuestionKind `json:"type"`
	Label      string       `json:"label"`
	Value      any          `json:"value"`
}

type SubmitRequest struct {
	Answers []ResponseAnswer `json:"answers"`
}

// SurveyResponse is a stored response as returned by the responses endpoint.
type SurveyResponse struct {
	ID        string           `json:"_id"`
	SurveyID  string           `json:"survey"`
	User      *User            `json:"user,omitempty"`
	Answers   []ResponseAnswer `json:"answers"`
	CreatedAt time.Time        `json:"createdAt,omitempty"`
}
