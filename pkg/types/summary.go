package types

import "time"

// WarningCategory classifies an advisory notice sent to a WarningSink.
type WarningCategory string

// DeprecatedAPI marks notices about deprecated types and functions.
const DeprecatedAPI WarningCategory = "deprecated API"

// WarningSink receives advisory notices from the host process. Warn must
// return promptly; notices never change the caller's result.
type WarningSink interface {
	Warn(category WarningCategory, message string)
}

// WarningSinkFunc adapts a function to WarningSink.
type WarningSinkFunc func(category WarningCategory, message string)

func (f WarningSinkFunc) Warn(category WarningCategory, message string) {
	f(category, message)
}

// studySummaryDeprecation is the notice emitted by NewStudySummary.
const studySummaryDeprecation = "StudySummary is deprecated; read the study name, direction, " +
	"attributes and trials from the study directly"

// StudySummary is a legacy read-only description of a whole study.
//
// Deprecated: read the same information from the study itself.
type StudySummary struct {
	StudyName     string         `json:"study_name"`
	Direction     StudyDirection `json:"direction"`
	BestTrial     *FrozenTrial   `json:"best_trial"`
	UserAttrs     map[string]any `json:"user_attrs"`
	SystemAttrs   map[string]any `json:"system_attrs"`
	NTrials       int            `json:"n_trials"`
	DatetimeStart *time.Time     `json:"datetime_start"`
	StudyID       int            `json:"study_id"`
}

// NewStudySummary builds a StudySummary and sends one DeprecatedAPI notice to
// sink. A nil sink is skipped and a panicking sink is ignored; the summary is
// returned either way. bestTrial is borrowed, not copied.
//
// Deprecated: read the same information from the study itself.
func NewStudySummary(
	sink WarningSink,
	studyName string,
	direction StudyDirection,
	bestTrial *FrozenTrial,
	userAttrs, systemAttrs map[string]any,
	nTrials int,
	datetimeStart *time.Time,
	studyID int,
) *StudySummary {
	notify(sink, DeprecatedAPI, studySummaryDeprecation)

	if userAttrs == nil {
		userAttrs = map[string]any{}
	}
	if systemAttrs == nil {
		systemAttrs = map[string]any{}
	}
	return &StudySummary{
		StudyName:     studyName,
		Direction:     direction,
		BestTrial:     bestTrial,
		UserAttrs:     userAttrs,
		SystemAttrs:   systemAttrs,
		NTrials:       nTrials,
		DatetimeStart: datetimeStart,
		StudyID:       studyID,
	}
}

func notify(sink WarningSink, category WarningCategory, message string) {
	if sink == nil {
		return
	}
	defer func() { _ = recover() }()
	sink.Warn(category, message)
}
