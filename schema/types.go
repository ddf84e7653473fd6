// Package schema holds the shared data model of the resolution pipeline.
package schema

import (
	"encoding/json"
	"fmt"
)

// Intent is the single best-guess purpose of a user query. Exactly one per
// query; classification defaults to IntentGeneral when nothing matches.
type Intent string

const (
	IntentGreeting       Intent = "greeting"
	IntentFarewell       Intent = "farewell"
	IntentConversational Intent = "conversational"
	IntentMathCalc       Intent = "math_calc"
	IntentExercise       Intent = "exercise"
	IntentProgress       Intent = "progress"
	IntentTasks          Intent = "tasks"
	IntentStudyPlan      Intent = "study_plan"
	IntentWeeklyReport   Intent = "weekly_report"
	IntentMemorize       Intent = "memorize"
	IntentCompare        Intent = "compare"
	IntentSummary        Intent = "summary"
	IntentTips           Intent = "tips"
	IntentMotivation     Intent = "motivation"
	IntentOpinion        Intent = "opinion"
	IntentCreative       Intent = "creative"
	IntentExplain        Intent = "explain"
	IntentGeneral        Intent = "general"
)

// Intents lists the closed intent set in classifier priority order.
var Intents = []Intent{
	IntentGreeting, IntentFarewell, IntentConversational, IntentMathCalc,
	IntentExercise, IntentProgress, IntentTasks, IntentStudyPlan,
	IntentWeeklyReport, IntentMemorize, IntentCompare, IntentSummary,
	IntentTips, IntentMotivation, IntentOpinion, IntentCreative,
	IntentExplain, IntentGeneral,
}

// Topic is a subject-matter tag. Unlike Intent a query may carry zero or
// several topics.
type Topic string

const (
	TopicBiology    Topic = "biology"
	TopicChemistry  Topic = "chemistry"
	TopicPhysics    Topic = "physics"
	TopicMath       Topic = "math"
	TopicHistory    Topic = "history"
	TopicGeography  Topic = "geography"
	TopicLiterature Topic = "literature"
	TopicGrammar    Topic = "grammar"
	TopicEnglish    Topic = "english"
	TopicPhilosophy Topic = "philosophy"
	TopicSociology  Topic = "sociology"
	TopicArts       Topic = "arts"
	TopicWriting    Topic = "writing"
	TopicExamPrep   Topic = "exam_prep"
)

// SubjectArea is a coarse grouping of topics used to filter area-specific
// behavior such as practice-question pools.
type SubjectArea string

const (
	AreaNature     SubjectArea = "nature"
	AreaExact      SubjectArea = "exact"
	AreaHumanities SubjectArea = "humanities"
	AreaLanguages  SubjectArea = "languages"
)

// CandidateResult is an unranked snippet supplied by an external search
// collaborator. It is untrusted: any field may be empty.
type CandidateResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	URL     string `json:"url,omitempty"`
}

// ScoredResult pairs a candidate with its computed relevance score.
type ScoredResult struct {
	CandidateResult
	Score int `json:"score"`
}

// OutcomeKind tags the result of a resolution call.
type OutcomeKind int

const (
	// OutcomeAnswered carries a final non-empty answer.
	OutcomeAnswered OutcomeKind = iota
	// OutcomeNeedsSearch asks the caller to fetch external candidates and
	// re-invoke the resolver. Normal control flow, not an error.
	OutcomeNeedsSearch
	// OutcomeFallback carries the fixed last-resort answer text.
	OutcomeFallback
)

// String returns the label used in logs and metrics.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAnswered:
		return "answered"
	case OutcomeNeedsSearch:
		return "needs_search"
	case OutcomeFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// MarshalJSON emits the string label so wire consumers never see the
// internal ordinal.
func (k OutcomeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON accepts the string labels produced by MarshalJSON.
func (k *OutcomeKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "answered":
		*k = OutcomeAnswered
	case "needs_search":
		*k = OutcomeNeedsSearch
	case "fallback":
		*k = OutcomeFallback
	default:
		return fmt.Errorf("unknown outcome kind: %q", s)
	}
	return nil
}

// Outcome is the tagged result of a resolution call. Text is non-empty for
// OutcomeAnswered and OutcomeFallback and empty for OutcomeNeedsSearch.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`
	Text string      `json:"text,omitempty"`
	// Stage names the chain stage that produced the outcome.
	Stage string `json:"stage,omitempty"`
}

// Answered wraps a final answer.
func Answered(text string) Outcome { return Outcome{Kind: OutcomeAnswered, Text: text} }

// NeedsSearch signals the caller to perform a web search and retry.
func NeedsSearch() Outcome { return Outcome{Kind: OutcomeNeedsSearch} }

// Fallback wraps the last-resort answer.
func Fallback(text string) Outcome { return Outcome{Kind: OutcomeFallback, Text: text} }

// Mode is an active teaching mode selected by the caller. ModeNone means
// plain question answering.
type Mode string

const (
	ModeNone       Mode = ""
	ModeExercise   Mode = "exercise"
	ModeSocratic   Mode = "socratic"
	ModeDebate     Mode = "debate"
	ModeBrainstorm Mode = "brainstorm"
)

// StudentContext is the read-only record supplied by the caller for a single
// resolution call. The engine never mutates it.
type StudentContext struct {
	DisplayName   string   `json:"display_name"`
	StreakDays    int      `json:"streak_days"`
	XP            int      `json:"xp"`
	PendingTasks  int      `json:"pending_tasks"`
	OverdueTasks  int      `json:"overdue_tasks"`
	NotesCount    int      `json:"notes_count"`
	WeakSubjects  []string `json:"weak_subjects,omitempty"`
	StrongSubject string   `json:"strong_subject,omitempty"`
	GoalProgress  int      `json:"goal_progress"` // percent toward the weekly goal
	Reminders     []string `json:"reminders,omitempty"`
}
