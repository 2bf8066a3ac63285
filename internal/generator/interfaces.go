// Package generator is the content-generation collaborator: given a project
// or series context it produces narrative text through an external LLM API.
// All prompt construction lives here; the orchestrators only see the typed
// domain methods below.
package generator

import (
	"context"

	"github.com/vampirenirmal/novelagent/internal/novel"
)

// Enhancement selects the instruction template for a text enhancement pass.
type Enhancement string

const (
	EnhanceGrammar  Enhancement = "grammar"
	EnhanceStyle    Enhancement = "style"
	EnhanceFlow     Enhancement = "flow"
	EnhanceDialogue Enhancement = "dialogue"
)

// ArcDraft is the generated material for one book of a character's arc.
type ArcDraft struct {
	Description    string `json:"description"`
	EmotionalState string `json:"emotional_state"`
	Goals          string `json:"goals"`
	Conflicts      string `json:"conflicts"`
}

// WorldExpansion holds new world-bible entries for one category. Most
// categories produce elements; the timeline category produces events.
type WorldExpansion struct {
	Category string                `json:"category"`
	Elements []novel.WorldElement  `json:"elements"`
	Events   []novel.TimelineEvent `json:"events"`
}

// ContentGenerator produces narrative text and structured drafts. Settings
// are passed through verbatim; the generator decides nothing about
// persistence or task lifecycle.
type ContentGenerator interface {
	GenerateOutline(ctx context.Context, project novel.Project, settings novel.WritingSettings) (string, error)
	GenerateSeriesOutline(ctx context.Context, series novel.BookSeries, settings novel.WritingSettings) (string, error)
	WriteChapter(ctx context.Context, chapter novel.Chapter, project novel.Project, prior []novel.Chapter, settings novel.WritingSettings) (string, error)
	DevelopCharacter(ctx context.Context, character novel.Character, project novel.Project, settings novel.WritingSettings) (novel.Character, error)
	DevelopCharacterArc(ctx context.Context, character novel.SeriesCharacter, series novel.BookSeries, bookNumber int, settings novel.WritingSettings) (ArcDraft, error)
	EnhanceText(ctx context.Context, content string, kind Enhancement, settings novel.WritingSettings) (string, error)
	Translate(ctx context.Context, text, targetLanguage, sourceLanguage string) (string, error)
	ExpandWorldCategory(ctx context.Context, series novel.BookSeries, category string, settings novel.WritingSettings) (WorldExpansion, error)
	PlanTransition(ctx context.Context, series novel.BookSeries, fromBook, toBook int, settings novel.WritingSettings) (novel.BookTransitionPlan, error)
}
