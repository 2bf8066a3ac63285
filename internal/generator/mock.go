package generator

import (
	"context"
	"fmt"

	"github.com/vampirenirmal/novelagent/internal/novel"
)

// Mock provides canned generator responses for tests and the demo command.
// Any function field left nil falls back to a fixed response.
type Mock struct {
	OutlineFunc       func(ctx context.Context, project novel.Project, settings novel.WritingSettings) (string, error)
	SeriesOutlineFunc func(ctx context.Context, series novel.BookSeries, settings novel.WritingSettings) (string, error)
	ChapterFunc       func(ctx context.Context, chapter novel.Chapter, project novel.Project, prior []novel.Chapter, settings novel.WritingSettings) (string, error)
	CharacterFunc     func(ctx context.Context, character novel.Character, project novel.Project, settings novel.WritingSettings) (novel.Character, error)
	ArcFunc           func(ctx context.Context, character novel.SeriesCharacter, series novel.BookSeries, bookNumber int, settings novel.WritingSettings) (ArcDraft, error)
	EnhanceFunc       func(ctx context.Context, content string, kind Enhancement, settings novel.WritingSettings) (string, error)
	TranslateFunc     func(ctx context.Context, text, targetLanguage, sourceLanguage string) (string, error)
	ExpandFunc        func(ctx context.Context, series novel.BookSeries, category string, settings novel.WritingSettings) (WorldExpansion, error)
	TransitionFunc    func(ctx context.Context, series novel.BookSeries, fromBook, toBook int, settings novel.WritingSettings) (novel.BookTransitionPlan, error)
}

// NewMock creates a mock generator with default canned responses.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GenerateOutline(ctx context.Context, project novel.Project, settings novel.WritingSettings) (string, error) {
	if m.OutlineFunc != nil {
		return m.OutlineFunc(ctx, project, settings)
	}
	return fmt.Sprintf("Act I establishes the world of %s. Act II raises the stakes. Act III resolves the central conflict.", project.Title), nil
}

func (m *Mock) GenerateSeriesOutline(ctx context.Context, series novel.BookSeries, settings novel.WritingSettings) (string, error) {
	if m.SeriesOutlineFunc != nil {
		return m.SeriesOutlineFunc(ctx, series, settings)
	}
	return fmt.Sprintf("The %s series follows an arc across %d books, each escalating the central conflict.", series.Title, series.TotalPlannedBooks), nil
}

func (m *Mock) WriteChapter(ctx context.Context, chapter novel.Chapter, project novel.Project, prior []novel.Chapter, settings novel.WritingSettings) (string, error) {
	if m.ChapterFunc != nil {
		return m.ChapterFunc(ctx, chapter, project, prior, settings)
	}
	return fmt.Sprintf("The morning light crept over the rooftops as chapter %d began in earnest.", chapter.Order), nil
}

func (m *Mock) DevelopCharacter(ctx context.Context, character novel.Character, project novel.Project, settings novel.WritingSettings) (novel.Character, error) {
	if m.CharacterFunc != nil {
		return m.CharacterFunc(ctx, character, project, settings)
	}
	out := character
	out.Personality = "Determined, wry, slow to trust"
	out.Background = "Raised in the borderlands, trained as a cartographer"
	out.Goals = "Map the unmappable interior"
	out.Conflicts = "Loyalty to family against the pull of the unknown"
	return out, nil
}

func (m *Mock) DevelopCharacterArc(ctx context.Context, character novel.SeriesCharacter, series novel.BookSeries, bookNumber int, settings novel.WritingSettings) (ArcDraft, error) {
	if m.ArcFunc != nil {
		return m.ArcFunc(ctx, character, series, bookNumber, settings)
	}
	return ArcDraft{
		Description:    fmt.Sprintf("Development for %s in book %d", character.Name, bookNumber),
		EmotionalState: "Determined but conflicted",
		Goals:          "Achieve personal growth while helping others",
		Conflicts:      "Internal doubts against external challenges",
	}, nil
}

func (m *Mock) EnhanceText(ctx context.Context, content string, kind Enhancement, settings novel.WritingSettings) (string, error) {
	if m.EnhanceFunc != nil {
		return m.EnhanceFunc(ctx, content, kind, settings)
	}
	return content, nil
}

func (m *Mock) Translate(ctx context.Context, text, targetLanguage, sourceLanguage string) (string, error) {
	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text, targetLanguage, sourceLanguage)
	}
	return fmt.Sprintf("[%s] %s", targetLanguage, text), nil
}

func (m *Mock) ExpandWorldCategory(ctx context.Context, series novel.BookSeries, category string, settings novel.WritingSettings) (WorldExpansion, error) {
	if m.ExpandFunc != nil {
		return m.ExpandFunc(ctx, series, category, settings)
	}
	return WorldExpansion{
		Category: category,
		Elements: []novel.WorldElement{
			{ID: fmt.Sprintf("mock-%s-1", category), Name: "Generated " + category + " entry", Description: "A new element of the invented world."},
		},
	}, nil
}

func (m *Mock) PlanTransition(ctx context.Context, series novel.BookSeries, fromBook, toBook int, settings novel.WritingSettings) (novel.BookTransitionPlan, error) {
	if m.TransitionFunc != nil {
		return m.TransitionFunc(ctx, series, fromBook, toBook, settings)
	}
	return novel.BookTransitionPlan{
		FromBook:             fromBook,
		ToBook:               toBook,
		Cliffhangers:         []string{"A revelation about the protagonist's past", "A new threat emerges"},
		CharacterTransitions: []string{"Relationship dynamics shift"},
		PlotAdvancement:      []string{"The previous conflict escalates"},
		WorldProgression:     []string{"The political landscape changes"},
		ContinuityChecks:     []string{"Verify character motivations", "Check timeline consistency"},
	}, nil
}
