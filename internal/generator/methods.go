package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vampirenirmal/novelagent/internal/novel"
)

// GenerateOutline produces a full outline for a single project.
func (c *Client) GenerateOutline(ctx context.Context, project novel.Project, settings novel.WritingSettings) (string, error) {
	return c.complete(ctx, request{
		system:   outlineSystem,
		prompt:   outlinePrompt(project, settings),
		settings: settings,
	})
}

// GenerateSeriesOutline produces a series-wide outline in one invocation.
func (c *Client) GenerateSeriesOutline(ctx context.Context, series novel.BookSeries, settings novel.WritingSettings) (string, error) {
	return c.complete(ctx, request{
		system:   outlineSystem,
		prompt:   seriesOutlinePrompt(series, settings),
		settings: settings,
	})
}

// WriteChapter produces prose for one chapter given the story-so-far
// context.
func (c *Client) WriteChapter(ctx context.Context, chapter novel.Chapter, project novel.Project, prior []novel.Chapter, settings novel.WritingSettings) (string, error) {
	return c.complete(ctx, request{
		system:   chapterSystem(project.Type),
		prompt:   chapterPrompt(chapter, project, prior, settings),
		settings: settings,
	})
}

// DevelopCharacter fills out a character profile. The sketch's id and any
// fields the model leaves blank are preserved.
func (c *Client) DevelopCharacter(ctx context.Context, character novel.Character, project novel.Project, settings novel.WritingSettings) (novel.Character, error) {
	raw, err := c.complete(ctx, request{
		system:    characterSystem,
		prompt:    characterPrompt(character, project),
		settings:  settings,
		forceJSON: true,
	})
	if err != nil {
		return novel.Character{}, err
	}

	var parsed struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Role        string `json:"role"`
		Personality string `json:"personality"`
		Background  string `json:"background"`
		Goals       string `json:"goals"`
		Conflicts   string `json:"conflicts"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		return novel.Character{}, fmt.Errorf("parsing character response: %w", err)
	}

	out := character
	if parsed.Name != "" {
		out.Name = parsed.Name
	}
	if parsed.Description != "" {
		out.Description = parsed.Description
	}
	if parsed.Role != "" {
		out.Role = parsed.Role
	}
	out.Personality = parsed.Personality
	out.Background = parsed.Background
	out.Goals = parsed.Goals
	out.Conflicts = parsed.Conflicts
	return out, nil
}

// DevelopCharacterArc drafts one book's worth of a series character's arc.
func (c *Client) DevelopCharacterArc(ctx context.Context, character novel.SeriesCharacter, series novel.BookSeries, bookNumber int, settings novel.WritingSettings) (ArcDraft, error) {
	raw, err := c.complete(ctx, request{
		system:    characterSystem,
		prompt:    characterArcPrompt(character, series, bookNumber),
		settings:  settings,
		forceJSON: true,
	})
	if err != nil {
		return ArcDraft{}, err
	}

	var draft ArcDraft
	if err := json.Unmarshal([]byte(stripFences(raw)), &draft); err != nil {
		return ArcDraft{}, fmt.Errorf("parsing arc response: %w", err)
	}
	return draft, nil
}

// EnhanceText applies one enhancement pass. Stateless: no task, no
// persistence.
func (c *Client) EnhanceText(ctx context.Context, content string, kind Enhancement, settings novel.WritingSettings) (string, error) {
	return c.complete(ctx, request{
		system:   editorSystem,
		prompt:   enhancePrompt(content, kind),
		settings: settings,
	})
}

// Translate renders text into the target language, preserving literary
// style.
func (c *Client) Translate(ctx context.Context, text, targetLanguage, sourceLanguage string) (string, error) {
	return c.complete(ctx, request{
		system:   translateSystem,
		prompt:   translatePrompt(text, targetLanguage, sourceLanguage),
		settings: novel.WritingSettings{Temperature: 0.3, MaxTokens: 4000},
	})
}

// ExpandWorldCategory generates new world-bible entries for one category.
func (c *Client) ExpandWorldCategory(ctx context.Context, series novel.BookSeries, category string, settings novel.WritingSettings) (WorldExpansion, error) {
	raw, err := c.complete(ctx, request{
		system:    outlineSystem,
		prompt:    worldBiblePrompt(category, series),
		settings:  settings,
		forceJSON: true,
	})
	if err != nil {
		return WorldExpansion{}, err
	}

	expansion := WorldExpansion{Category: category}
	if category == "timeline" {
		var parsed struct {
			Events []novel.TimelineEvent `json:"events"`
		}
		if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
			return WorldExpansion{}, fmt.Errorf("parsing timeline expansion: %w", err)
		}
		for i := range parsed.Events {
			if parsed.Events[i].ID == "" {
				parsed.Events[i].ID = uuid.New().String()
			}
		}
		expansion.Events = parsed.Events
		return expansion, nil
	}

	var parsed struct {
		Elements []novel.WorldElement `json:"elements"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		return WorldExpansion{}, fmt.Errorf("parsing %s expansion: %w", category, err)
	}
	for i := range parsed.Elements {
		if parsed.Elements[i].ID == "" {
			parsed.Elements[i].ID = uuid.New().String()
		}
	}
	expansion.Elements = parsed.Elements
	return expansion, nil
}

// PlanTransition drafts advisory guidance for moving between two books.
func (c *Client) PlanTransition(ctx context.Context, series novel.BookSeries, fromBook, toBook int, settings novel.WritingSettings) (novel.BookTransitionPlan, error) {
	raw, err := c.complete(ctx, request{
		system:    outlineSystem,
		prompt:    transitionPrompt(series, fromBook, toBook),
		settings:  settings,
		forceJSON: true,
	})
	if err != nil {
		return novel.BookTransitionPlan{}, err
	}

	var plan novel.BookTransitionPlan
	if err := json.Unmarshal([]byte(stripFences(raw)), &plan); err != nil {
		return novel.BookTransitionPlan{}, fmt.Errorf("parsing transition plan: %w", err)
	}
	plan.FromBook = fromBook
	plan.ToBook = toBook
	return plan, nil
}

// stripFences removes a markdown code fence wrapper some models insist on
// adding around JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
