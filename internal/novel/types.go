// Package novel defines the data model shared by the project and series
// orchestrators: projects, chapters, characters, series, world bibles and
// the derived analytics computed over them.
package novel

import (
	"strings"
	"time"
)

// ProjectStatus is the coarse authoring state of a project. It is set by the
// caller, not derived from task outcomes.
type ProjectStatus string

const (
	ProjectPlanning ProjectStatus = "planning"
	ProjectWriting  ProjectStatus = "writing"
	ProjectEditing  ProjectStatus = "editing"
	ProjectComplete ProjectStatus = "complete"
)

// WorkType distinguishes fiction from nonfiction projects and series.
type WorkType string

const (
	Fiction    WorkType = "fiction"
	Nonfiction WorkType = "nonfiction"
)

// Project is a single writing project (standalone novel or one book of a
// series). CurrentWordCount is derived: it always equals the sum of the
// chapters' word counts and is recomputed after every chapter mutation.
type Project struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Genre            string        `json:"genre"`
	Type             WorkType      `json:"type"`
	TargetWordCount  int           `json:"target_word_count"`
	CurrentWordCount int           `json:"current_word_count"`
	Status           ProjectStatus `json:"status"`
	Chapters         []Chapter     `json:"chapters"`
	Outline          string        `json:"outline"`
	Characters       []Character   `json:"characters"`
	Settings         []Setting     `json:"settings"`
	Themes           []string      `json:"themes"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// RecomputeWordCount refreshes the derived CurrentWordCount from the
// chapters. Call after any chapter mutation.
func (p *Project) RecomputeWordCount() {
	total := 0
	for _, ch := range p.Chapters {
		total += ch.WordCount
	}
	p.CurrentWordCount = total
}

// UpsertChapter replaces the chapter with a matching id, or appends when no
// chapter has that id. Chapters are unique by id; Order is presentation
// sequence and is not required to be contiguous.
func (p *Project) UpsertChapter(ch Chapter) {
	for i := range p.Chapters {
		if p.Chapters[i].ID == ch.ID {
			p.Chapters[i] = ch
			return
		}
	}
	p.Chapters = append(p.Chapters, ch)
}

// UpsertCharacter replaces the character with a matching id, or appends.
func (p *Project) UpsertCharacter(c Character) {
	for i := range p.Characters {
		if p.Characters[i].ID == c.ID {
			p.Characters[i] = c
			return
		}
	}
	p.Characters = append(p.Characters, c)
}

// ChaptersBefore returns the chapters whose Order is strictly less than
// order. This is the narrative context handed to the generator when writing
// a chapter: the prefix of the story as ordered, not as inserted.
func (p *Project) ChaptersBefore(order int) []Chapter {
	var prior []Chapter
	for _, ch := range p.Chapters {
		if ch.Order < order {
			prior = append(prior, ch)
		}
	}
	return prior
}

// ChapterStatus is the lifecycle of an individual chapter.
type ChapterStatus string

const (
	ChapterPlanned  ChapterStatus = "planned"
	ChapterWriting  ChapterStatus = "writing"
	ChapterComplete ChapterStatus = "complete"
)

// Chapter is one chapter of a project. WordCount is derived from Content by
// whitespace tokenization and is never trusted from input.
type Chapter struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	WordCount int           `json:"word_count"`
	Status    ChapterStatus `json:"status"`
	Summary   string        `json:"summary"`
	Order     int           `json:"order"`
}

// Character is a free-text character profile attached to a project.
type Character struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Role        string `json:"role"`
	Personality string `json:"personality"`
	Background  string `json:"background"`
	Goals       string `json:"goals"`
	Conflicts   string `json:"conflicts"`
}

// Setting is a story location or timeframe attached to a project.
type Setting struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Timeframe   string `json:"timeframe"`
	Importance  string `json:"importance"`
}

// WritingSettings are caller-supplied generation options. They are passed
// through opaquely to the content generator; the engine validates presence
// and type only, never semantic effect.
type WritingSettings struct {
	Model        string  `json:"model" validate:"required"`
	Temperature  float64 `json:"temperature" validate:"min=0,max=1"`
	MaxTokens    int     `json:"max_tokens" validate:"min=1"`
	WritingStyle string  `json:"writing_style"`
	Tone         string  `json:"tone"`
	PointOfView  string  `json:"point_of_view" validate:"omitempty,oneof=1st 2nd 3rd-limited 3rd-omniscient"`
}

// WritingProgress is a computed snapshot of a project's authoring progress.
type WritingProgress struct {
	ProjectID           string    `json:"project_id"`
	TotalWords          int       `json:"total_words"`
	WordsToday          int       `json:"words_today"`
	ChaptersCompleted   int       `json:"chapters_completed"`
	TotalChapters       int       `json:"total_chapters"`
	EstimatedCompletion time.Time `json:"estimated_completion"`
	WritingStreak       int       `json:"writing_streak"`
}

// Translation records one translation pass over a piece of project content.
type Translation struct {
	ID                string    `json:"id"`
	ProjectID         string    `json:"project_id"`
	SourceLanguage    string    `json:"source_language"`
	TargetLanguage    string    `json:"target_language"`
	Content           string    `json:"content"`
	TranslatedContent string    `json:"translated_content"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

// CountWords counts non-empty whitespace-separated tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
