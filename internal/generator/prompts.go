package generator

import (
	"fmt"
	"strings"

	"github.com/vampirenirmal/novelagent/internal/novel"
)

const (
	outlineSystem   = "You are a professional novel writing assistant. Create detailed, engaging outlines that ensure originality and avoid any similarities to existing works."
	characterSystem = "You are a character development specialist. Create rich, complex, and original characters that fit the story world."
	translateSystem = "You are a professional literary translator with expertise in maintaining artistic integrity across languages."
	editorSystem    = "You are a meticulous fiction editor. Improve the text as instructed while preserving the author's voice. Return only the revised text."
)

func chapterSystem(workType novel.WorkType) string {
	return fmt.Sprintf("You are a professional %s writer. Write engaging, original content that maintains consistency with the established narrative. Ensure complete originality and avoid any similarities to existing published works.", workType)
}

func outlinePrompt(p novel.Project, s novel.WritingSettings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed outline for %q, a %s %s targeting %d words.\n\n", p.Title, p.Genre, p.Type, p.TargetWordCount)
	if p.Description != "" {
		fmt.Fprintf(&b, "Premise: %s\n", p.Description)
	}
	if len(p.Themes) > 0 {
		fmt.Fprintf(&b, "Themes: %s\n", strings.Join(p.Themes, ", "))
	}
	writeStyleHints(&b, s)
	b.WriteString("\nStructure the outline by act and chapter, with a one-paragraph summary per chapter.")
	return b.String()
}

func seriesOutlinePrompt(s novel.BookSeries, set novel.WritingSettings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a comprehensive series outline for %q, a %d-book %s series.\n\n", s.Title, s.TotalPlannedBooks, s.Type)
	fmt.Fprintf(&b, "Genre: %s\nDescription: %s\nThemes: %s\n", s.Genre, s.Description, strings.Join(s.OverallThemes, ", "))
	writeStyleHints(&b, set)
	b.WriteString(`
Create:
1. Overall series arc and progression
2. Individual book outlines with unique conflicts and resolutions
3. Character development across the entire series
4. World-building elements and progression
5. Major plot threads that span multiple books
6. Series climax and resolution

Ensure each book can stand alone while contributing to the larger narrative.`)
	return b.String()
}

func chapterPrompt(ch novel.Chapter, p novel.Project, prior []novel.Chapter, s novel.WritingSettings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write chapter %d (%q) of %q, a %s %s.\n\n", ch.Order, ch.Title, p.Title, p.Genre, p.Type)
	if ch.Summary != "" {
		fmt.Fprintf(&b, "Chapter summary: %s\n", ch.Summary)
	}
	if p.Outline != "" {
		fmt.Fprintf(&b, "\nProject outline:\n%s\n", p.Outline)
	}
	if len(prior) > 0 {
		b.WriteString("\nStory so far:\n")
		for _, prev := range prior {
			fmt.Fprintf(&b, "- Chapter %d (%s): %s\n", prev.Order, prev.Title, prev.Summary)
		}
	}
	writeStyleHints(&b, s)
	b.WriteString("\nWrite the full chapter prose. Maintain continuity with the story so far.")
	return b.String()
}

func characterPrompt(c novel.Character, p novel.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Develop the character %q for %q (%s, %s).\n\n", c.Name, p.Title, p.Genre, p.Type)
	if c.Role != "" {
		fmt.Fprintf(&b, "Role: %s\n", c.Role)
	}
	if c.Description != "" {
		fmt.Fprintf(&b, "Starting notes: %s\n", c.Description)
	}
	b.WriteString(`
Respond with a JSON object with these string fields:
"name", "description", "role", "personality", "background", "goals", "conflicts".`)
	return b.String()
}

func characterArcPrompt(c novel.SeriesCharacter, s novel.BookSeries, bookNumber int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Develop the character arc for %s in Book %d of %d in the series %q.\n\n", c.Name, bookNumber, s.TotalPlannedBooks, s.Title)
	fmt.Fprintf(&b, "Character background: %s\n", c.Background)
	fmt.Fprintf(&b, "Overall series themes: %s\n", strings.Join(s.OverallThemes, ", "))
	fmt.Fprintf(&b, "Character role: %s\n", c.Role)
	b.WriteString(`
Focus on:
1. Character's goals and motivations in this book
2. Key conflicts and challenges
3. Character growth and development
4. Relationships with other characters
5. Emotional journey and transformation

Respond with a JSON object with string fields "description", "emotional_state", "goals", "conflicts".`)
	return b.String()
}

func enhancePrompt(content string, kind Enhancement) string {
	var instruction string
	switch kind {
	case EnhanceGrammar:
		instruction = "Correct grammar, punctuation and spelling without altering meaning or voice."
	case EnhanceStyle:
		instruction = "Strengthen word choice and imagery while keeping the author's style recognizable."
	case EnhanceFlow:
		instruction = "Improve sentence rhythm and paragraph transitions so the passage reads smoothly."
	case EnhanceDialogue:
		instruction = "Make the dialogue sound natural and distinct per speaker, keeping every plot beat."
	default:
		instruction = "Lightly polish the text."
	}
	return fmt.Sprintf("%s\n\nText:\n%s", instruction, content)
}

func translatePrompt(text, targetLanguage, sourceLanguage string) string {
	return fmt.Sprintf("Translate the following text from %s to %s. Maintain the literary style, tone, and emotional impact of the original. Ensure cultural nuances are appropriately adapted while preserving the author's voice:\n\n%s",
		sourceLanguage, targetLanguage, text)
}

func worldBiblePrompt(category string, s novel.BookSeries) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Expand the world bible for the %s series %q in the category: %s.\n\n", s.Type, s.Title, category)
	fmt.Fprintf(&b, "Genre: %s\nDescription: %s\nThemes: %s\nNumber of books: %d\n",
		s.Genre, s.Description, strings.Join(s.OverallThemes, ", "), s.TotalPlannedBooks)

	wb := s.WorldBible
	fmt.Fprintf(&b, "\nExisting world elements:\n- Locations: %s\n- Cultures: %s\n- Technologies: %s\n",
		elementNames(wb.Locations), elementNames(wb.Cultures), elementNames(wb.Technologies))

	if category == "timeline" {
		b.WriteString(`
Respond with a JSON object {"events": [...]} where each event has string
fields "title", "description", an RFC 3339 "date", and a "consequences"
string array.`)
	} else {
		b.WriteString(`
Respond with a JSON object {"elements": [...]} where each element has string
fields "name" and "description". Ensure all elements support the story and
maintain internal consistency.`)
	}
	return b.String()
}

func transitionPrompt(s novel.BookSeries, fromBook, toBook int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan the transition from Book %d to Book %d in the series %q.\n\n", fromBook, toBook, s.Title)
	fmt.Fprintf(&b, "Series overview: %s\nTotal planned books: %d\nSeries themes: %s\n",
		s.Description, s.TotalPlannedBooks, strings.Join(s.OverallThemes, ", "))
	fmt.Fprintf(&b, `
Provide detailed planning for:
1. Cliffhangers and hooks to end Book %d
2. Character state transitions between books
3. Plot advancement and new conflicts for Book %d
4. World progression and changes
5. Continuity elements to maintain

Respond with a JSON object with string-array fields "cliffhangers",
"character_transitions", "plot_advancement", "world_progression",
"continuity_checks".`, fromBook, toBook)
	return b.String()
}

func writeStyleHints(b *strings.Builder, s novel.WritingSettings) {
	if s.WritingStyle != "" {
		fmt.Fprintf(b, "Writing style: %s\n", s.WritingStyle)
	}
	if s.Tone != "" {
		fmt.Fprintf(b, "Tone: %s\n", s.Tone)
	}
	if s.PointOfView != "" {
		fmt.Fprintf(b, "Point of view: %s\n", s.PointOfView)
	}
}

func elementNames(elems []novel.WorldElement) string {
	if len(elems) == 0 {
		return "(none)"
	}
	names := make([]string, len(elems))
	for i, e := range elems {
		names[i] = e.Name
	}
	return strings.Join(names, ", ")
}
