// Package originality scores generated text for similarity to existing or
// duplicated content. The orchestrators treat it as an external collaborator
// behind the Checker interface; BasicChecker is the built-in implementation.
package originality

import (
	"context"
	"log/slog"
	"strings"
)

// Status is the outcome classification of a plagiarism check.
type Status string

const (
	StatusClean           Status = "clean"
	StatusPotentialIssues Status = "potential_issues"
	StatusError           Status = "error"
)

// Match is one flagged span of text with its suspected source.
type Match struct {
	Text       string  `json:"text"`
	Source     string  `json:"source"`
	Similarity float64 `json:"similarity"`
	StartIndex int     `json:"start_index"`
	EndIndex   int     `json:"end_index"`
}

// Report is the result of a plagiarism check over one piece of content.
type Report struct {
	ID         string  `json:"id"`
	Status     Status  `json:"status"`
	Confidence float64 `json:"confidence"`
	Matches    []Match `json:"matches"`
}

// Verdict is the pass/fail result of an originality check.
type Verdict struct {
	IsOriginal  bool     `json:"is_original"`
	Confidence  float64  `json:"confidence"`
	Suggestions []string `json:"suggestions"`
}

// Checker scores text for originality.
type Checker interface {
	CheckPlagiarism(ctx context.Context, content, id string) (Report, error)
	CheckOriginality(ctx context.Context, content string) (Verdict, error)
}

// Well-known openings and literary phrases that immediately read as lifted.
var commonPhrases = []string{
	"it was a dark and stormy night",
	"once upon a time",
	"they lived happily ever after",
	"it was the best of times, it was the worst of times",
	"call me ishmael",
	"it is a truth universally acknowledged",
}

// BasicChecker flags known literary phrases and near-duplicate sentences
// within the document. It stands in for a real detection service; the
// scoring contract (status, confidence, matched spans) is what the
// orchestrators depend on, not the detection quality.
type BasicChecker struct {
	logger *slog.Logger
}

// NewBasicChecker creates a checker.
func NewBasicChecker(logger *slog.Logger) *BasicChecker {
	if logger == nil {
		logger = slog.Default()
	}
	return &BasicChecker{logger: logger.With("component", "originality")}
}

// CheckPlagiarism scans content for known phrases and repeated sentences.
// Confidence is 1.0 for clean content and decreases with the average
// similarity of the matches found.
func (c *BasicChecker) CheckPlagiarism(ctx context.Context, content, id string) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{ID: id, Status: StatusError}, err
	}

	matches := c.scan(content)
	report := Report{
		ID:         id,
		Status:     StatusClean,
		Confidence: confidence(matches),
		Matches:    matches,
	}
	if len(matches) > 0 {
		report.Status = StatusPotentialIssues
		c.logger.Debug("plagiarism check flagged content",
			"check_id", id,
			"matches", len(matches),
			"confidence", report.Confidence)
	}
	return report, nil
}

// CheckOriginality runs a plagiarism check and condenses it to a pass/fail
// verdict. Content passes only when it is both match-free and
// high-confidence.
func (c *BasicChecker) CheckOriginality(ctx context.Context, content string) (Verdict, error) {
	report, err := c.CheckPlagiarism(ctx, content, "originality-check")
	if err != nil {
		return Verdict{}, err
	}

	var suggestions []string
	if len(report.Matches) > 0 {
		suggestions = append(suggestions,
			"Rephrase highlighted sections to improve originality",
			"Remove or modify common phrases and cliches")
	}
	if report.Confidence < 0.8 {
		suggestions = append(suggestions,
			"Review content for potential similarities to existing works")
	}

	return Verdict{
		IsOriginal:  report.Confidence > 0.8 && len(report.Matches) == 0,
		Confidence:  report.Confidence,
		Suggestions: suggestions,
	}, nil
}

func (c *BasicChecker) scan(content string) []Match {
	var matches []Match
	lower := strings.ToLower(content)

	for _, phrase := range commonPhrases {
		if idx := strings.Index(lower, phrase); idx >= 0 {
			matches = append(matches, Match{
				Text:       phrase,
				Source:     "Common literary phrases",
				Similarity: 0.9,
				StartIndex: idx,
				EndIndex:   idx + len(phrase),
			})
		}
	}

	// Near-duplicate sentences within the same document suggest copy-paste.
	sentences := splitSentences(content)
	for i := 0; i < len(sentences); i++ {
		for j := i + 1; j < len(sentences); j++ {
			sim := similarity(sentences[i], sentences[j])
			if sim > 0.8 {
				start := strings.Index(content, sentences[i])
				matches = append(matches, Match{
					Text:       sentences[i],
					Source:     "Repeated content within document",
					Similarity: sim,
					StartIndex: start,
					EndIndex:   start + len(sentences[i]),
				})
			}
		}
	}
	return matches
}

func splitSentences(content string) []string {
	raw := strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	var out []string
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if len(s) > 10 {
			out = append(out, s)
		}
	}
	return out
}

func confidence(matches []Match) float64 {
	if len(matches) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, m := range matches {
		sum += m.Similarity
	}
	conf := 1.0 - sum/float64(len(matches))
	if conf < 0 {
		conf = 0
	}
	return conf
}

// similarity is a Levenshtein-based ratio in [0,1] relative to the longer
// string.
func similarity(a, b string) float64 {
	longer, shorter := a, b
	if len(b) > len(a) {
		longer, shorter = b, a
	}
	if len(longer) == 0 {
		return 1.0
	}
	d := levenshtein(longer, shorter)
	return float64(len(longer)-d) / float64(len(longer))
}

func levenshtein(a, b string) int {
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for j := 0; j <= len(a); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(b); i++ {
		curr[0] = i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if b[i-1] == a[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j-1]+cost, curr[j-1]+1, prev[j]+1)
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
