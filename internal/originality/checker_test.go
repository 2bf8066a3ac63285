package originality

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanContentPassesWithFullConfidence(t *testing.T) {
	c := NewBasicChecker(nil)
	report, err := c.CheckPlagiarism(context.Background(), "The tide carried the small boat past the breakwater at dawn.", "check-1")
	require.NoError(t, err)

	assert.Equal(t, StatusClean, report.Status)
	assert.Equal(t, 1.0, report.Confidence)
	assert.Empty(t, report.Matches)
}

func TestCommonPhraseIsFlagged(t *testing.T) {
	c := NewBasicChecker(nil)
	content := "It was a dark and stormy night when the courier finally arrived."

	report, err := c.CheckPlagiarism(context.Background(), content, "check-2")
	require.NoError(t, err)

	assert.Equal(t, StatusPotentialIssues, report.Status)
	require.NotEmpty(t, report.Matches)
	assert.Equal(t, "it was a dark and stormy night", report.Matches[0].Text)
	assert.Less(t, report.Confidence, 0.7)
}

func TestRepeatedSentencesAreFlagged(t *testing.T) {
	c := NewBasicChecker(nil)
	sentence := "The lighthouse keeper counted the ships as they passed"
	content := sentence + ". Some filler in between. " + sentence + "."

	report, err := c.CheckPlagiarism(context.Background(), content, "check-3")
	require.NoError(t, err)

	assert.Equal(t, StatusPotentialIssues, report.Status)
	require.NotEmpty(t, report.Matches)
	assert.Equal(t, "Repeated content within document", report.Matches[0].Source)
}

func TestShortFragmentsAreIgnored(t *testing.T) {
	c := NewBasicChecker(nil)
	report, err := c.CheckPlagiarism(context.Background(), "Yes. Yes. Yes.", "check-4")
	require.NoError(t, err)
	assert.Equal(t, StatusClean, report.Status)
}

func TestCheckOriginalityVerdict(t *testing.T) {
	c := NewBasicChecker(nil)

	verdict, err := c.CheckOriginality(context.Background(), "A wholly invented account of the cartographer's first voyage north.")
	require.NoError(t, err)
	assert.True(t, verdict.IsOriginal)
	assert.Empty(t, verdict.Suggestions)

	verdict, err = c.CheckOriginality(context.Background(), "Once upon a time there lived a cartographer who mapped the stars.")
	require.NoError(t, err)
	assert.False(t, verdict.IsOriginal)
	assert.NotEmpty(t, verdict.Suggestions)
}

func TestCancelledContextReturnsError(t *testing.T) {
	c := NewBasicChecker(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.CheckPlagiarism(ctx, "anything", "check-5")
	assert.Error(t, err)
}

func TestSimilarityBounds(t *testing.T) {
	assert.Equal(t, 1.0, similarity("identical text here", "identical text here"))
	assert.Equal(t, 1.0, similarity("", ""))

	low := similarity("completely different words", strings.Repeat("z", 25))
	assert.Less(t, low, 0.3)
}
