package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vampirenirmal/novelagent/internal/generator"
	"github.com/vampirenirmal/novelagent/internal/novel"
	"github.com/vampirenirmal/novelagent/internal/store"
	"github.com/vampirenirmal/novelagent/internal/task"
)

func newTestSeries(t *testing.T, gen generator.ContentGenerator) (*Series, *Project, *store.Store, *task.Ledger) {
	t.Helper()
	st := store.New()
	ledger := task.NewLedger()
	projects, err := NewProject(st, ledger, gen, passingChecker())
	require.NoError(t, err)
	series, err := NewSeries(st, ledger, gen, projects)
	require.NoError(t, err)
	return series, projects, st, ledger
}

func TestCreateBookSeriesDefaults(t *testing.T) {
	o, _, _, _ := newTestSeries(t, generator.NewMock())

	s, err := o.CreateBookSeries(context.Background(), SeriesDraft{Title: "The Unmapped Lands"})
	require.NoError(t, err)

	assert.Equal(t, 3, s.TotalPlannedBooks)
	assert.Equal(t, novel.SeriesPlanning, s.Status)
	assert.Zero(t, s.CurrentBookCount)
	assert.NotEmpty(t, s.WorldBible.ID)
	assert.Equal(t, s.ID, s.WorldBible.SeriesID)
}

func TestCreateBookSeriesRejectsTooFewBooks(t *testing.T) {
	o, _, _, _ := newTestSeries(t, generator.NewMock())

	_, err := o.CreateBookSeries(context.Background(), SeriesDraft{TotalPlannedBooks: 1})
	assert.True(t, IsValidation(err))
	assert.Empty(t, o.ListSeries())
}

func TestGenerateSeriesOutlineRecordsTask(t *testing.T) {
	gen := generator.NewMock()
	gen.SeriesOutlineFunc = func(ctx context.Context, s novel.BookSeries, settings novel.WritingSettings) (string, error) {
		return "An overview of the saga. Book 1 opens the conflict. Book 2 deepens it. Book 3 resolves everything.", nil
	}
	o, _, _, ledger := newTestSeries(t, gen)

	s, _ := o.CreateBookSeries(context.Background(), SeriesDraft{})
	result, err := o.GenerateSeriesOutline(context.Background(), s.ID, testSettings())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.Outline.SeriesOverview, "An overview"))
	assert.Len(t, result.Outline.BookOutlines, 3)

	tk, ok := ledger.Get(result.TaskID)
	require.True(t, ok)
	assert.Equal(t, task.StatusComplete, tk.Status)

	// The series outline task is filterable by series id.
	assert.Len(t, ledger.List(s.ID), 1)
}

func TestArcTypeSequenceForFiveBooks(t *testing.T) {
	o, _, _, _ := newTestSeries(t, generator.NewMock())

	s, err := o.CreateBookSeries(context.Background(), SeriesDraft{TotalPlannedBooks: 5})
	require.NoError(t, err)

	arc, err := o.DevelopSeriesCharacterArc(context.Background(), s.ID, novel.SeriesCharacter{ID: "c1", Name: "Mara"}, testSettings())
	require.NoError(t, err)
	require.Len(t, arc, 5)

	want := []novel.ArcType{
		novel.ArcIntroduction,
		novel.ArcDevelopment,
		novel.ArcDevelopment,
		novel.ArcClimax,
		novel.ArcResolution,
	}
	for i, node := range arc {
		assert.Equal(t, want[i], node.ArcType, "book %d", i+1)
		assert.Equal(t, i+1, node.BookNumber)
		assert.Equal(t, "1-27", node.ChapterRange)
	}
}

func TestArcTypePrecedenceOnTwoBooks(t *testing.T) {
	o, _, _, _ := newTestSeries(t, generator.NewMock())

	s, _ := o.CreateBookSeries(context.Background(), SeriesDraft{TotalPlannedBooks: 2})
	arc, err := o.DevelopSeriesCharacterArc(context.Background(), s.ID, novel.SeriesCharacter{ID: "c1"}, testSettings())
	require.NoError(t, err)
	require.Len(t, arc, 2)

	// Book 2 is both the final book and the climax position; resolution wins.
	assert.Equal(t, novel.ArcIntroduction, arc[0].ArcType)
	assert.Equal(t, novel.ArcResolution, arc[1].ArcType)
}

func TestArcPersistsOnRosterCharacter(t *testing.T) {
	o, _, _, _ := newTestSeries(t, generator.NewMock())

	s, _ := o.CreateBookSeries(context.Background(), SeriesDraft{})
	character, err := o.AddSeriesCharacter(s.ID, novel.SeriesCharacter{Name: "Mara", Role: "protagonist"})
	require.NoError(t, err)

	arc, err := o.DevelopSeriesCharacterArc(context.Background(), s.ID, character, testSettings())
	require.NoError(t, err)

	stored, err := o.GetSeries(s.ID)
	require.NoError(t, err)
	require.Len(t, stored.SeriesCharacters, 1)
	assert.Equal(t, arc, stored.SeriesCharacters[0].Arc)
}

func TestCheckSeriesContinuity(t *testing.T) {
	o, _, st, _ := newTestSeries(t, generator.NewMock())
	s, _ := o.CreateBookSeries(context.Background(), SeriesDraft{})

	_, err := st.UpdateSeries(s.ID, func(bs *novel.BookSeries) error {
		bs.CurrentBookCount = 3
		bs.SeriesCharacters = []novel.SeriesCharacter{
			{
				ID: "c1", Name: "Mara", Role: "protagonist",
				Appearances: []novel.BookAppearance{
					{BookNumber: 1, Role: "protagonist"},
					{BookNumber: 2, Role: "antagonist"},
					{BookNumber: 3, Role: "cameo"},
				},
			},
		}
		bs.WorldBible.Rules = []novel.WorldRule{
			{ID: "r1", Category: "magic", Rule: "the dead stay dead", EstablishedInBook: 1},
			{ID: "r2", Category: "magic", Rule: "necromancy works", EstablishedInBook: 2},
			{ID: "r3", Category: "travel", Rule: "no teleportation", EstablishedInBook: 1},
		}
		bs.SeriesTimeline = []novel.TimelineEvent{
			{ID: "e1", Title: "The Fall", Date: time.Date(100, 1, 1, 0, 0, 0, 0, time.UTC), Consequences: []string{"the capital burns"}},
			{ID: "e2", Title: "The Rebuilding", Date: time.Date(110, 1, 1, 0, 0, 0, 0, time.UTC), Description: "A decade after the capital burns, reconstruction begins."},
		}
		bs.PlotThreads = []novel.PlotThread{
			{ID: "t1", Title: "The lost map", Status: novel.ThreadIntroduced, IntroducedInBook: 1},
			{ID: "t2", Title: "Recent mystery", Status: novel.ThreadIntroduced, IntroducedInBook: 3},
			{ID: "t3", Title: "Resolved feud", Status: novel.ThreadResolved, IntroducedInBook: 1},
		}
		return nil
	})
	require.NoError(t, err)

	notes, err := o.CheckSeriesContinuity(context.Background(), s.ID, nil)
	require.NoError(t, err)

	byType := map[novel.NoteType]int{}
	for _, n := range notes {
		byType[n.Type]++
	}
	assert.Equal(t, 1, byType[novel.NoteCharacter], "role drift flagged once, cameo exempt")
	assert.Equal(t, 1, byType[novel.NoteWorld], "one conflicting magic rule pair")
	assert.Equal(t, 1, byType[novel.NoteTimeline], "consequence text appears in later event")
	assert.Equal(t, 1, byType[novel.NotePlot], "only the stalled thread from book 1")

	// The stored note list is replaced wholesale on every check.
	stored, _ := o.GetSeries(s.ID)
	assert.Equal(t, len(notes), len(stored.ContinuityNotes))

	again, err := o.CheckSeriesContinuity(context.Background(), s.ID, []novel.NoteType{novel.NotePlot})
	require.NoError(t, err)
	require.Len(t, again, 1)
	stored, _ = o.GetSeries(s.ID)
	assert.Len(t, stored.ContinuityNotes, 1)
}

func TestExpandWorldBibleAppendsAndIsolatesFailures(t *testing.T) {
	gen := generator.NewMock()
	gen.ExpandFunc = func(ctx context.Context, s novel.BookSeries, category string, settings novel.WritingSettings) (generator.WorldExpansion, error) {
		if category == "cultures" {
			return generator.WorldExpansion{}, errors.New("backend hiccup")
		}
		if category == "timeline" {
			return generator.WorldExpansion{Category: category, Events: []novel.TimelineEvent{{ID: "e1", Title: "Founding"}}}, nil
		}
		return generator.WorldExpansion{Category: category, Elements: []novel.WorldElement{{ID: category + "-1", Name: "New " + category}}}, nil
	}
	o, _, _, _ := newTestSeries(t, gen)

	s, _ := o.CreateBookSeries(context.Background(), SeriesDraft{})
	wb, err := o.ExpandWorldBible(context.Background(), s.ID, []string{"locations", "cultures", "timeline"}, testSettings())
	require.NoError(t, err)

	assert.Len(t, wb.Locations, 1)
	assert.Empty(t, wb.Cultures, "failed category contributes nothing")
	assert.Len(t, wb.Timeline, 1)

	// Expansion appends; a second run grows the lists.
	wb, err = o.ExpandWorldBible(context.Background(), s.ID, []string{"locations"}, testSettings())
	require.NoError(t, err)
	assert.Len(t, wb.Locations, 2)
}

func TestPlanBookTransitionValidatesDirection(t *testing.T) {
	o, _, _, _ := newTestSeries(t, generator.NewMock())
	s, _ := o.CreateBookSeries(context.Background(), SeriesDraft{})

	plan, err := o.PlanBookTransition(context.Background(), s.ID, 1, 2, testSettings())
	require.NoError(t, err)
	assert.Equal(t, 1, plan.FromBook)
	assert.Equal(t, 2, plan.ToBook)
	assert.NotEmpty(t, plan.Cliffhangers)

	_, err = o.PlanBookTransition(context.Background(), s.ID, 2, 1, testSettings())
	assert.True(t, IsValidation(err))
}

func TestAddBookToSeriesInheritsAndCounts(t *testing.T) {
	o, _, _, _ := newTestSeries(t, generator.NewMock())

	s, _ := o.CreateBookSeries(context.Background(), SeriesDraft{Title: "Saga", Genre: "Fantasy", Type: novel.Fiction})
	book, err := o.AddBookToSeries(context.Background(), s.ID, ProjectDraft{})
	require.NoError(t, err)

	assert.Equal(t, "Fantasy", book.Genre)
	assert.Equal(t, novel.Fiction, book.Type)
	assert.Equal(t, "Saga, Book 1", book.Title)

	stored, err := o.GetSeries(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CurrentBookCount)
	require.Len(t, stored.Books, 1)
	assert.Equal(t, len(stored.Books), stored.CurrentBookCount)
}

func TestSeriesAnalyticsScenario(t *testing.T) {
	content := strings.TrimSpace(strings.Repeat("word ", 500))
	gen := generator.NewMock()
	gen.ChapterFunc = func(ctx context.Context, ch novel.Chapter, p novel.Project, prior []novel.Chapter, s novel.WritingSettings) (string, error) {
		return content, nil
	}
	o, projects, _, _ := newTestSeries(t, gen)

	s, _ := o.CreateBookSeries(context.Background(), SeriesDraft{TotalPlannedBooks: 2})
	book1, err := o.AddBookToSeries(context.Background(), s.ID, ProjectDraft{})
	require.NoError(t, err)
	book2, err := o.AddBookToSeries(context.Background(), s.ID, ProjectDraft{})
	require.NoError(t, err)

	_, err = projects.WriteChapter(context.Background(), book1.ID, ChapterDraft{}, testSettings())
	require.NoError(t, err)
	_, err = projects.WriteChapter(context.Background(), book2.ID, ChapterDraft{}, testSettings())
	require.NoError(t, err)

	analytics, err := o.GenerateSeriesAnalytics(s.ID)
	require.NoError(t, err)

	assert.Equal(t, 1000, analytics.TotalWords)
	assert.Equal(t, 500.0, analytics.AverageBookLength)
	assert.Equal(t, 100.0, analytics.CompletionPercentage)
	assert.Equal(t, 1000.0, analytics.WritingVelocity, "1000 words over a clamped one-day window")

	// Repeat without mutation: everything but the completion estimate's
	// anchor time is identical.
	again, err := o.GenerateSeriesAnalytics(s.ID)
	require.NoError(t, err)
	again.EstimatedSeriesCompletion = analytics.EstimatedSeriesCompletion
	assert.Equal(t, analytics, again)
}

func TestDeleteSeriesCascades(t *testing.T) {
	o, projects, _, ledger := newTestSeries(t, generator.NewMock())

	s, _ := o.CreateBookSeries(context.Background(), SeriesDraft{})
	book, err := o.AddBookToSeries(context.Background(), s.ID, ProjectDraft{})
	require.NoError(t, err)

	_, err = projects.GenerateOutline(context.Background(), book.ID, testSettings())
	require.NoError(t, err)
	_, err = o.GenerateSeriesOutline(context.Background(), s.ID, testSettings())
	require.NoError(t, err)

	assert.True(t, o.DeleteSeries(s.ID))

	_, err = o.GetSeries(s.ID)
	assert.True(t, IsNotFound(err))
	_, err = projects.GetProject(book.ID)
	assert.True(t, IsNotFound(err))
	assert.Empty(t, ledger.List(s.ID))
	assert.Empty(t, ledger.List(book.ID))

	assert.False(t, o.DeleteSeries(s.ID))
}

func TestGetSeriesRefreshesBooksFromProjectStore(t *testing.T) {
	o, projects, _, _ := newTestSeries(t, generator.NewMock())

	s, _ := o.CreateBookSeries(context.Background(), SeriesDraft{})
	book, err := o.AddBookToSeries(context.Background(), s.ID, ProjectDraft{})
	require.NoError(t, err)

	_, err = projects.WriteChapter(context.Background(), book.ID, ChapterDraft{}, testSettings())
	require.NoError(t, err)

	stored, err := o.GetSeries(s.ID)
	require.NoError(t, err)
	require.Len(t, stored.Books, 1)
	assert.NotZero(t, stored.Books[0].CurrentWordCount, "per-book edits show up on the series view")
	assert.Len(t, stored.Books[0].Chapters, 1)
}

func TestUpdateSeriesStatus(t *testing.T) {
	o, _, _, _ := newTestSeries(t, generator.NewMock())
	s, _ := o.CreateBookSeries(context.Background(), SeriesDraft{})

	require.NoError(t, o.UpdateStatus(s.ID, novel.SeriesWriting))
	stored, _ := o.GetSeries(s.ID)
	assert.Equal(t, novel.SeriesWriting, stored.Status)

	err := o.UpdateStatus("missing", novel.SeriesWriting)
	assert.True(t, IsNotFound(err))
}
