package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vampirenirmal/novelagent/internal/generator"
	"github.com/vampirenirmal/novelagent/internal/novel"
	"github.com/vampirenirmal/novelagent/internal/store"
	"github.com/vampirenirmal/novelagent/internal/task"
)

const (
	defaultPlannedBooks = 3

	// Fixed per-book length assumed for completion estimates and chapter
	// ranges, matching the single-project default target.
	assumedBookWords    = 80000
	assumedChapterWords = 3000
)

// worldCategories are the expandable world-bible lists, in the order an
// unfiltered expansion walks them.
var worldCategories = []string{
	"locations", "cultures", "technologies", "magic_systems",
	"political_systems", "religions", "languages", "timeline",
}

// defaultFocusAreas are the continuity aspects checked when the caller does
// not narrow the scope.
var defaultFocusAreas = []novel.NoteType{
	novel.NotePlot, novel.NoteCharacter, novel.NoteWorld, novel.NoteTimeline,
}

// SeriesDraft carries caller-supplied fields for a new book series.
type SeriesDraft struct {
	Title             string
	Description       string
	Genre             string
	Type              novel.WorkType
	TotalPlannedBooks int
	OverallThemes     []string
}

// SeriesOutlineResult is returned by GenerateSeriesOutline.
type SeriesOutlineResult struct {
	TaskID  string              `json:"task_id"`
	Outline novel.SeriesOutline `json:"outline"`
}

// Series orchestrates multi-book concerns: series-wide outlines, cross-book
// character arcs, world-bible expansion, continuity checking, transition
// planning and aggregate analytics. Books belong to the project store; the
// series keeps its own copies refreshed from there on every read.
type Series struct {
	store            *store.Store
	ledger           *task.Ledger
	gen              generator.ContentGenerator
	projects         *Project
	expansionWorkers int
	logger           *slog.Logger
}

// SeriesOption customizes a Series orchestrator.
type SeriesOption func(*Series)

// WithSeriesLogger sets the orchestrator logger.
func WithSeriesLogger(logger *slog.Logger) SeriesOption {
	return func(o *Series) { o.logger = logger }
}

// WithExpansionWorkers caps concurrent world-bible category expansions.
func WithExpansionWorkers(n int) SeriesOption {
	return func(o *Series) {
		if n > 0 {
			o.expansionWorkers = n
		}
	}
}

// NewSeries creates a series orchestrator. The project orchestrator is a
// required collaborator: book creation and cascade deletion go through it.
func NewSeries(st *store.Store, ledger *task.Ledger, gen generator.ContentGenerator, projects *Project, opts ...SeriesOption) (*Series, error) {
	if gen == nil {
		return nil, &NotConfiguredError{Missing: "content generator"}
	}
	if projects == nil {
		return nil, &NotConfiguredError{Missing: "project orchestrator"}
	}

	o := &Series{
		store:            st,
		ledger:           ledger,
		gen:              gen,
		projects:         projects,
		expansionWorkers: 4,
		logger:           slog.Default().With("component", "series_orchestrator"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// CreateBookSeries builds a series from the draft and inserts it into the
// store. A caller-supplied plan of fewer than two books is rejected before
// anything is created; omitted fields take defaults.
func (o *Series) CreateBookSeries(ctx context.Context, draft SeriesDraft) (novel.BookSeries, error) {
	if draft.TotalPlannedBooks != 0 && draft.TotalPlannedBooks < 2 {
		return novel.BookSeries{}, &ValidationError{
			Field:   "total_planned_books",
			Message: "a series needs at least 2 planned books",
			Value:   draft.TotalPlannedBooks,
		}
	}

	now := time.Now()
	s := novel.BookSeries{
		ID:                uuid.New().String(),
		Title:             draft.Title,
		Description:       draft.Description,
		Genre:             draft.Genre,
		Type:              draft.Type,
		Status:            novel.SeriesPlanning,
		TotalPlannedBooks: draft.TotalPlannedBooks,
		OverallThemes:     draft.OverallThemes,
		SeriesTimeline:    []novel.TimelineEvent{},
		Books:             []novel.Project{},
		SeriesCharacters:  []novel.SeriesCharacter{},
		PlotThreads:       []novel.PlotThread{},
		ContinuityNotes:   []novel.ContinuityNote{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if s.Title == "" {
		s.Title = "Untitled Series"
	}
	if s.Genre == "" {
		s.Genre = defaultGenre
	}
	if s.Type == "" {
		s.Type = novel.Fiction
	}
	if s.TotalPlannedBooks == 0 {
		s.TotalPlannedBooks = defaultPlannedBooks
	}
	if s.OverallThemes == nil {
		s.OverallThemes = []string{}
	}
	s.WorldBible = novel.WorldBible{
		ID:       uuid.New().String(),
		SeriesID: s.ID,
	}

	o.store.PutSeries(s)
	o.logger.Info("series created",
		"series_id", s.ID,
		"title", s.Title,
		"planned_books", s.TotalPlannedBooks)
	return s, nil
}

// GenerateSeriesOutline generates a series-wide outline in one invocation
// and parses it into its structured sections. No originality gate applies
// at series level.
func (o *Series) GenerateSeriesOutline(ctx context.Context, seriesID string, settings novel.WritingSettings) (SeriesOutlineResult, error) {
	series, err := o.GetSeries(seriesID)
	if err != nil {
		return SeriesOutlineResult{}, err
	}

	t := o.ledger.Create(task.GenerateOutline, task.SeriesOutlineInput{SeriesID: seriesID, Settings: settings})
	o.ledger.Start(t.ID)

	raw, err := o.gen.GenerateSeriesOutline(ctx, series, settings)
	if err != nil {
		o.ledger.Fail(t.ID, err.Error())
		return SeriesOutlineResult{TaskID: t.ID}, &GenerationError{Step: "series outline", Cause: err}
	}

	outline := parseSeriesOutline(raw, series.TotalPlannedBooks)
	o.ledger.Complete(t.ID, map[string]any{"outline": outline})
	return SeriesOutlineResult{TaskID: t.ID, Outline: outline}, nil
}

// parseSeriesOutline splits free-form outline text into the structured
// sections callers expect. The overview is the leading slice of the text;
// per-book sections are cut on "Book N" headings when present.
func parseSeriesOutline(raw string, plannedBooks int) novel.SeriesOutline {
	overview := raw
	if len(overview) > 500 {
		overview = overview[:500]
	}

	outline := novel.SeriesOutline{
		SeriesOverview: overview,
		BookOutlines:   []string{},
		CharacterArcs:  []string{},
		PlotThreads:    []novel.PlotThread{},
	}
	for n := 1; n <= plannedBooks; n++ {
		marker := fmt.Sprintf("Book %d", n)
		idx := strings.Index(raw, marker)
		if idx < 0 {
			continue
		}
		section := raw[idx:]
		if next := strings.Index(section[len(marker):], fmt.Sprintf("Book %d", n+1)); next >= 0 {
			section = section[:len(marker)+next]
		}
		outline.BookOutlines = append(outline.BookOutlines, strings.TrimSpace(section))
	}
	return outline
}

// DevelopSeriesCharacterArc generates one arc node per planned book for the
// character. Arc types follow position: book 1 introduces, the final book
// resolves, the book at three quarters is the climax and everything else is
// development; on small series where positions coincide, introduction wins
// over resolution, which wins over climax. When the character is on the
// series roster, the computed arc replaces the stored one.
func (o *Series) DevelopSeriesCharacterArc(ctx context.Context, seriesID string, character novel.SeriesCharacter, settings novel.WritingSettings) ([]novel.CharacterArcNode, error) {
	series, err := o.GetSeries(seriesID)
	if err != nil {
		return nil, err
	}

	climaxBook := int(math.Ceil(float64(series.TotalPlannedBooks) * 0.75))
	estChapters := int(math.Ceil(float64(assumedBookWords) / float64(assumedChapterWords)))

	arc := make([]novel.CharacterArcNode, 0, series.TotalPlannedBooks)
	for book := 1; book <= series.TotalPlannedBooks; book++ {
		draft, err := o.gen.DevelopCharacterArc(ctx, character, series, book, settings)
		if err != nil {
			return nil, &GenerationError{Step: fmt.Sprintf("character arc book %d", book), Cause: err}
		}

		node := novel.CharacterArcNode{
			BookNumber:     book,
			ChapterRange:   fmt.Sprintf("1-%d", estChapters),
			ArcType:        arcTypeFor(book, series.TotalPlannedBooks, climaxBook),
			Description:    draft.Description,
			EmotionalState: draft.EmotionalState,
			Goals:          draft.Goals,
			Conflicts:      draft.Conflicts,
		}
		arc = append(arc, node)
	}

	if _, err := o.store.UpdateSeries(seriesID, func(s *novel.BookSeries) error {
		for i := range s.SeriesCharacters {
			if s.SeriesCharacters[i].ID == character.ID {
				s.SeriesCharacters[i].Arc = arc
				s.UpdatedAt = time.Now()
				break
			}
		}
		return nil
	}); err != nil {
		return nil, o.mapStoreErr(err, seriesID)
	}
	return arc, nil
}

// arcTypeFor applies the positional arc rules in precedence order so that
// coinciding positions on short series stay deterministic.
func arcTypeFor(book, planned, climaxBook int) novel.ArcType {
	switch {
	case book == 1:
		return novel.ArcIntroduction
	case book == planned:
		return novel.ArcResolution
	case book == climaxBook:
		return novel.ArcClimax
	default:
		return novel.ArcDevelopment
	}
}

// AddSeriesCharacter puts a character on the series roster, upserting by id.
func (o *Series) AddSeriesCharacter(seriesID string, character novel.SeriesCharacter) (novel.SeriesCharacter, error) {
	if character.ID == "" {
		character.ID = uuid.New().String()
	}
	if character.Arc == nil {
		character.Arc = []novel.CharacterArcNode{}
	}
	if character.Appearances == nil {
		character.Appearances = []novel.BookAppearance{}
	}

	_, err := o.store.UpdateSeries(seriesID, func(s *novel.BookSeries) error {
		for i := range s.SeriesCharacters {
			if s.SeriesCharacters[i].ID == character.ID {
				s.SeriesCharacters[i] = character
				s.UpdatedAt = time.Now()
				return nil
			}
		}
		s.SeriesCharacters = append(s.SeriesCharacters, character)
		s.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return novel.SeriesCharacter{}, o.mapStoreErr(err, seriesID)
	}
	return character, nil
}

// CheckSeriesContinuity runs independent checks per requested focus area and
// replaces the series' continuity notes wholesale with the concatenated
// result. Prior notes are never merged in. A nil focusAreas checks plot,
// character, world and timeline.
func (o *Series) CheckSeriesContinuity(ctx context.Context, seriesID string, focusAreas []novel.NoteType) ([]novel.ContinuityNote, error) {
	series, err := o.GetSeries(seriesID)
	if err != nil {
		return nil, err
	}
	if len(focusAreas) == 0 {
		focusAreas = defaultFocusAreas
	}

	notes := []novel.ContinuityNote{}
	for _, area := range focusAreas {
		switch area {
		case novel.NoteCharacter:
			notes = append(notes, checkCharacterContinuity(series)...)
		case novel.NoteWorld:
			notes = append(notes, checkWorldContinuity(series)...)
		case novel.NoteTimeline:
			notes = append(notes, checkTimelineContinuity(series)...)
		case novel.NotePlot:
			notes = append(notes, checkPlotContinuity(series)...)
		}
	}

	if _, err := o.store.UpdateSeries(seriesID, func(s *novel.BookSeries) error {
		s.ContinuityNotes = notes
		s.UpdatedAt = time.Now()
		return nil
	}); err != nil {
		return nil, o.mapStoreErr(err, seriesID)
	}

	o.logger.Info("continuity check complete",
		"series_id", seriesID,
		"areas", len(focusAreas),
		"notes", len(notes))
	return notes, nil
}

// checkCharacterContinuity flags appearances whose role drifts from the
// character's baseline, cameos excepted.
func checkCharacterContinuity(s novel.BookSeries) []novel.ContinuityNote {
	var notes []novel.ContinuityNote
	for _, ch := range s.SeriesCharacters {
		for _, app := range ch.Appearances {
			if app.Role == ch.Role || app.Role == "cameo" {
				continue
			}
			notes = append(notes, novel.ContinuityNote{
				ID:    uuid.New().String(),
				Type:  novel.NoteCharacter,
				Title: fmt.Sprintf("Role change for %s", ch.Name),
				Description: fmt.Sprintf("%s appears as %q in book %d but is established as %q",
					ch.Name, app.Role, app.BookNumber, ch.Role),
				EstablishedInBook: firstAppearance(ch),
				ReferencedInBooks: []int{app.BookNumber},
				Status:            novel.NoteNeedsReview,
			})
		}
	}
	return notes
}

func firstAppearance(ch novel.SeriesCharacter) int {
	first := 1
	for i, app := range ch.Appearances {
		if i == 0 || app.BookNumber < first {
			first = app.BookNumber
		}
	}
	return first
}

// checkWorldContinuity flags pairs of world rules in the same category whose
// rule text differs. Pairwise comparison; rule counts stay in the tens.
func checkWorldContinuity(s novel.BookSeries) []novel.ContinuityNote {
	rules := s.WorldBible.Rules
	var notes []novel.ContinuityNote
	for i := 0; i < len(rules); i++ {
		for j := i + 1; j < len(rules); j++ {
			if rules[i].Category != rules[j].Category || rules[i].Rule == rules[j].Rule {
				continue
			}
			notes = append(notes, novel.ContinuityNote{
				ID:    uuid.New().String(),
				Type:  novel.NoteWorld,
				Title: fmt.Sprintf("Conflicting %s rules", rules[i].Category),
				Description: fmt.Sprintf("Book %d establishes %q but book %d establishes %q",
					rules[i].EstablishedInBook, rules[i].Rule,
					rules[j].EstablishedInBook, rules[j].Rule),
				EstablishedInBook: rules[i].EstablishedInBook,
				ReferencedInBooks: []int{rules[j].EstablishedInBook},
				Status:            novel.NoteConflicted,
			})
		}
	}
	return notes
}

// checkTimelineContinuity sorts events by date and flags adjacent pairs
// where an earlier event's consequence text shows up inside the later
// event's description.
func checkTimelineContinuity(s novel.BookSeries) []novel.ContinuityNote {
	events := make([]novel.TimelineEvent, len(s.SeriesTimeline))
	copy(events, s.SeriesTimeline)
	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	var notes []novel.ContinuityNote
	for i := 0; i+1 < len(events); i++ {
		earlier, later := events[i], events[i+1]
		for _, consequence := range earlier.Consequences {
			if consequence == "" || !strings.Contains(later.Description, consequence) {
				continue
			}
			notes = append(notes, novel.ContinuityNote{
				ID:    uuid.New().String(),
				Type:  novel.NoteTimeline,
				Title: fmt.Sprintf("Linked events: %s and %s", earlier.Title, later.Title),
				Description: fmt.Sprintf("Consequence %q of %q carries into %q; verify ordering is intended",
					consequence, earlier.Title, later.Title),
				EstablishedInBook: firstAffectedBook(earlier),
				ReferencedInBooks: later.AffectedBooks,
				Status:            novel.NoteNeedsReview,
			})
		}
	}
	return notes
}

func firstAffectedBook(e novel.TimelineEvent) int {
	if len(e.AffectedBooks) == 0 {
		return 1
	}
	return e.AffectedBooks[0]
}

// checkPlotContinuity flags threads introduced more than one book ago and
// still not advanced past their introduced state.
func checkPlotContinuity(s novel.BookSeries) []novel.ContinuityNote {
	var notes []novel.ContinuityNote
	for _, thread := range s.PlotThreads {
		if thread.Status != novel.ThreadIntroduced || thread.IntroducedInBook >= s.CurrentBookCount-1 {
			continue
		}
		notes = append(notes, novel.ContinuityNote{
			ID:    uuid.New().String(),
			Type:  novel.NotePlot,
			Title: fmt.Sprintf("Stalled thread: %s", thread.Title),
			Description: fmt.Sprintf("%q was introduced in book %d and has not advanced since",
				thread.Title, thread.IntroducedInBook),
			EstablishedInBook: thread.IntroducedInBook,
			ReferencedInBooks: []int{s.CurrentBookCount},
			Status:            novel.NoteNeedsReview,
		})
	}
	return notes
}

// ExpandWorldBible generates new entries for each requested category and
// appends them to the matching world-bible lists. Categories expand
// concurrently; one category failing is logged and skipped without
// aborting the rest. A nil categories expands everything.
func (o *Series) ExpandWorldBible(ctx context.Context, seriesID string, categories []string, settings novel.WritingSettings) (novel.WorldBible, error) {
	series, err := o.GetSeries(seriesID)
	if err != nil {
		return novel.WorldBible{}, err
	}
	if len(categories) == 0 {
		categories = worldCategories
	}

	var (
		mu         sync.Mutex
		expansions []generator.WorldExpansion
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.expansionWorkers)
	for _, category := range categories {
		category := category
		g.Go(func() error {
			expansion, err := o.gen.ExpandWorldCategory(gctx, series, category, settings)
			if err != nil {
				// Partial-failure isolation: this category is lost, the
				// others still land.
				o.logger.Warn("world expansion failed for category",
					"series_id", seriesID,
					"category", category,
					"error", err)
				return nil
			}
			mu.Lock()
			expansions = append(expansions, expansion)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors; failures are logged per category

	updated, err := o.store.UpdateSeries(seriesID, func(s *novel.BookSeries) error {
		for _, exp := range expansions {
			appendWorldExpansion(&s.WorldBible, exp)
		}
		s.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return novel.WorldBible{}, o.mapStoreErr(err, seriesID)
	}
	return updated.WorldBible, nil
}

func appendWorldExpansion(wb *novel.WorldBible, exp generator.WorldExpansion) {
	switch exp.Category {
	case "locations":
		wb.Locations = append(wb.Locations, exp.Elements...)
	case "cultures":
		wb.Cultures = append(wb.Cultures, exp.Elements...)
	case "technologies":
		wb.Technologies = append(wb.Technologies, exp.Elements...)
	case "magic_systems":
		wb.MagicSystems = append(wb.MagicSystems, exp.Elements...)
	case "political_systems":
		wb.PoliticalSystems = append(wb.PoliticalSystems, exp.Elements...)
	case "religions":
		wb.Religions = append(wb.Religions, exp.Elements...)
	case "languages":
		wb.Languages = append(wb.Languages, exp.Elements...)
	case "timeline":
		wb.Timeline = append(wb.Timeline, exp.Events...)
	}
}

// PlanBookTransition drafts advisory guidance for moving from one book to
// the next. Nothing is persisted.
func (o *Series) PlanBookTransition(ctx context.Context, seriesID string, fromBook, toBook int, settings novel.WritingSettings) (novel.BookTransitionPlan, error) {
	series, err := o.GetSeries(seriesID)
	if err != nil {
		return novel.BookTransitionPlan{}, err
	}
	if fromBook < 1 || toBook < 1 || toBook <= fromBook {
		return novel.BookTransitionPlan{}, &ValidationError{
			Field:   "to_book",
			Message: "transition must move forward between positive book numbers",
			Value:   toBook,
		}
	}

	plan, err := o.gen.PlanTransition(ctx, series, fromBook, toBook, settings)
	if err != nil {
		return novel.BookTransitionPlan{}, &GenerationError{Step: "book transition", Cause: err}
	}
	return plan, nil
}

// GenerateSeriesAnalytics computes an aggregate snapshot over current
// series state. Pure computation; nothing external is called and nothing
// is persisted.
func (o *Series) GenerateSeriesAnalytics(seriesID string) (novel.SeriesAnalytics, error) {
	series, err := o.GetSeries(seriesID)
	if err != nil {
		return novel.SeriesAnalytics{}, err
	}

	totalWords := 0
	for _, book := range series.Books {
		totalWords += book.CurrentWordCount
	}

	avgLength := 0.0
	if len(series.Books) > 0 {
		avgLength = float64(totalWords) / float64(len(series.Books))
	}

	days := int(time.Since(series.CreatedAt).Hours() / 24)
	if days < 1 {
		days = 1
	}
	velocity := float64(totalWords) / float64(days)

	remaining := (series.TotalPlannedBooks - series.CurrentBookCount) * assumedBookWords
	if remaining < 0 {
		remaining = 0
	}
	estDays := 365
	if velocity > 0 {
		estDays = int(math.Ceil(float64(remaining) / velocity))
	}

	issues := 0
	for _, note := range series.ContinuityNotes {
		if note.Status == novel.NoteConflicted || note.Status == novel.NoteNeedsReview {
			issues++
		}
	}

	active, resolved := 0, 0
	for _, thread := range series.PlotThreads {
		switch thread.Status {
		case novel.ThreadResolved:
			resolved++
		default:
			active++
		}
	}

	completion := 0.0
	if series.TotalPlannedBooks > 0 {
		completion = 100 * float64(series.CurrentBookCount) / float64(series.TotalPlannedBooks)
	}

	return novel.SeriesAnalytics{
		SeriesID:                  seriesID,
		TotalWords:                totalWords,
		AverageBookLength:         avgLength,
		CharactersIntroduced:      len(series.SeriesCharacters),
		PlotThreadsActive:         active,
		PlotThreadsResolved:       resolved,
		WorldLocations:            len(series.WorldBible.Locations),
		TimelineEvents:            len(series.SeriesTimeline) + len(series.WorldBible.Timeline),
		ContinuityIssues:          issues,
		CompletionPercentage:      completion,
		EstimatedSeriesCompletion: time.Now().AddDate(0, 0, estDays),
		WritingVelocity:           velocity,
	}, nil
}

// AddBookToSeries creates a project through the project orchestrator,
// inheriting the series' genre and type when the draft leaves them blank,
// and appends it to the series' book list.
func (o *Series) AddBookToSeries(ctx context.Context, seriesID string, draft ProjectDraft) (novel.Project, error) {
	series, err := o.GetSeries(seriesID)
	if err != nil {
		return novel.Project{}, err
	}
	if draft.Genre == "" {
		draft.Genre = series.Genre
	}
	if draft.Type == "" {
		draft.Type = series.Type
	}
	if draft.Title == "" {
		draft.Title = fmt.Sprintf("%s, Book %d", series.Title, series.CurrentBookCount+1)
	}

	book, err := o.projects.CreateProject(ctx, draft)
	if err != nil {
		return novel.Project{}, err
	}

	if _, err := o.store.UpdateSeries(seriesID, func(s *novel.BookSeries) error {
		s.Books = append(s.Books, book)
		s.RecomputeBookCount()
		s.UpdatedAt = time.Now()
		return nil
	}); err != nil {
		// Series vanished between the read and the update; don't leave the
		// orphaned book behind.
		o.projects.DeleteProject(book.ID)
		return novel.Project{}, o.mapStoreErr(err, seriesID)
	}

	o.logger.Info("book added to series",
		"series_id", seriesID,
		"project_id", book.ID,
		"title", book.Title)
	return book, nil
}

// GetSeries returns a copy of the series with its book list refreshed from
// the project store, so per-book edits made through the project
// orchestrator show up here.
func (o *Series) GetSeries(seriesID string) (novel.BookSeries, error) {
	s, ok := o.store.GetSeries(seriesID)
	if !ok {
		return novel.BookSeries{}, &NotFoundError{Kind: "series", ID: seriesID}
	}
	o.refreshBooks(&s)
	return s, nil
}

// ListSeries returns copies of all series with refreshed book lists.
func (o *Series) ListSeries() []novel.BookSeries {
	out := o.store.ListSeries()
	for i := range out {
		o.refreshBooks(&out[i])
	}
	return out
}

// refreshBooks replaces each owned book with its current project-store
// state. Books deleted from the store are kept as last seen rather than
// silently dropped from the series.
func (o *Series) refreshBooks(s *novel.BookSeries) {
	for i := range s.Books {
		if current, ok := o.store.GetProject(s.Books[i].ID); ok {
			s.Books[i] = current
		}
	}
}

// UpdateStatus sets the series' coarse status.
func (o *Series) UpdateStatus(seriesID string, status novel.SeriesStatus) error {
	_, err := o.store.UpdateSeries(seriesID, func(s *novel.BookSeries) error {
		s.Status = status
		s.UpdatedAt = time.Now()
		return nil
	})
	return o.mapStoreErr(err, seriesID)
}

// DeleteSeries removes the series, every book it owns and every task
// referencing the series or any of its books. Returns whether a series was
// actually present.
func (o *Series) DeleteSeries(seriesID string) bool {
	s, ok := o.store.GetSeries(seriesID)
	if !ok {
		return false
	}

	for _, book := range s.Books {
		o.projects.DeleteProject(book.ID)
	}
	o.ledger.DeleteAllFor(seriesID)
	deleted := o.store.DeleteSeries(seriesID)
	if deleted {
		o.logger.Info("series deleted", "series_id", seriesID, "books_removed", len(s.Books))
	}
	return deleted
}

func (o *Series) mapStoreErr(err error, id string) error {
	if err == nil {
		return nil
	}
	if err == store.ErrNotFound {
		return &NotFoundError{Kind: "series", ID: id}
	}
	return err
}
