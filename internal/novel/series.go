package novel

import "time"

// SeriesStatus is the coarse state of a book series.
type SeriesStatus string

const (
	SeriesPlanning   SeriesStatus = "planning"
	SeriesWriting    SeriesStatus = "writing"
	SeriesPublishing SeriesStatus = "publishing"
	SeriesComplete   SeriesStatus = "complete"
)

// BookSeries is a collection of projects ("books") sharing a world model,
// character roster and continuity ledger. CurrentBookCount is derived from
// len(Books) and recomputed on every addition or removal. A series
// exclusively owns its books: deleting the series cascades to every owned
// project and every task referencing either.
type BookSeries struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Genre             string            `json:"genre"`
	Type              WorkType          `json:"type"`
	Status            SeriesStatus      `json:"status"`
	TotalPlannedBooks int               `json:"total_planned_books"`
	CurrentBookCount  int               `json:"current_book_count"`
	OverallThemes     []string          `json:"overall_themes"`
	WorldBible        WorldBible        `json:"world_bible"`
	SeriesTimeline    []TimelineEvent   `json:"series_timeline"`
	Books             []Project         `json:"books"`
	SeriesCharacters  []SeriesCharacter `json:"series_characters"`
	PlotThreads       []PlotThread      `json:"plot_threads"`
	ContinuityNotes   []ContinuityNote  `json:"continuity_notes"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// SeriesCharacter is a character tracked across the whole series, with one
// arc node per book and explicit per-book appearances.
type SeriesCharacter struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Role        string             `json:"role"`
	Personality string             `json:"personality"`
	Background  string             `json:"background"`
	Goals       string             `json:"goals"`
	Conflicts   string             `json:"conflicts"`
	Arc         []CharacterArcNode `json:"arc"`
	Appearances []BookAppearance   `json:"appearances"`
}

// ArcType classifies one book-scoped waypoint in a character's development.
type ArcType string

const (
	ArcIntroduction   ArcType = "introduction"
	ArcDevelopment    ArcType = "development"
	ArcClimax         ArcType = "climax"
	ArcResolution     ArcType = "resolution"
	ArcTransformation ArcType = "transformation"
)

// CharacterArcNode is one waypoint in a character's cross-series trajectory.
type CharacterArcNode struct {
	BookNumber     int     `json:"book_number"`
	ChapterRange   string  `json:"chapter_range"`
	ArcType        ArcType `json:"arc_type"`
	Description    string  `json:"description"`
	EmotionalState string  `json:"emotional_state"`
	Goals          string  `json:"goals"`
	Conflicts      string  `json:"conflicts"`
}

// BookAppearance links a series character to a specific book.
type BookAppearance struct {
	BookNumber int    `json:"book_number"`
	Role       string `json:"role"`
	Summary    string `json:"summary"`
}

// WorldBible is the one-to-one structured repository of a series' invented
// setting facts. Lists are append-only by category.
type WorldBible struct {
	ID               string          `json:"id"`
	SeriesID         string          `json:"series_id"`
	Locations        []WorldElement  `json:"locations"`
	Cultures         []WorldElement  `json:"cultures"`
	Technologies     []WorldElement  `json:"technologies"`
	MagicSystems     []WorldElement  `json:"magic_systems"`
	PoliticalSystems []WorldElement  `json:"political_systems"`
	Religions        []WorldElement  `json:"religions"`
	Languages        []WorldElement  `json:"languages"`
	Timeline         []TimelineEvent `json:"timeline"`
	Rules            []WorldRule     `json:"rules"`
}

// WorldElement is one named world-building entry (a location, culture,
// technology and so on).
type WorldElement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	FirstBook   int    `json:"first_book"`
}

// WorldRule is an invariant of the invented world, grouped by category.
type WorldRule struct {
	ID                string `json:"id"`
	Category          string `json:"category"`
	Rule              string `json:"rule"`
	EstablishedInBook int    `json:"established_in_book"`
}

// TimelineEvent is one dated event on the series or world timeline.
type TimelineEvent struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	Consequences  []string  `json:"consequences"`
	AffectedBooks []int     `json:"affected_books"`
}

// ThreadStatus is the lifecycle of a series-spanning plot thread.
type ThreadStatus string

const (
	ThreadIntroduced ThreadStatus = "introduced"
	ThreadDeveloping ThreadStatus = "developing"
	ThreadResolved   ThreadStatus = "resolved"
)

// PlotThread is a plot line spanning multiple books of a series.
type PlotThread struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	Status           ThreadStatus `json:"status"`
	IntroducedInBook int          `json:"introduced_in_book"`
	ResolvedInBook   int          `json:"resolved_in_book,omitempty"`
}

// NoteType classifies a continuity note by the aspect it concerns.
type NoteType string

const (
	NotePlot       NoteType = "plot"
	NoteCharacter  NoteType = "character"
	NoteWorld      NoteType = "world"
	NoteTimeline   NoteType = "timeline"
	NoteTechnology NoteType = "technology"
)

// NoteStatus is the review state of a continuity note.
type NoteStatus string

const (
	NoteConsistent  NoteStatus = "consistent"
	NoteNeedsReview NoteStatus = "needs_review"
	NoteConflicted  NoteStatus = "conflicted"
	NoteResolved    NoteStatus = "resolved"
)

// ContinuityNote is a flagged inconsistency between facts established in
// different books. A continuity check replaces the series' whole note list;
// notes are never merged incrementally.
type ContinuityNote struct {
	ID                string     `json:"id"`
	Type              NoteType   `json:"type"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	EstablishedInBook int        `json:"established_in_book"`
	ReferencedInBooks []int      `json:"referenced_in_books"`
	Status            NoteStatus `json:"status"`
}

// SeriesAnalytics is a pure computation over the current series state.
type SeriesAnalytics struct {
	SeriesID                  string    `json:"series_id"`
	TotalWords                int       `json:"total_words"`
	AverageBookLength         float64   `json:"average_book_length"`
	CharactersIntroduced      int       `json:"characters_introduced"`
	PlotThreadsActive         int       `json:"plot_threads_active"`
	PlotThreadsResolved       int       `json:"plot_threads_resolved"`
	WorldLocations            int       `json:"world_locations"`
	TimelineEvents            int       `json:"timeline_events"`
	ContinuityIssues          int       `json:"continuity_issues"`
	CompletionPercentage      float64   `json:"completion_percentage"`
	EstimatedSeriesCompletion time.Time `json:"estimated_series_completion"`
	WritingVelocity           float64   `json:"writing_velocity"`
}

// BookTransitionPlan is advisory guidance for moving from one book to the
// next. It is never persisted.
type BookTransitionPlan struct {
	FromBook             int      `json:"from_book"`
	ToBook               int      `json:"to_book"`
	Cliffhangers         []string `json:"cliffhangers"`
	CharacterTransitions []string `json:"character_transitions"`
	PlotAdvancement      []string `json:"plot_advancement"`
	WorldProgression     []string `json:"world_progression"`
	ContinuityChecks     []string `json:"continuity_checks"`
}

// SeriesOutline is the parsed result of a series-wide outline generation.
type SeriesOutline struct {
	SeriesOverview string       `json:"series_overview"`
	BookOutlines   []string     `json:"book_outlines"`
	CharacterArcs  []string     `json:"character_arcs"`
	WorldBuilding  string       `json:"world_building"`
	PlotThreads    []PlotThread `json:"plot_threads"`
}

// RecomputeBookCount refreshes the derived CurrentBookCount from Books.
func (s *BookSeries) RecomputeBookCount() {
	s.CurrentBookCount = len(s.Books)
}
