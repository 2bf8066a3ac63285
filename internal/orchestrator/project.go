package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vampirenirmal/novelagent/internal/generator"
	"github.com/vampirenirmal/novelagent/internal/novel"
	"github.com/vampirenirmal/novelagent/internal/originality"
	"github.com/vampirenirmal/novelagent/internal/store"
	"github.com/vampirenirmal/novelagent/internal/task"
)

// Defaults applied when a project draft omits fields.
const (
	defaultTitle      = "Untitled Novel"
	defaultGenre      = "General Fiction"
	defaultWordTarget = 80000

	// Assumed words written per day for completion estimates. A fixed
	// constant rather than a measured rate; the unit (days) is part of
	// the WritingProgress contract.
	defaultDailyWords = 1000
)

// ProjectDraft carries caller-supplied fields for a new project. Zero
// values are replaced with documented defaults.
type ProjectDraft struct {
	Title           string
	Description     string
	Genre           string
	Type            novel.WorkType
	TargetWordCount int
	Themes          []string
}

// ChapterDraft carries caller-supplied fields for a chapter write.
type ChapterDraft struct {
	ID      string
	Title   string
	Summary string
	Order   int
}

// CharacterDraft carries caller-supplied fields for character development.
type CharacterDraft struct {
	ID          string
	Name        string
	Description string
	Role        string
}

// SettingDraft carries caller-supplied fields for a story setting.
type SettingDraft struct {
	ID          string
	Name        string
	Description string
	Timeframe   string
	Importance  string
}

// OutlineResult is returned by GenerateOutline.
type OutlineResult struct {
	TaskID  string `json:"task_id"`
	Outline string `json:"outline"`
}

// ChapterResult is returned by WriteChapter.
type ChapterResult struct {
	TaskID  string        `json:"task_id"`
	Chapter novel.Chapter `json:"chapter"`
}

// CharacterResult is returned by DevelopCharacter.
type CharacterResult struct {
	TaskID    string          `json:"task_id"`
	Character novel.Character `json:"character"`
}

// TranslationResult is returned by TranslateContent.
type TranslationResult struct {
	TaskID      string            `json:"task_id"`
	Translation novel.Translation `json:"translation"`
}

// Project orchestrates AI-assisted authoring for single writing projects:
// outline generation, chapter writing and character development, each
// recorded as a task and gated for originality where the operation calls
// for it.
type Project struct {
	store      *store.Store
	ledger     *task.Ledger
	gen        generator.ContentGenerator
	checker    originality.Checker
	dailyWords int
	logger     *slog.Logger
	validate   *validator.Validate
}

// ProjectOption customizes a Project orchestrator.
type ProjectOption func(*Project)

// WithProjectLogger sets the orchestrator logger.
func WithProjectLogger(logger *slog.Logger) ProjectOption {
	return func(o *Project) { o.logger = logger }
}

// WithDailyWordRate overrides the assumed daily writing rate used in
// progress estimates.
func WithDailyWordRate(words int) ProjectOption {
	return func(o *Project) {
		if words > 0 {
			o.dailyWords = words
		}
	}
}

// NewProject creates a project orchestrator. The generator and checker are
// required: a missing collaborator fails construction so a misconfigured
// credential surfaces at startup, not on the first request.
func NewProject(st *store.Store, ledger *task.Ledger, gen generator.ContentGenerator, checker originality.Checker, opts ...ProjectOption) (*Project, error) {
	if gen == nil {
		return nil, &NotConfiguredError{Missing: "content generator"}
	}
	if checker == nil {
		return nil, &NotConfiguredError{Missing: "originality checker"}
	}

	o := &Project{
		store:      st,
		ledger:     ledger,
		gen:        gen,
		checker:    checker,
		dailyWords: defaultDailyWords,
		logger:     slog.Default().With("component", "project_orchestrator"),
		validate:   validator.New(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// CreateProject builds a project from the draft, filling omitted fields
// with defaults, and inserts it into the store.
func (o *Project) CreateProject(ctx context.Context, draft ProjectDraft) (novel.Project, error) {
	now := time.Now()
	p := novel.Project{
		ID:              uuid.New().String(),
		Title:           draft.Title,
		Description:     draft.Description,
		Genre:           draft.Genre,
		Type:            draft.Type,
		TargetWordCount: draft.TargetWordCount,
		Status:          novel.ProjectPlanning,
		Chapters:        []novel.Chapter{},
		Characters:      []novel.Character{},
		Settings:        []novel.Setting{},
		Themes:          draft.Themes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if p.Title == "" {
		p.Title = defaultTitle
	}
	if p.Genre == "" {
		p.Genre = defaultGenre
	}
	if p.Type == "" {
		p.Type = novel.Fiction
	}
	if p.TargetWordCount == 0 {
		p.TargetWordCount = defaultWordTarget
	}
	if p.Themes == nil {
		p.Themes = []string{}
	}

	o.store.PutProject(p)
	o.logger.Info("project created", "project_id", p.ID, "title", p.Title)
	return p, nil
}

// GenerateOutline generates and persists an outline for the project. The
// outline must pass the originality check before it is written to the
// store; a rejected outline leaves the prior outline untouched and the
// task in error.
func (o *Project) GenerateOutline(ctx context.Context, projectID string, settings novel.WritingSettings) (OutlineResult, error) {
	project, ok := o.store.GetProject(projectID)
	if !ok {
		return OutlineResult{}, &NotFoundError{Kind: "project", ID: projectID}
	}
	if err := o.checkSettings(settings); err != nil {
		return OutlineResult{}, err
	}

	t := o.ledger.Create(task.GenerateOutline, task.OutlineInput{ProjectID: projectID, Settings: settings})
	o.ledger.Start(t.ID)

	outline, err := o.gen.GenerateOutline(ctx, project, settings)
	if err != nil {
		o.ledger.Fail(t.ID, err.Error())
		return OutlineResult{TaskID: t.ID}, &GenerationError{Step: "outline", Cause: err}
	}

	verdict, err := o.checker.CheckOriginality(ctx, outline)
	if err != nil {
		o.ledger.Fail(t.ID, err.Error())
		return OutlineResult{TaskID: t.ID}, &GenerationError{Step: "originality check", Cause: err}
	}
	if !verdict.IsOriginal {
		rejection := &OriginalityRejectedError{Confidence: verdict.Confidence}
		o.ledger.Fail(t.ID, rejection.Error())
		o.logger.Warn("outline rejected by originality gate",
			"project_id", projectID,
			"task_id", t.ID,
			"confidence", verdict.Confidence)
		return OutlineResult{TaskID: t.ID}, rejection
	}

	if _, err := o.store.UpdateProject(projectID, func(p *novel.Project) error {
		p.Outline = outline
		p.UpdatedAt = time.Now()
		return nil
	}); err != nil {
		o.ledger.Fail(t.ID, err.Error())
		return OutlineResult{TaskID: t.ID}, o.mapStoreErr(err, "project", projectID)
	}

	o.ledger.Complete(t.ID, map[string]any{"outline": outline, "originality_check": verdict})
	return OutlineResult{TaskID: t.ID, Outline: outline}, nil
}

// WriteChapter generates one chapter with the story-so-far as context and
// persists it if the plagiarism gate passes. Content flagged as
// potential_issues blocks only when confidence is below 0.7; the chapter's
// word count is recomputed from the generated content, never trusted from
// input.
func (o *Project) WriteChapter(ctx context.Context, projectID string, draft ChapterDraft, settings novel.WritingSettings) (ChapterResult, error) {
	project, ok := o.store.GetProject(projectID)
	if !ok {
		return ChapterResult{}, &NotFoundError{Kind: "project", ID: projectID}
	}
	if err := o.checkSettings(settings); err != nil {
		return ChapterResult{}, err
	}

	chapter := novel.Chapter{
		ID:      draft.ID,
		Title:   draft.Title,
		Status:  novel.ChapterWriting,
		Summary: draft.Summary,
		Order:   draft.Order,
	}
	if chapter.ID == "" {
		chapter.ID = uuid.New().String()
	}
	if chapter.Order == 0 {
		chapter.Order = len(project.Chapters) + 1
	}
	if chapter.Title == "" {
		chapter.Title = fmt.Sprintf("Chapter %d", chapter.Order)
	}

	t := o.ledger.Create(task.WriteChapter, task.ChapterInput{
		ProjectID: projectID,
		ChapterID: chapter.ID,
		Order:     chapter.Order,
		Settings:  settings,
	})
	o.ledger.Start(t.ID)

	// Narrative context is the ordered prefix of the story, not insertion
	// order.
	prior := project.ChaptersBefore(chapter.Order)

	content, err := o.gen.WriteChapter(ctx, chapter, project, prior, settings)
	if err != nil {
		o.ledger.Fail(t.ID, err.Error())
		return ChapterResult{TaskID: t.ID}, &GenerationError{Step: "chapter", Cause: err}
	}

	report, err := o.checker.CheckPlagiarism(ctx, content, t.ID)
	if err != nil {
		o.ledger.Fail(t.ID, err.Error())
		return ChapterResult{TaskID: t.ID}, &GenerationError{Step: "plagiarism check", Cause: err}
	}
	if report.Status == originality.StatusPotentialIssues && report.Confidence < 0.7 {
		rejection := &OriginalityRejectedError{Confidence: report.Confidence, Matches: len(report.Matches)}
		o.ledger.Fail(t.ID, rejection.Error())
		o.logger.Warn("chapter rejected by plagiarism gate",
			"project_id", projectID,
			"task_id", t.ID,
			"confidence", report.Confidence,
			"matches", len(report.Matches))
		return ChapterResult{TaskID: t.ID}, rejection
	}

	chapter.Content = content
	chapter.WordCount = novel.CountWords(content)
	chapter.Status = novel.ChapterComplete

	if _, err := o.store.UpdateProject(projectID, func(p *novel.Project) error {
		p.UpsertChapter(chapter)
		p.RecomputeWordCount()
		p.UpdatedAt = time.Now()
		return nil
	}); err != nil {
		o.ledger.Fail(t.ID, err.Error())
		return ChapterResult{TaskID: t.ID}, o.mapStoreErr(err, "project", projectID)
	}

	o.ledger.Complete(t.ID, map[string]any{"chapter": chapter, "plagiarism_check": report})
	o.logger.Info("chapter written",
		"project_id", projectID,
		"chapter_id", chapter.ID,
		"order", chapter.Order,
		"words", chapter.WordCount)
	return ChapterResult{TaskID: t.ID, Chapter: chapter}, nil
}

// DevelopCharacter generates a full character profile and upserts it by id.
// Characters carry no originality gate.
func (o *Project) DevelopCharacter(ctx context.Context, projectID string, draft CharacterDraft, settings novel.WritingSettings) (CharacterResult, error) {
	project, ok := o.store.GetProject(projectID)
	if !ok {
		return CharacterResult{}, &NotFoundError{Kind: "project", ID: projectID}
	}
	if err := o.checkSettings(settings); err != nil {
		return CharacterResult{}, err
	}

	sketch := novel.Character{
		ID:          draft.ID,
		Name:        draft.Name,
		Description: draft.Description,
		Role:        draft.Role,
	}
	if sketch.ID == "" {
		sketch.ID = uuid.New().String()
	}
	if sketch.Name == "" {
		sketch.Name = "Unnamed Character"
	}

	t := o.ledger.Create(task.DevelopCharacter, task.CharacterInput{
		ProjectID:   projectID,
		CharacterID: sketch.ID,
		Settings:    settings,
	})
	o.ledger.Start(t.ID)

	character, err := o.gen.DevelopCharacter(ctx, sketch, project, settings)
	if err != nil {
		o.ledger.Fail(t.ID, err.Error())
		return CharacterResult{TaskID: t.ID}, &GenerationError{Step: "character", Cause: err}
	}
	character.ID = sketch.ID

	if _, err := o.store.UpdateProject(projectID, func(p *novel.Project) error {
		p.UpsertCharacter(character)
		p.UpdatedAt = time.Now()
		return nil
	}); err != nil {
		o.ledger.Fail(t.ID, err.Error())
		return CharacterResult{TaskID: t.ID}, o.mapStoreErr(err, "project", projectID)
	}

	o.ledger.Complete(t.ID, map[string]any{"character": character})
	return CharacterResult{TaskID: t.ID, Character: character}, nil
}

// TranslateContent translates a piece of project content. The translation
// is returned and recorded on the task but not persisted on the project.
func (o *Project) TranslateContent(ctx context.Context, projectID, content, targetLanguage, sourceLanguage string) (TranslationResult, error) {
	if _, ok := o.store.GetProject(projectID); !ok {
		return TranslationResult{}, &NotFoundError{Kind: "project", ID: projectID}
	}
	if sourceLanguage == "" {
		sourceLanguage = "en"
	}

	t := o.ledger.Create(task.Translate, task.TranslateInput{
		ProjectID:      projectID,
		SourceLanguage: sourceLanguage,
		TargetLanguage: targetLanguage,
		Content:        content,
	})
	o.ledger.Start(t.ID)

	translated, err := o.gen.Translate(ctx, content, targetLanguage, sourceLanguage)
	if err != nil {
		o.ledger.Fail(t.ID, err.Error())
		return TranslationResult{TaskID: t.ID}, &GenerationError{Step: "translate", Cause: err}
	}

	translation := novel.Translation{
		ID:                uuid.New().String(),
		ProjectID:         projectID,
		SourceLanguage:    sourceLanguage,
		TargetLanguage:    targetLanguage,
		Content:           content,
		TranslatedContent: translated,
		Status:            "complete",
		CreatedAt:         time.Now(),
	}

	o.ledger.Complete(t.ID, map[string]any{"translation": translation})
	return TranslationResult{TaskID: t.ID, Translation: translation}, nil
}

// EnhanceText applies one enhancement pass to arbitrary text. Pure
// transformation: no task recorded, nothing persisted.
func (o *Project) EnhanceText(ctx context.Context, content string, kind generator.Enhancement, settings novel.WritingSettings) (string, error) {
	return o.gen.EnhanceText(ctx, content, kind, settings)
}

// WritingProgress computes a progress snapshot for the project.
func (o *Project) WritingProgress(projectID string) (novel.WritingProgress, error) {
	project, ok := o.store.GetProject(projectID)
	if !ok {
		return novel.WritingProgress{}, &NotFoundError{Kind: "project", ID: projectID}
	}

	completed := 0
	for _, ch := range project.Chapters {
		if ch.Status == novel.ChapterComplete {
			completed++
		}
	}

	remaining := project.TargetWordCount - project.CurrentWordCount
	days := 0
	if remaining > 0 {
		days = int(math.Ceil(float64(remaining) / float64(o.dailyWords)))
	}

	return novel.WritingProgress{
		ProjectID:           projectID,
		TotalWords:          project.CurrentWordCount,
		ChaptersCompleted:   completed,
		TotalChapters:       len(project.Chapters),
		EstimatedCompletion: time.Now().AddDate(0, 0, days),
	}, nil
}

// AddSetting appends a story setting to the project.
func (o *Project) AddSetting(ctx context.Context, projectID string, draft SettingDraft) (novel.Setting, error) {
	setting := novel.Setting{
		ID:          draft.ID,
		Name:        draft.Name,
		Description: draft.Description,
		Timeframe:   draft.Timeframe,
		Importance:  draft.Importance,
	}
	if setting.ID == "" {
		setting.ID = uuid.New().String()
	}
	if setting.Name == "" {
		setting.Name = "Unnamed Setting"
	}
	if setting.Timeframe == "" {
		setting.Timeframe = "Present day"
	}
	if setting.Importance == "" {
		setting.Importance = "secondary"
	}

	if _, err := o.store.UpdateProject(projectID, func(p *novel.Project) error {
		p.Settings = append(p.Settings, setting)
		p.UpdatedAt = time.Now()
		return nil
	}); err != nil {
		return novel.Setting{}, o.mapStoreErr(err, "project", projectID)
	}
	return setting, nil
}

// UpdateStatus sets the project's coarse authoring status. Independent of
// task outcomes.
func (o *Project) UpdateStatus(projectID string, status novel.ProjectStatus) error {
	_, err := o.store.UpdateProject(projectID, func(p *novel.Project) error {
		p.Status = status
		p.UpdatedAt = time.Now()
		return nil
	})
	return o.mapStoreErr(err, "project", projectID)
}

// GetProject returns a copy of the project.
func (o *Project) GetProject(projectID string) (novel.Project, error) {
	p, ok := o.store.GetProject(projectID)
	if !ok {
		return novel.Project{}, &NotFoundError{Kind: "project", ID: projectID}
	}
	return p, nil
}

// ListProjects returns copies of all projects.
func (o *Project) ListProjects() []novel.Project {
	return o.store.ListProjects()
}

// GetTask returns the task with the given id.
func (o *Project) GetTask(taskID string) (task.Task, bool) {
	return o.ledger.Get(taskID)
}

// ListTasks returns tasks in insertion order, optionally filtered to those
// referencing projectID.
func (o *Project) ListTasks(projectID string) []task.Task {
	return o.ledger.List(projectID)
}

// DeleteProject removes the project and every task referencing it. Returns
// whether a project was actually present; deleting an unknown id is false,
// not an error.
func (o *Project) DeleteProject(projectID string) bool {
	deleted := o.store.DeleteProject(projectID)
	removed := o.ledger.DeleteAllFor(projectID)
	if deleted {
		o.logger.Info("project deleted", "project_id", projectID, "tasks_removed", removed)
	}
	return deleted
}

func (o *Project) checkSettings(settings novel.WritingSettings) error {
	if err := o.validate.Struct(settings); err != nil {
		return &ValidationError{Field: "settings", Message: err.Error(), Value: settings.Model}
	}
	return nil
}

func (o *Project) mapStoreErr(err error, kind, id string) error {
	if err == nil {
		return nil
	}
	if err == store.ErrNotFound {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return err
}
