// Package task tracks every asynchronous orchestrated operation and its
// lifecycle. The ledger is the single owner of task records: orchestrator
// methods create a task, drive it through pending -> running -> complete or
// error, and the record stays inspectable after the fact regardless of how
// the call itself returned.
package task

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Type identifies the kind of orchestrated operation a task records.
type Type string

const (
	GenerateOutline  Type = "generate_outline"
	WriteChapter     Type = "write_chapter"
	DevelopCharacter Type = "develop_character"
	Translate        Type = "translate"
	PlagiarismCheck  Type = "plagiarism_check"
)

// Status is the lifecycle state of a task. Transitions are monotonic:
// pending -> running -> complete | error. Complete and error are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusError
}

// Input is the typed payload a task was created with. Each task kind has its
// own input type so the payload shape is statically known; ParentID ties the
// task to the project or series it operates on, which is what list filtering
// and cascade deletion key on.
type Input interface {
	ParentID() string
}

// OutlineInput is the payload of a project outline generation task.
type OutlineInput struct {
	ProjectID string `json:"project_id"`
	Settings  any    `json:"settings"`
}

func (i OutlineInput) ParentID() string { return i.ProjectID }

// SeriesOutlineInput is the payload of a series-wide outline task.
type SeriesOutlineInput struct {
	SeriesID string `json:"series_id"`
	Settings any    `json:"settings"`
}

func (i SeriesOutlineInput) ParentID() string { return i.SeriesID }

// ChapterInput is the payload of a chapter writing task.
type ChapterInput struct {
	ProjectID string `json:"project_id"`
	ChapterID string `json:"chapter_id"`
	Order     int    `json:"order"`
	Settings  any    `json:"settings"`
}

func (i ChapterInput) ParentID() string { return i.ProjectID }

// CharacterInput is the payload of a character development task.
type CharacterInput struct {
	ProjectID   string `json:"project_id"`
	CharacterID string `json:"character_id"`
	Settings    any    `json:"settings"`
}

func (i CharacterInput) ParentID() string { return i.ProjectID }

// TranslateInput is the payload of a translation task.
type TranslateInput struct {
	ProjectID      string `json:"project_id"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
	Content        string `json:"content"`
}

func (i TranslateInput) ParentID() string { return i.ProjectID }

// Task records one orchestrated operation. Output is set only on complete;
// Err only on error. CompletedAt is set exactly when the task reaches a
// terminal state.
type Task struct {
	ID          string     `json:"id"`
	Type        Type       `json:"type"`
	Status      Status     `json:"status"`
	Input       Input      `json:"input"`
	Output      any        `json:"output,omitempty"`
	Err         string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ErrTerminal is returned when a transition is attempted on a task that has
// already reached complete or error.
var ErrTerminal = errors.New("task already in terminal state")

// ErrUnknownTask is returned when a transition references an id the ledger
// does not hold.
var ErrUnknownTask = errors.New("unknown task")

// Ledger is the in-memory registry of tasks, keyed by id and listed in
// insertion order. The ledger itself never fails; failures originate in the
// orchestrators and are recorded via Fail.
type Ledger struct {
	mu      sync.RWMutex
	tasks   map[string]*Task
	order   []string
	entropy *rand.Rand
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		tasks:   make(map[string]*Task),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (l *Ledger) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), l.entropy).String()
}

// Create allocates a new pending task and inserts it into the ledger.
func (l *Ledger) Create(t Type, input Input) Task {
	l.mu.Lock()
	defer l.mu.Unlock()

	tk := &Task{
		ID:        l.newID(),
		Type:      t,
		Status:    StatusPending,
		Input:     input,
		CreatedAt: time.Now(),
	}
	l.tasks[tk.ID] = tk
	l.order = append(l.order, tk.ID)
	return *tk
}

// Start moves a pending task to running.
func (l *Ledger) Start(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tk, ok := l.tasks[id]
	if !ok {
		return ErrUnknownTask
	}
	if tk.Status.Terminal() {
		return ErrTerminal
	}
	tk.Status = StatusRunning
	return nil
}

// Complete moves a task to the complete terminal state and records its
// output and completion time.
func (l *Ledger) Complete(id string, output any) error {
	return l.finish(id, StatusComplete, output, "")
}

// Fail moves a task to the error terminal state and records the message.
func (l *Ledger) Fail(id string, message string) error {
	return l.finish(id, StatusError, nil, message)
}

func (l *Ledger) finish(id string, status Status, output any, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tk, ok := l.tasks[id]
	if !ok {
		return ErrUnknownTask
	}
	if tk.Status.Terminal() {
		return ErrTerminal
	}
	now := time.Now()
	tk.Status = status
	tk.Output = output
	tk.Err = message
	tk.CompletedAt = &now
	return nil
}

// Get returns a copy of the task with the given id.
func (l *Ledger) Get(id string) (Task, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tk, ok := l.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *tk, true
}

// List returns copies of all tasks in insertion order. When parentID is
// non-empty, only tasks whose input references that project or series are
// returned.
func (l *Ledger) List(parentID string) []Task {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Task, 0, len(l.order))
	for _, id := range l.order {
		tk := l.tasks[id]
		if parentID != "" && (tk.Input == nil || tk.Input.ParentID() != parentID) {
			continue
		}
		out = append(out, *tk)
	}
	return out
}

// DeleteAllFor removes every task whose input references parentID and
// returns how many were removed. Used during cascade deletes.
func (l *Ledger) DeleteAllFor(parentID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	kept := l.order[:0]
	for _, id := range l.order {
		tk := l.tasks[id]
		if tk.Input != nil && tk.Input.ParentID() == parentID {
			delete(l.tasks, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	l.order = kept
	return removed
}
