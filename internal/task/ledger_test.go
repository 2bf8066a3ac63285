package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerLifecycle(t *testing.T) {
	l := NewLedger()

	tk := l.Create(GenerateOutline, OutlineInput{ProjectID: "p1"})
	assert.NotEmpty(t, tk.ID)
	assert.Equal(t, StatusPending, tk.Status)
	assert.Nil(t, tk.CompletedAt)

	require.NoError(t, l.Start(tk.ID))
	got, ok := l.Get(tk.ID)
	require.True(t, ok)
	assert.Equal(t, StatusRunning, got.Status)

	require.NoError(t, l.Complete(tk.ID, map[string]any{"outline": "three acts"}))
	got, _ = l.Get(tk.ID)
	assert.Equal(t, StatusComplete, got.Status)
	assert.NotNil(t, got.Output)
	require.NotNil(t, got.CompletedAt)
}

func TestLedgerFailRecordsMessage(t *testing.T) {
	l := NewLedger()
	tk := l.Create(WriteChapter, ChapterInput{ProjectID: "p1", ChapterID: "c1"})
	l.Start(tk.ID)

	require.NoError(t, l.Fail(tk.ID, "generator unavailable"))
	got, _ := l.Get(tk.ID)
	assert.Equal(t, StatusError, got.Status)
	assert.Equal(t, "generator unavailable", got.Err)
	assert.NotNil(t, got.CompletedAt)
}

func TestTerminalStatesAreOneShot(t *testing.T) {
	l := NewLedger()
	tk := l.Create(GenerateOutline, OutlineInput{ProjectID: "p1"})
	require.NoError(t, l.Complete(tk.ID, nil))

	assert.ErrorIs(t, l.Complete(tk.ID, nil), ErrTerminal)
	assert.ErrorIs(t, l.Fail(tk.ID, "late"), ErrTerminal)
	assert.ErrorIs(t, l.Start(tk.ID), ErrTerminal)

	got, _ := l.Get(tk.ID)
	assert.Equal(t, StatusComplete, got.Status)
}

func TestTransitionOnUnknownTask(t *testing.T) {
	l := NewLedger()
	assert.ErrorIs(t, l.Start("nope"), ErrUnknownTask)
	assert.ErrorIs(t, l.Complete("nope", nil), ErrUnknownTask)
	assert.ErrorIs(t, l.Fail("nope", "x"), ErrUnknownTask)
}

func TestListFiltersByParentAndKeepsOrder(t *testing.T) {
	l := NewLedger()
	a := l.Create(GenerateOutline, OutlineInput{ProjectID: "p1"})
	b := l.Create(WriteChapter, ChapterInput{ProjectID: "p2", ChapterID: "c1"})
	c := l.Create(DevelopCharacter, CharacterInput{ProjectID: "p1", CharacterID: "ch1"})

	all := l.List("")
	require.Len(t, all, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	p1 := l.List("p1")
	require.Len(t, p1, 2)
	assert.Equal(t, a.ID, p1[0].ID)
	assert.Equal(t, c.ID, p1[1].ID)
}

func TestDeleteAllFor(t *testing.T) {
	l := NewLedger()
	l.Create(GenerateOutline, OutlineInput{ProjectID: "p1"})
	keep := l.Create(WriteChapter, ChapterInput{ProjectID: "p2", ChapterID: "c1"})
	l.Create(Translate, TranslateInput{ProjectID: "p1", TargetLanguage: "fr"})

	removed := l.DeleteAllFor("p1")
	assert.Equal(t, 2, removed)

	remaining := l.List("")
	require.Len(t, remaining, 1)
	assert.Equal(t, keep.ID, remaining[0].ID)

	assert.Equal(t, 0, l.DeleteAllFor("p1"))
}
