package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vampirenirmal/novelagent/internal/novel"
)

func TestProjectCRUD(t *testing.T) {
	s := New()
	s.PutProject(novel.Project{ID: "p1", Title: "Draft"})

	got, ok := s.GetProject("p1")
	require.True(t, ok)
	assert.Equal(t, "Draft", got.Title)

	_, ok = s.GetProject("missing")
	assert.False(t, ok)

	assert.Len(t, s.ListProjects(), 1)

	assert.True(t, s.DeleteProject("p1"))
	assert.False(t, s.DeleteProject("p1"))
	assert.Empty(t, s.ListProjects())
}

func TestGetReturnsCopy(t *testing.T) {
	s := New()
	s.PutProject(novel.Project{ID: "p1", Chapters: []novel.Chapter{{ID: "c1", Content: "original"}}})

	got, _ := s.GetProject("p1")
	got.Chapters[0].Content = "mutated outside the store"

	again, _ := s.GetProject("p1")
	assert.Equal(t, "original", again.Chapters[0].Content)
}

func TestUpdateProject(t *testing.T) {
	s := New()
	s.PutProject(novel.Project{ID: "p1"})

	updated, err := s.UpdateProject("p1", func(p *novel.Project) error {
		p.Title = "Renamed"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	stored, _ := s.GetProject("p1")
	assert.Equal(t, "Renamed", stored.Title)

	_, err = s.UpdateProject("missing", func(p *novel.Project) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentChapterWritesDoNotRace(t *testing.T) {
	s := New()
	s.PutProject(novel.Project{ID: "p1"})

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := s.UpdateProject("p1", func(p *novel.Project) error {
				p.Chapters = append(p.Chapters, novel.Chapter{WordCount: 10, Order: n})
				p.RecomputeWordCount()
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, _ := s.GetProject("p1")
	assert.Len(t, got.Chapters, writers)
	assert.Equal(t, writers*10, got.CurrentWordCount)
}

func TestSeriesCRUD(t *testing.T) {
	s := New()
	s.PutSeries(novel.BookSeries{ID: "s1", Title: "Trilogy"})

	got, ok := s.GetSeries("s1")
	require.True(t, ok)
	assert.Equal(t, "Trilogy", got.Title)

	updated, err := s.UpdateSeries("s1", func(bs *novel.BookSeries) error {
		bs.Status = novel.SeriesWriting
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, novel.SeriesWriting, updated.Status)

	assert.Len(t, s.ListSeries(), 1)
	assert.True(t, s.DeleteSeries("s1"))
	_, ok = s.GetSeries("s1")
	assert.False(t, ok)
}
