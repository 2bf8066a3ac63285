package novel

// Clone returns a deep copy of the project. The store hands out clones so
// callers can never mutate shared state except through an update method.
func (p Project) Clone() Project {
	cp := p
	cp.Chapters = append([]Chapter(nil), p.Chapters...)
	cp.Characters = append([]Character(nil), p.Characters...)
	cp.Settings = append([]Setting(nil), p.Settings...)
	cp.Themes = append([]string(nil), p.Themes...)
	return cp
}

// Clone returns a deep copy of the series, including its books, characters
// and world bible.
func (s BookSeries) Clone() BookSeries {
	cp := s
	cp.OverallThemes = append([]string(nil), s.OverallThemes...)
	cp.SeriesTimeline = cloneEvents(s.SeriesTimeline)
	cp.PlotThreads = append([]PlotThread(nil), s.PlotThreads...)
	cp.ContinuityNotes = cloneNotes(s.ContinuityNotes)
	cp.WorldBible = s.WorldBible.Clone()

	cp.Books = make([]Project, len(s.Books))
	for i, b := range s.Books {
		cp.Books[i] = b.Clone()
	}
	cp.SeriesCharacters = make([]SeriesCharacter, len(s.SeriesCharacters))
	for i, c := range s.SeriesCharacters {
		cp.SeriesCharacters[i] = c.Clone()
	}
	return cp
}

// Clone returns a deep copy of the character, including arc and appearances.
func (c SeriesCharacter) Clone() SeriesCharacter {
	cp := c
	cp.Arc = append([]CharacterArcNode(nil), c.Arc...)
	cp.Appearances = append([]BookAppearance(nil), c.Appearances...)
	return cp
}

// Clone returns a deep copy of the world bible.
func (w WorldBible) Clone() WorldBible {
	cp := w
	cp.Locations = append([]WorldElement(nil), w.Locations...)
	cp.Cultures = append([]WorldElement(nil), w.Cultures...)
	cp.Technologies = append([]WorldElement(nil), w.Technologies...)
	cp.MagicSystems = append([]WorldElement(nil), w.MagicSystems...)
	cp.PoliticalSystems = append([]WorldElement(nil), w.PoliticalSystems...)
	cp.Religions = append([]WorldElement(nil), w.Religions...)
	cp.Languages = append([]WorldElement(nil), w.Languages...)
	cp.Timeline = cloneEvents(w.Timeline)
	cp.Rules = append([]WorldRule(nil), w.Rules...)
	return cp
}

func cloneEvents(events []TimelineEvent) []TimelineEvent {
	if events == nil {
		return nil
	}
	out := make([]TimelineEvent, len(events))
	for i, e := range events {
		out[i] = e
		out[i].Consequences = append([]string(nil), e.Consequences...)
		out[i].AffectedBooks = append([]int(nil), e.AffectedBooks...)
	}
	return out
}

func cloneNotes(notes []ContinuityNote) []ContinuityNote {
	if notes == nil {
		return nil
	}
	out := make([]ContinuityNote, len(notes))
	for i, n := range notes {
		out[i] = n
		out[i].ReferencedInBooks = append([]int(nil), n.ReferencedInBooks...)
	}
	return out
}
