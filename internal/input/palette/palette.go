package palette

import (
	"cmp"
	"slices"
	"sync"

	"github.com/dshills/drawstorm/internal/dispatcher/action"
)

// Entry is one searchable action.
type Entry struct {
	Name     action.Name
	Title    string
	Category string
	Shortcut bool
}

// Result is a matched entry.
type Result struct {
	Entry Entry

	// Score ranks the match (higher is better).
	Score int

	// Matches holds rune indices of matched characters in Entry.Title.
	Matches []int
}

// Palette searches a fixed set of action entries.
type Palette struct {
	mu      sync.RWMutex
	entries []Entry
	history *History
}

// New builds a palette over actions.
func New(actions []action.Action) *Palette {
	p := &Palette{history: NewHistory(DefaultHistorySize)}
	p.Reset(actions)
	return p
}

// Reset replaces the entries, keeping history.
func (p *Palette) Reset(actions []action.Action) {
	entries := make([]Entry, 0, len(actions))
	for _, a := range actions {
		entries = append(entries, entryFor(a))
	}
	slices.SortFunc(entries, func(a, b Entry) int { return cmp.Compare(a.Title, b.Title) })

	p.mu.Lock()
	p.entries = entries
	p.mu.Unlock()
}

func entryFor(a action.Action) Entry {
	title := a.ContextItemLabel
	if title == "" {
		title = string(a.Name)
	}
	return Entry{
		Name:     a.Name,
		Title:    title,
		Category: a.TrackEvent.EventCategory(),
		Shortcut: a.HasShortcut(),
	}
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// Record notes that name was executed.
func (p *Palette) Record(name action.Name) {
	p.history.Add(name)
}

// History returns the execution history.
func (p *Palette) History() *History {
	return p.history
}

// Search returns entries matching query, best first. An empty query
// lists recent actions first, then the rest by title. A limit of zero
// or less returns all matches.
func (p *Palette) Search(query string, limit int) []Result {
	p.mu.RLock()
	entries := p.entries
	p.mu.RUnlock()

	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		var r Result
		if query == "" {
			r = Result{Entry: e}
		} else {
			s, m := match(query, e.Title)
			if name := string(e.Name); name != e.Title {
				if ns, _ := match(query, name); ns > s {
					s, m = ns, nil
				}
			}
			if s == 0 {
				continue
			}
			r = Result{Entry: e, Score: s, Matches: m}
		}
		if pos := p.history.Position(e.Name); pos >= 0 {
			if query == "" {
				r.Score += 1000 - pos
			} else {
				r.Score += 100 - pos
			}
		}
		results = append(results, r)
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Entry.Title, b.Entry.Title)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
