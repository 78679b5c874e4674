// Package picker lets the user choose a content kind to open by typing part
// of its title.
package picker

import (
	"sort"
	"strings"

	"github.com/atomicstack/tabstrip/internal/content"
	"github.com/atomicstack/tabstrip/internal/logging/events"
	"github.com/atomicstack/tabstrip/internal/theme"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

var styles = theme.Default()

// Result reports what a key press did to the picker.
type Result struct {
	Done   bool
	Chosen bool
	Kind   content.Kind
}

type entry struct {
	kind  content.Kind
	title string
}

// Model is a filterable list of content kinds.
type Model struct {
	input   textinput.Model
	entries []entry
	matches []entry
	cursor  int
}

// New builds a picker over kinds. Kinds without a title are skipped.
func New(kinds []content.Kind) *Model {
	in := textinput.New()
	in.Prompt = "open: "
	in.Placeholder = "type to filter"
	if styles.PickerPrompt != nil {
		in.PromptStyle = *styles.PickerPrompt
	}
	in.Cursor.SetMode(cursor.CursorStatic)
	in.Focus()

	p := &Model{input: in}
	for _, kind := range kinds {
		title, err := content.Title(kind)
		if err != nil {
			continue
		}
		p.entries = append(p.entries, entry{kind: kind, title: title})
	}
	p.refilter()
	events.Picker.Open()
	return p
}

// Query returns the current filter text.
func (p *Model) Query() string {
	return p.input.Value()
}

// SetQuery replaces the filter text.
func (p *Model) SetQuery(query string) {
	p.input.SetValue(query)
	p.refilter()
}

// Matches returns the kinds matching the filter, best first.
func (p *Model) Matches() []content.Kind {
	kinds := make([]content.Kind, len(p.matches))
	for i, m := range p.matches {
		kinds[i] = m.kind
	}
	return kinds
}

// Selected returns the highlighted kind.
func (p *Model) Selected() (content.Kind, bool) {
	if p.cursor < 0 || p.cursor >= len(p.matches) {
		return 0, false
	}
	return p.matches[p.cursor].kind, true
}

// Update handles a key press.
func (p *Model) Update(msg tea.KeyMsg) (Result, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		events.Picker.Cancel()
		return Result{Done: true}, nil
	case tea.KeyEnter:
		kind, ok := p.Selected()
		if !ok {
			return Result{}, nil
		}
		events.Picker.Choose(kind.String())
		return Result{Done: true, Chosen: true, Kind: kind}, nil
	case tea.KeyUp, tea.KeyShiftTab:
		if p.cursor > 0 {
			p.cursor--
		}
		return Result{}, nil
	case tea.KeyDown, tea.KeyTab:
		if p.cursor < len(p.matches)-1 {
			p.cursor++
		}
		return Result{}, nil
	}
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.refilter()
	}
	return Result{}, cmd
}

// View renders the prompt and the candidate list.
func (p *Model) View() string {
	var b strings.Builder
	b.WriteString(p.input.View())
	if len(p.matches) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.PickerEmpty.Render("no matching content"))
		return b.String()
	}
	for i, m := range p.matches {
		b.WriteString("\n")
		if i == p.cursor {
			b.WriteString(styles.PickerSelected.Render("> " + m.title))
		} else {
			b.WriteString(styles.PickerItem.Render("  " + m.title))
		}
	}
	return b.String()
}

func (p *Model) refilter() {
	p.matches = filterEntries(p.entries, p.input.Value())
	p.cursor = 0
	events.Picker.Filter(p.input.Value(), len(p.matches))
}

func filterEntries(entries []entry, query string) []entry {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return append([]entry(nil), entries...)
	}
	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.title
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, titles)
	if len(ranks) > 0 {
		sort.Stable(ranks)
		out := make([]entry, 0, len(ranks))
		for _, rank := range ranks {
			out = append(out, entries[rank.OriginalIndex])
		}
		return out
	}
	lower := strings.ToLower(trimmed)
	var out []entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.kind.String()), lower) {
			out = append(out, e)
		}
	}
	return out
}
