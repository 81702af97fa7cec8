// Package collection is the generic panel over one entity store: a search
// input, categorical filters cycled with single keys, a table of the
// filtered rows, an add form, delete and status change.
package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/warden/pkg/entitystore"
	"tableflip.dev/warden/pkg/filter"
	"tableflip.dev/warden/pkg/resource"
	"tableflip.dev/warden/pkg/tui/components/form"
	"tableflip.dev/warden/pkg/tui/events"
	"tableflip.dev/warden/pkg/tui/theme"
	"tableflip.dev/warden/pkg/tui/ui"
)

// Filter binds a categorical filter to the key that cycles it.
type Filter struct {
	Name string
	Key  string
	// Values to cycle through, starting with filter.All. Nil cycles the
	// values present in the loaded collection.
	Values []string
}

// Config describes one collection panel.
type Config[T any] struct {
	ID      events.ComponentID
	Title   string
	Store   *entitystore.Store[T]
	Columns []table.Column
	Row     func(T) table.Row
	Key     func(T) string
	Filters []Filter
	// Statuses lists the statuses an entity may be switched to. Nil disables
	// status changes.
	Statuses func(T) []string
	// Form builds the add form. Nil disables adding.
	Form func() *form.Model
	// Prepare runs before the add form opens, for example to refresh the
	// cells offered by the inmate form.
	Prepare func(ctx context.Context) error
	// Create submits the add form.
	Create func(ctx context.Context, values map[string]string) error
}

type mode int

const (
	browsing mode = iota
	searching
	adding
	picking
	confirming
)

// formReadyMsg opens the add form once Prepare returned.
type formReadyMsg struct {
	component events.ComponentID
	err       error
}

// KeyMap lists the panel bindings.
type KeyMap struct {
	Search key.Binding
	Add    key.Binding
	Delete key.Binding
	Status key.Binding
	Reset  key.Binding
	Reload key.Binding
	Yes    key.Binding
	No     key.Binding
	Up     key.Binding
	Down   key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Status: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "status")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset filters")),
		Reload: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Yes:    key.NewBinding(key.WithKeys("y", "Y")),
		No:     key.NewBinding(key.WithKeys("n", "N", "esc")),
		Up:     key.NewBinding(key.WithKeys("up", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
	}
}

// Model is a collection panel.
type Model[T any] struct {
	cfg Config[T]
	ctx context.Context

	table   table.Model
	search  textinput.Model
	spinner spinner.Model
	form    *form.Model

	rows   []T
	mode   mode
	loaded bool
	busy   bool

	// picker state
	options []string
	cursor  int
	target  T

	width  int
	height int

	keys  KeyMap
	theme theme.Theme
}

// New builds a panel. ctx bounds every request the panel starts.
func New[T any](ctx context.Context, cfg Config[T], th theme.Theme) *Model[T] {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"
	search.CharLimit = 64

	t := table.New(
		table.WithColumns(cfg.Columns),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("25")).
		Bold(false)
	t.SetStyles(styles)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model[T]{
		cfg:     cfg,
		ctx:     ctx,
		table:   t,
		search:  search,
		spinner: sp,
		keys:    DefaultKeyMap(),
		theme:   th,
	}
}

// Title implements ui.Panel.
func (m *Model[T]) Title() string { return m.cfg.Title }

// Capturing implements ui.Panel.
func (m *Model[T]) Capturing() bool { return m.mode != browsing }

// Keys implements ui.Panel.
func (m *Model[T]) Keys() []key.Binding {
	switch m.mode {
	case searching:
		return []key.Binding{key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc/enter", "done"))}
	case adding:
		fk := m.form.Keys()
		return []key.Binding{fk.Next, fk.Left, fk.Submit, fk.Cancel}
	case picking, confirming:
		return nil
	}
	keys := []key.Binding{m.keys.Search}
	for _, f := range m.cfg.Filters {
		keys = append(keys, key.NewBinding(key.WithKeys(f.Key), key.WithHelp(f.Key, f.Name)))
	}
	keys = append(keys, m.keys.Reset)
	if m.cfg.Form != nil {
		keys = append(keys, m.keys.Add)
	}
	keys = append(keys, m.keys.Delete)
	if m.cfg.Statuses != nil {
		keys = append(keys, m.keys.Status)
	}
	return append(keys, m.keys.Reload)
}

// Rows returns the rows currently displayed.
func (m *Model[T]) Rows() []T { return m.rows }

// Init implements ui.Component.
func (m *Model[T]) Init() tea.Cmd { return nil }

// Enter implements ui.Panel: it mounts the store.
func (m *Model[T]) Enter() tea.Cmd {
	m.loaded = false
	m.mode = browsing
	s, id, ctx := m.cfg.Store, m.cfg.ID, m.ctx
	load := func() tea.Msg {
		return events.LoadedMsg{Component: id, Err: s.Mount(ctx)}
	}
	return tea.Batch(load, m.spinner.Tick)
}

// Leave implements ui.Panel: it discards the collection.
func (m *Model[T]) Leave() {
	m.cfg.Store.Unmount()
	m.cfg.Store.ResetFilters()
	m.loaded = false
	m.mode = browsing
	m.form = nil
	m.busy = false
	m.rows = nil
	m.table.SetRows(nil)
	m.search.SetValue("")
	m.search.Blur()
}

// Update implements ui.Component.
func (m *Model[T]) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch v := msg.(type) {
	case spinner.TickMsg:
		if m.loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(v)
			return m, cmd
		}
		return m, nil
	case events.LoadedMsg:
		// A superseded mount says nothing about the list now loading.
		if v.Component == m.cfg.ID && !errors.Is(v.Err, entitystore.ErrDiscarded) {
			m.loaded = true
			m.refresh()
		}
		return m, nil
	case events.StoreChangeMsg:
		if v.Kind == m.cfg.Store.Name() {
			m.refresh()
		}
		return m, nil
	case formReadyMsg:
		if v.component != m.cfg.ID || v.err != nil {
			return m, nil
		}
		m.form = m.cfg.Form()
		m.form.SetSize(m.width, m.height)
		m.mode = adding
		return m, m.form.Init()
	case events.FormSubmitMsg:
		if m.form == nil || v.Component != m.form.ID() || m.busy {
			return m, nil
		}
		m.busy = true
		create, ctx, id := m.cfg.Create, m.ctx, m.cfg.ID
		values := v.Values
		return m, func() tea.Msg {
			return events.DoneMsg{Component: id, Op: "add", Err: create(ctx, values)}
		}
	case events.FormCancelMsg:
		if m.form != nil && v.Component == m.form.ID() {
			m.closeForm()
		}
		return m, nil
	case events.DoneMsg:
		if v.Component != m.cfg.ID {
			return m, nil
		}
		m.busy = false
		if v.Op == "add" && m.form != nil {
			if v.Err != nil {
				m.form.SetError(reason(v.Err))
			} else {
				m.closeForm()
			}
		}
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(v)
	}

	if m.mode == adding && m.form != nil {
		_, cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case searching:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.mode = browsing
			m.search.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.cfg.Store.SetSearch(m.search.Value())
		m.refresh()
		return cmd
	case adding:
		if m.busy {
			return nil
		}
		_, cmd := m.form.Update(msg)
		return cmd
	case picking:
		return m.handlePicker(msg)
	case confirming:
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.mode = browsing
			return m.remove(m.target)
		case key.Matches(msg, m.keys.No):
			m.mode = browsing
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		m.mode = searching
		return m.search.Focus()
	case key.Matches(msg, m.keys.Reset):
		m.cfg.Store.ResetFilters()
		m.search.SetValue("")
		m.refresh()
		return nil
	case key.Matches(msg, m.keys.Reload):
		s, id, ctx := m.cfg.Store, m.cfg.ID, m.ctx
		return func() tea.Msg { return events.LoadedMsg{Component: id, Err: s.Reload(ctx)} }
	case key.Matches(msg, m.keys.Add) && m.cfg.Form != nil:
		return m.openForm()
	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.selected(); ok {
			m.target = item
			m.mode = confirming
		}
		return nil
	case key.Matches(msg, m.keys.Status) && m.cfg.Statuses != nil:
		if item, ok := m.selected(); ok {
			m.options = m.cfg.Statuses(item)
			if len(m.options) == 0 {
				return nil
			}
			m.target = item
			m.cursor = 0
			m.mode = picking
		}
		return nil
	}

	for _, f := range m.cfg.Filters {
		if msg.String() == f.Key {
			m.cycle(f)
			return nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m *Model[T]) handlePicker(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.options)
	case msg.Type == tea.KeyEnter:
		m.mode = browsing
		status := m.options[m.cursor]
		s, id, ctx := m.cfg.Store, m.cfg.ID, m.ctx
		target := m.cfg.Key(m.target)
		return func() tea.Msg {
			_, err := s.SetStatus(ctx, target, status)
			return events.DoneMsg{Component: id, Op: "status", Err: err}
		}
	case msg.Type == tea.KeyEsc:
		m.mode = browsing
	}
	return nil
}

func (m *Model[T]) openForm() tea.Cmd {
	id := m.cfg.ID
	if m.cfg.Prepare == nil {
		return func() tea.Msg { return formReadyMsg{component: id} }
	}
	prepare, ctx := m.cfg.Prepare, m.ctx
	return func() tea.Msg { return formReadyMsg{component: id, err: prepare(ctx)} }
}

func (m *Model[T]) closeForm() {
	m.form = nil
	m.busy = false
	m.mode = browsing
}

func (m *Model[T]) remove(item T) tea.Cmd {
	s, id, ctx := m.cfg.Store, m.cfg.ID, m.ctx
	target := m.cfg.Key(item)
	return func() tea.Msg {
		return events.DoneMsg{Component: id, Op: "delete", Err: s.Remove(ctx, target)}
	}
}

// cycle advances the filter to its next value.
func (m *Model[T]) cycle(f Filter) {
	values := f.Values
	if values == nil {
		values = append([]string{filter.All}, m.cfg.Store.FilterSpec().Distinct(m.cfg.Store.Items(), f.Name)...)
	}
	current := m.cfg.Store.FilterState().Value(f.Name)
	next := values[0]
	for i, v := range values {
		if v == current {
			next = values[(i+1)%len(values)]
			break
		}
	}
	m.cfg.Store.SetFilter(f.Name, next)
	m.refresh()
}

func (m *Model[T]) selected() (T, bool) {
	var zero T
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return zero, false
	}
	return m.rows[i], true
}

func (m *Model[T]) refresh() {
	m.rows = m.cfg.Store.Filtered()
	rows := make([]table.Row, len(m.rows))
	for i, item := range m.rows {
		rows[i] = m.cfg.Row(item)
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// loading is true until the first list request of this visit returns;
// reloads keep the table on screen.
func (m *Model[T]) loading() bool {
	return !m.loaded
}

// SetSize implements ui.Component.
func (m *Model[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = max(10, width/3)
	m.table.SetWidth(width)
	m.table.SetHeight(max(3, height-4))
	if m.form != nil {
		m.form.SetSize(width, height)
	}
}

// View implements ui.Component.
func (m *Model[T]) View() string {
	th := m.theme.Panel
	title := th.Title.Render(m.cfg.Title) + " " +
		th.Faint.Render(fmt.Sprintf("%d of %d", len(m.rows), m.cfg.Store.Len()))
	if m.busy {
		title += " " + th.Faint.Render("working…")
	}

	var body string
	switch {
	case m.loading():
		body = m.spinner.View() + " Loading " + strings.ToLower(m.cfg.Title) + "…"
	case m.cfg.Store.State() == entitystore.Failed && m.cfg.Store.Len() == 0:
		body = th.Faint.Render(fmt.Sprintf("Could not load %s: %s. Press ctrl+r to retry.",
			strings.ToLower(m.cfg.Title), reason(m.cfg.Store.Err())))
	case len(m.rows) == 0:
		body = th.Faint.Render("Nothing matches.")
	default:
		body = m.table.View()
	}

	view := lipgloss.JoinVertical(lipgloss.Left, title, m.filterLine(), "", body)

	var modal string
	switch m.mode {
	case adding:
		if m.form != nil {
			modal = m.form.View()
		}
	case picking:
		modal = m.pickerView()
	case confirming:
		modal = m.theme.Modal.Frame.Render(
			m.theme.Modal.Title.Render("Delete "+strings.Join(m.cfg.Row(m.target)[:2], " ")+"?") +
				"\n\n" + th.Faint.Render("y delete • n keep"))
	}
	if modal != "" && m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}
	return view
}

func (m *Model[T]) filterLine() string {
	th := m.theme.Panel
	parts := []string{}
	if m.mode == searching || m.search.Value() != "" {
		parts = append(parts, m.search.View())
	}
	st := m.cfg.Store.FilterState()
	for _, f := range m.cfg.Filters {
		v := st.Value(f.Name)
		label := fmt.Sprintf("%s: %s [%s]", f.Name, v, f.Key)
		if v != filter.All {
			parts = append(parts, th.Active.Render(label))
		} else {
			parts = append(parts, th.Filter.Render(label))
		}
	}
	return strings.Join(parts, "   ")
}

func (m *Model[T]) pickerView() string {
	var b strings.Builder
	b.WriteString(m.theme.Modal.Title.Render("Change status") + "\n\n")
	for i, o := range m.options {
		if i == m.cursor {
			b.WriteString(m.theme.Panel.Active.Render("› "+o) + "\n")
		} else {
			b.WriteString("  " + m.theme.Status.Render(o) + "\n")
		}
	}
	b.WriteString("\n" + m.theme.Panel.Faint.Render("↑/↓ choose • enter apply • esc cancel"))
	return m.theme.Modal.Frame.Render(b.String())
}

func reason(err error) string {
	if err == nil {
		return ""
	}
	if r := resource.Reason(err); r != "" {
		return r
	}
	return err.Error()
}
