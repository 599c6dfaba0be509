package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leonardonapoless/PAMS/internal/models"
	"github.com/leonardonapoless/PAMS/internal/search"
)

// debounceInterval is the quiet period after the last keystroke before a
// search fires.
const debounceInterval = 300 * time.Millisecond

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	DetailView
)

// debounceMsg fires after the debounce interval; stale sequence numbers are
// ignored so only the last keystroke in a burst triggers a search.
type debounceMsg struct {
	seq int
}

// searchUpdateMsg wraps a lifecycle event from the orchestrator.
type searchUpdateMsg search.Update

// Model represents the TUI application state.
type Model struct {
	orchestrator *search.Orchestrator
	updates      <-chan search.Update

	view     ViewState
	width    int
	height   int
	input    textinput.Model
	spin     spinner.Model
	results  list.Model
	selected *models.SearchResult

	status  search.Status
	message string
	seq     int

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model wired to the orchestrator. The updates
// channel must be the same one the orchestrator publishes to.
func NewModel(orchestrator *search.Orchestrator, updates <-chan search.Update) *Model {
	input := textinput.New()
	input.Placeholder = "Search for a song..."
	input.Prompt = "> "
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.title

	results := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	results.Title = "Results"
	results.SetShowHelp(false)
	results.SetFilteringEnabled(false)
	results.SetShowStatusBar(false)

	return &Model{
		orchestrator: orchestrator,
		updates:      updates,
		view:         SearchView,
		input:        input,
		spin:         spin,
		results:      results,
		status:       search.StatusIdle,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init starts the cursor blink and the update listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForUpdate())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.results.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case debounceMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.orchestrator.SubmitQuery(m.input.Value())
		return m, nil

	case searchUpdateMsg:
		return m.handleSearchUpdate(search.Update(msg))

	case spinner.TickMsg:
		if m.status != search.StatusSearching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case DetailView:
		return m.renderDetail()
	default:
		return m.renderSearch()
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.orchestrator.Cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.back):
		if m.input.Value() == "" {
			m.orchestrator.Cancel()
			return m, tea.Quit
		}
		m.input.SetValue("")
		m.seq++
		m.status = search.StatusIdle
		m.message = ""
		m.results.SetItems(nil)
		m.orchestrator.Cancel()
		return m, nil

	case key.Matches(msg, m.keys.enter):
		if item, ok := m.results.SelectedItem().(resultItem); ok {
			m.selected = &item.result
			m.view = DetailView
		}
		return m, nil

	case key.Matches(msg, m.keys.up), key.Matches(msg, m.keys.down):
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		m.seq++
		seq := m.seq
		debounce := tea.Tick(debounceInterval, func(time.Time) tea.Msg {
			return debounceMsg{seq: seq}
		})
		return m, tea.Batch(cmd, debounce)
	}

	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.orchestrator.Cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.selected = nil
		m.view = SearchView
	}
	return m, nil
}

func (m *Model) handleSearchUpdate(update search.Update) (tea.Model, tea.Cmd) {
	m.status = update.Status
	m.message = update.Message

	switch update.Status {
	case search.StatusSearching:
		return m, tea.Batch(m.waitForUpdate(), m.spin.Tick)

	case search.StatusSucceeded:
		items := make([]list.Item, len(update.Results))
		for i, result := range update.Results {
			items[i] = resultItem{result: result}
		}
		m.results.SetItems(items)
		m.results.ResetSelected()

	case search.StatusIdle, search.StatusEmpty, search.StatusFailed:
		m.results.SetItems(nil)
	}

	return m, m.waitForUpdate()
}

// waitForUpdate blocks on the orchestrator's updates channel and feeds the
// next lifecycle event back into the Elm loop.
func (m *Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		return searchUpdateMsg(<-m.updates)
	}
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("PAMS")

	var body string
	switch m.status {
	case search.StatusSearching:
		body = fmt.Sprintf("%s searching...", m.spin.View())
	case search.StatusFailed:
		body = styles.err.Render(m.message)
	case search.StatusEmpty:
		body = styles.warn.Render(m.message)
	case search.StatusSucceeded:
		body = m.results.View()
	default:
		body = styles.help.Render("Start typing to search.")
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, m.input.View(), body, helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return ""
	}
	r := m.selected

	title := styles.title.Render(fmt.Sprintf("%s - %s", r.Artist, r.Title))

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Album: %s (%s)\n", r.Album, r.ReleaseDate))
	b.WriteString(fmt.Sprintf("Songwriter: %s\n", r.Songwriter))
	b.WriteString(fmt.Sprintf("Producer: %s\n", r.Producer))
	b.WriteString(fmt.Sprintf("Genre: %s\n", r.Genre))
	b.WriteString(fmt.Sprintf("Duration: %s\n", r.Duration))
	b.WriteString(fmt.Sprintf("Label: %s\n", r.Label))
	b.WriteString(fmt.Sprintf("Copyright: %s\n", r.Copyright))

	links := []struct {
		name string
		link *models.PlatformLink
	}{
		{"Apple Music", r.Links.AppleMusic},
		{"Spotify", r.Links.Spotify},
		{"Tidal", r.Links.Tidal},
		{"YouTube", r.Links.YouTube},
	}

	var linkLines []string
	for _, entry := range links {
		if entry.link == nil || entry.link.WebURL == "" {
			continue
		}
		linkLines = append(linkLines, fmt.Sprintf("  %s: %s", entry.name, entry.link.WebURL))
	}
	if len(linkLines) > 0 {
		b.WriteString("\nListen:\n")
		b.WriteString(strings.Join(linkLines, "\n"))
		b.WriteString("\n")
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, b.String(), helpView)
}
