package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"

	"github.com/varbhar/llm-council/internal/models"
	"github.com/varbhar/llm-council/internal/render"
)

// Fallback literals for optional context source fields.
const (
	unknownDate   = "Unknown date"
	untitled      = "Untitled"
	unknownOutlet = "Unknown outlet"
)

var zoneOnce sync.Once

// Stage1Model displays the council's independent first-stage answers:
// a tab strip of members, the selected member's markdown response, and
// a collapsible panel listing the context sources the answers were
// grounded on.
type Stage1Model struct {
	responses []models.Response
	sources   []models.ContextSource

	// Selection lives only as long as the model; tab events are the
	// only thing that moves it.
	selected    int
	contextOpen bool

	viewport   viewport.Model
	ready      bool
	width      int
	height     int
	renderOpts render.Options
	statusMsg  string
}

// NewStage1Model creates the stage-1 view over the given responses.
func NewStage1Model(responses []models.Response, sources []models.ContextSource, opts render.Options) Stage1Model {
	zoneOnce.Do(zone.NewGlobal)
	return Stage1Model{
		responses:  responses,
		sources:    sources,
		renderOpts: opts,
	}
}

// Selected returns the index of the active tab.
func (m Stage1Model) Selected() int {
	return m.selected
}

// ContextOpen reports whether the context panel is expanded.
func (m Stage1Model) ContextOpen() bool {
	return m.contextOpen
}

// SetResponses replaces the response list. A shorter list can leave the
// previous selection pointing past the end, so the index is clamped
// rather than trusted.
func (m *Stage1Model) SetResponses(responses []models.Response) {
	m.responses = responses
	if m.selected >= len(responses) {
		m.selected = len(responses) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.syncViewport()
}

// SetContextSources replaces the context source list. The panel
// collapses so stale detail is never left open over new sources.
func (m *Stage1Model) SetContextSources(sources []models.ContextSource) {
	m.sources = sources
	if len(sources) == 0 {
		m.contextOpen = false
	}
	m.syncViewport()
}

// Select activates the tab at index i. Out-of-range indices are ignored.
func (m *Stage1Model) Select(i int) {
	if i < 0 || i >= len(m.responses) {
		return
	}
	m.selected = i
	m.statusMsg = ""
	m.syncViewport()
}

// Init initializes the model
func (m Stage1Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Stage1Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2 // stage title
		statusHeight := 2 // status bar

		vpHeight := m.height - headerHeight - statusHeight
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 2
		if contentWidth < 20 {
			contentWidth = 20
		}

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.syncViewport()

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "left", "h":
			m.Select(m.selected - 1)

		case "right", "l":
			m.Select(m.selected + 1)

		case "tab":
			if n := len(m.responses); n > 0 {
				m.Select((m.selected + 1) % n)
			}

		case "shift+tab":
			if n := len(m.responses); n > 0 {
				m.Select((m.selected + n - 1) % n)
			}

		case "c":
			if len(m.sources) > 0 {
				m.contextOpen = !m.contextOpen
				m.syncViewport()
			}

		case "y":
			m.copySelected()

		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			m.Select(int(key[0] - '1'))

		default:
			if m.ready {
				m.viewport, cmd = m.viewport.Update(msg)
			}
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			for i := range m.responses {
				if zone.Get(tabZoneID(i)).InBounds(msg) {
					m.Select(i)
					return m, nil
				}
			}
			if len(m.sources) > 0 && zone.Get(contextHeaderZoneID).InBounds(msg) {
				m.contextOpen = !m.contextOpen
				m.syncViewport()
				return m, nil
			}
		}
		if m.ready {
			m.viewport, cmd = m.viewport.Update(msg)
		}
	}

	return m, cmd
}

// View renders the stage. With no responses there is nothing to show
// and the output is empty, not an empty frame.
func (m Stage1Model) View() string {
	if len(m.responses) == 0 {
		return ""
	}

	title := stageTitleStyle.Render("Stage 1: Independent Responses")

	var body string
	if m.ready {
		body = m.viewport.View()
	} else {
		body = m.renderMain()
	}

	out := stageStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		body,
		m.statusBar(),
	))
	return zone.Scan(out)
}

const contextHeaderZoneID = "context-header"

func tabZoneID(i int) string {
	return fmt.Sprintf("tab-%d", i)
}

// syncViewport refreshes the scrollable content after a state change.
func (m *Stage1Model) syncViewport() {
	if m.ready {
		m.viewport.SetContent(m.renderMain())
	}
}

// renderMain composes the tab strip, the selected response and the
// context panel.
func (m Stage1Model) renderMain() string {
	if len(m.responses) == 0 {
		return ""
	}
	if m.selected >= len(m.responses) {
		// rendering never indexes past the current list
		return ""
	}

	tabs := make([]string, 0, len(m.responses))
	for i, resp := range m.responses {
		style := tabStyle
		if i == m.selected {
			style = tabActiveStyle
		}
		tabs = append(tabs, zone.Mark(tabZoneID(i), style.Render(models.TabLabel(resp.Model))))
	}
	tabRow := tabsStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))

	selected := m.responses[m.selected]
	name := modelNameStyle.Render(selected.Model)

	body, err := render.Markdown(selected.Response, m.renderOpts.WithWidth(m.contentWidth()))
	if err != nil {
		// degrade to the raw markdown text
		body = selected.Response
	}
	content := tabContentStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		name,
		responseTextStyle.Render(strings.TrimRight(body, "\n")),
	))

	sections := []string{tabRow, content}
	if panel := m.renderContextPanel(); panel != "" {
		sections = append(sections, panel)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderContextPanel renders the collapsible source list. No sources
// means no panel at all.
func (m Stage1Model) renderContextPanel() string {
	if len(m.sources) == 0 {
		return ""
	}

	arrow := "▸"
	if m.contextOpen {
		arrow = "▾"
	}
	header := zone.Mark(contextHeaderZoneID,
		contextHeaderStyle.Render(fmt.Sprintf("%s Context Sources (%d)", arrow, len(m.sources))))

	if !m.contextOpen {
		return contextPanelStyle.Render(header)
	}

	items := make([]string, 0, len(m.sources))
	for i, src := range m.sources {
		items = append(items, renderContextItem(i, src))
	}
	list := contextListStyle.Render(lipgloss.JoinVertical(lipgloss.Left, items...))

	return contextPanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, list))
}

// renderContextItem renders one source with the documented fallbacks:
// absent fields either get literal placeholder text (date, title,
// outlet) or are omitted outright (summary, link).
func renderContextItem(i int, src models.ContextSource) string {
	date := src.PublishedAt
	if date == "" {
		date = unknownDate
	}

	title := src.Title
	if title == "" {
		title = untitled
	}
	outlet := src.Source
	if outlet == "" {
		outlet = unknownOutlet
	}

	lines := []string{
		contextLabelStyle.Render(fmt.Sprintf("Source #%d", i+1)) + "  " + contextMetaStyle.Render(date),
		contextTitleStyle.Render(title + " — " + outlet),
	}
	if src.Summary != "" {
		lines = append(lines, contextSummaryStyle.Render(src.Summary))
	}
	if src.URL != "" {
		lines = append(lines, contextLinkStyle.Render(termenv.Hyperlink(src.URL, "Read original article")))
	}

	return contextItemStyle.Render(strings.Join(lines, "\n"))
}

// statusBar renders the key hints and any transient status message.
func (m Stage1Model) statusBar() string {
	hints := []string{
		statusKeyStyle.Render("←/→") + statusDescStyle.Render(" switch"),
		statusKeyStyle.Render("1-9") + statusDescStyle.Render(" jump"),
		statusKeyStyle.Render("c") + statusDescStyle.Render(" context"),
		statusKeyStyle.Render("y") + statusDescStyle.Render(" copy"),
		statusKeyStyle.Render("q") + statusDescStyle.Render(" quit"),
	}
	bar := strings.Join(hints, statusDescStyle.Render(" · "))
	if m.statusMsg != "" {
		bar += statusDescStyle.Render("  ") + loadingStyle.Render(m.statusMsg)
	}
	return statusBarStyle.Render(bar)
}

// copySelected puts the selected response's raw markdown on the system
// clipboard.
func (m *Stage1Model) copySelected() {
	if len(m.responses) == 0 {
		return
	}
	selected := m.responses[m.selected]
	if err := clipboard.WriteAll(selected.Response); err != nil {
		m.statusMsg = "copy failed"
		return
	}
	m.statusMsg = fmt.Sprintf("copied %s", models.TabLabel(selected.Model))
}

// contentWidth is the wrap width for the markdown body.
func (m Stage1Model) contentWidth() int {
	if m.width == 0 {
		if m.renderOpts.Width > 0 {
			return m.renderOpts.Width
		}
		return 80
	}
	w := m.width - 6
	if w < 20 {
		w = 20
	}
	return w
}

// RunStage1 opens the stage-1 view and blocks until the user quits.
func RunStage1(responses []models.Response, sources []models.ContextSource, opts render.Options) error {
	m := NewStage1Model(responses, sources, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
