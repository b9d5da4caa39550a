package errorhandling

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Border string
	Title  string
	Text   string
	Muted  string
}

var (
	darkPalette  = palette{Border: "#ff5555", Title: "#ff5555", Text: "#f8f8f2", Muted: "#6272a4"}
	lightPalette = palette{Border: "#d7005f", Title: "#d7005f", Text: "#1c1c1c", Muted: "#808080"}
)

type screenStyles struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Hint  lipgloss.Style
}

func stylesFor(theme string) screenStyles {
	p := darkPalette
	if theme == "light" {
		p = lightPalette
	}
	return screenStyles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Title)).
			Bold(true),
		Body: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),
	}
}

type screenKeys struct {
	Dismiss key.Binding
	Up      key.Binding
	Down    key.Binding
}

func defaultScreenKeys() screenKeys {
	return screenKeys{
		Dismiss: key.NewBinding(
			key.WithKeys("q", "esc", "enter", "ctrl+c"),
			key.WithHelp("q/enter", "Close"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "Scroll down"),
		),
	}
}

// errorModel shows a startup error until dismissed.
type errorModel struct {
	title    string
	message  string
	styles   screenStyles
	keys     screenKeys
	viewport viewport.Model
	ready    bool
	closed   bool
}

func newErrorModel(kind Kind, err error, theme string) errorModel {
	return errorModel{
		title:    kind.Title(),
		message:  err.Error(),
		styles:   stylesFor(theme),
		keys:     defaultScreenKeys(),
		viewport: viewport.New(80, 20),
	}
}

func (m errorModel) Init() tea.Cmd {
	return tea.SetWindowTitle("Neovide - " + m.title)
}

func (m errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = max(msg.Width-4, 10)
		m.viewport.Height = max(msg.Height-6, 3)
		m.viewport.SetContent(m.styles.Body.Render(wrap(m.message, m.viewport.Width)))
		m.ready = true
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Dismiss):
			m.closed = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.viewport.ScrollUp(1)
		case key.Matches(msg, m.keys.Down):
			m.viewport.ScrollDown(1)
		}
		return m, nil
	}
	return m, nil
}

func (m errorModel) View() string {
	body := m.message
	if m.ready {
		body = m.viewport.View()
	}
	hint := m.keys.Dismiss.Help().Key + " " + m.keys.Dismiss.Help().Desc + "  ·  " +
		m.keys.Down.Help().Key + "/" + m.keys.Up.Help().Key + " scroll"

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(m.styles.Hint.Render(hint))
	return m.styles.Frame.Render(b.String())
}

func wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(text)
}
