package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tablerag/internal/service"
)

// exitKeyword ends the loop on a case-insensitive exact match.
const exitKeyword = "exit"

// AnswerPort is the TUI-facing subset of the answer service.
type AnswerPort interface {
	Ask(ctx context.Context, query string) (*service.Result, error)
}

// Model is the Bubble Tea model for the question-answering loop.
type Model struct {
	service   AnswerPort
	input     textinput.Model
	viewport  viewport.Model
	summary   string
	status    string
	ready     bool
	lastQuery string
}

// New creates a new TUI model instance.
func New(service AnswerPort, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the passengers and press Enter (type 'exit' to quit)"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: service, input: ti, viewport: vp, summary: summary, status: "Index ready. Ask a question."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := answerBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 3 + qh // header + summary + status + query frame
		vh := msg.Height - reserved - 1
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				// blank input is silently skipped
				return m, nil
			}
			if strings.EqualFold(q, exitKeyword) {
				return m, tea.Quit
			}
			m.input.Reset()
			m.lastQuery = q
			m.status = "Thinking..."
			res, err := m.service.Ask(context.Background(), q)
			if err != nil {
				m.status = "Error: " + err.Error()
				return m, nil
			}
			m.status = fmt.Sprintf("Answered %q (state: %s)", q, res.State)
			m.viewport.SetContent(renderResult(res))
			m.viewport.GotoTop()
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current answer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("TableRAG")
	summary := summaryStyle.Render(m.summary)
	answer := answerBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + summary + "\n" + answer + "\n" + input + "\n" + status
}

func renderResult(res *service.Result) string {
	var b strings.Builder
	b.WriteString(res.Answer)
	if res.Bundle != nil && len(res.Bundle.Results) > 0 {
		b.WriteString("\n\n")
		b.WriteString(contextHeaderStyle.Render("Retrieved context"))
		for _, r := range res.Bundle.Results {
			b.WriteString(fmt.Sprintf("\n\n[chunk %d, distance %.4f]\n%s", r.ID, r.Distance, r.Chunk.Text))
		}
	}
	return b.String()
}

var (
	answerBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	summaryStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	contextHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
