package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/questgen/internal/cli/formatter"
	"github.com/alexanderramin/questgen/internal/ranking"
	"github.com/alexanderramin/questgen/internal/service"
)

func newExploreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Type a description and watch the ranking update live",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("explore needs an interactive terminal")
			}
			m := newExploreModel(cmd.Context(), app.Quests, app.Config.DefaultLimit)
			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if chosen := final.(exploreModel).chosen; chosen != nil && chosen.Template != nil {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTemplate(chosen.Template))
			}
			return nil
		},
	}
}

// rankedMsg carries the ranking of one query back to the model.
type rankedMsg struct {
	query      string
	candidates []ranking.Candidate
	err        error
}

// exploreModel re-ranks on every edit. Results for a query that is no
// longer in the input are dropped.
type exploreModel struct {
	ctx    context.Context
	quests service.QuestService
	limit  int

	input      textinput.Model
	query      string
	candidates []ranking.Candidate
	cursor     int
	err        error
	chosen     *ranking.Candidate
}

func newExploreModel(ctx context.Context, quests service.QuestService, limit int) exploreModel {
	ti := textinput.New()
	ti.Placeholder = "예: 퇴근하고 집 정리 좀"
	ti.Prompt = formatter.StylePurple.Render("quest") + " " + formatter.Dim("❯") + " "
	ti.CharLimit = 200
	ti.Focus()
	return exploreModel{ctx: ctx, quests: quests, limit: limit, input: ti}
}

func (m exploreModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m exploreModel) rank(query string) tea.Cmd {
	return func() tea.Msg {
		c, err := m.quests.Rank(m.ctx, query, m.limit)
		return rankedMsg{query: query, candidates: c, err: err}
	}
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.cursor < len(m.candidates) {
				c := m.candidates[m.cursor]
				m.chosen = &c
			}
			return m, tea.Quit
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.KeyDown:
			if m.cursor < len(m.candidates)-1 {
				m.cursor++
			}
			return m, nil
		}

	case rankedMsg:
		if msg.query != m.query {
			return m, nil
		}
		m.candidates, m.err, m.cursor = msg.candidates, msg.err, 0
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := strings.TrimSpace(m.input.Value()); q != m.query {
		m.query = q
		if q == "" {
			m.candidates, m.cursor = nil, 0
			return m, cmd
		}
		return m, tea.Batch(cmd, m.rank(q))
	}
	return m, cmd
}

func (m exploreModel) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("  " + m.err.Error()))
	case m.query == "":
		b.WriteString(formatter.Dim("  Describe what you need to do."))
	case len(m.candidates) == 0:
		b.WriteString(formatter.Dim("  No matching templates."))
	default:
		for i, c := range m.candidates {
			marker := "  "
			title := c.Title
			if i == m.cursor {
				marker = formatter.StyleHeader.Render("❯ ")
				title = formatter.Bold(title)
			}
			b.WriteString(fmt.Sprintf("%s%s %s %s\n", marker, title,
				formatter.Dim(formatter.FormatMinutes(c.EstimatedTimeMin)),
				formatter.RenderConfidence(c.RerankConfidence, 8)))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(formatter.Dim("  ↑/↓ move · enter choose · esc quit"))
	return b.String()
}
