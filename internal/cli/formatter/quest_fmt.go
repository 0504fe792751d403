package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/questgen/internal/domain"
	"github.com/alexanderramin/questgen/internal/ranking"
	"github.com/alexanderramin/questgen/internal/route"
)

const confidenceBarWidth = 10

// FormatCandidates renders a ranked candidate table for query.
func FormatCandidates(query string, candidates []ranking.Candidate) string {
	var b strings.Builder
	b.WriteString(Header("Candidates"))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("  query: %q", query)))
	b.WriteString("\n\n")

	if len(candidates) == 0 {
		b.WriteString(Dim("  No matching templates."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(candidates))
	for i, c := range candidates {
		title := c.Title
		if c.IsExactTitleMatch {
			title = StyleGreen.Render("★ ") + title
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			title,
			c.Intent,
			FormatMinutes(c.EstimatedTimeMin),
			DifficultyPips(c.Difficulty),
			Score(c.TotalScore),
			RenderConfidence(c.RerankConfidence, confidenceBarWidth),
			RenderConfidence(c.RouteConfidence, confidenceBarWidth),
			Dim(c.ID),
		})
	}
	b.WriteString(Table{
		Headers:    []string{"#", "Title", "Intent", "Time", "Diff", "Score", "Rerank", "Route", "ID"},
		Rows:       rows,
		RightAlign: map[int]bool{0: true, 3: true, 5: true},
	}.Render())
	return b.String()
}

// FormatSelection renders the selector decision. An ambiguous selection
// lists the top of the pool so the user can pick by id.
func FormatSelection(query string, sel ranking.Selection) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  Rule:  %s\n", RuleIndicator(sel.Rule)))

	if sel.Candidate != nil {
		c := sel.Candidate
		b.WriteString(fmt.Sprintf("  Quest: %s %s\n", Bold(c.Title), Dim("("+c.ID+")")))
		b.WriteString(fmt.Sprintf("  Time:  %s   Difficulty: %s\n", FormatMinutes(c.EstimatedTimeMin), DifficultyPips(c.Difficulty)))
		b.WriteString(fmt.Sprintf("  Rerank %s\n", RenderConfidence(c.RerankConfidence, confidenceBarWidth)))
		b.WriteString(fmt.Sprintf("  Route  %s\n", RenderConfidence(c.RouteConfidence, confidenceBarWidth)))
		if c.Template != nil {
			b.WriteString("\n")
			b.WriteString(formatMissions(c.Template.Missions))
		}
		return RenderBox("Selected quest", b.String())
	}

	if len(sel.Pool) == 0 {
		b.WriteString(Dim("  Nothing in the dataset matches this description.\n"))
		return RenderBox("No quest", b.String())
	}
	b.WriteString(StyleYellow.Render("  Not confident enough to choose. Closest templates:"))
	b.WriteString("\n")
	for i, c := range sel.Pool[:min(3, len(sel.Pool))] {
		b.WriteString(fmt.Sprintf("    %d. %s %s\n", i+1, c.Title, Dim(c.ID)))
	}
	b.WriteString(Dim(fmt.Sprintf("\n  questgen show <ID>, or questgen pick %q", query)))
	return RenderBox("Ambiguous", b.String())
}

// FormatTemplate renders one dataset template with its missions.
func FormatTemplate(t *domain.Template) string {
	var b strings.Builder
	b.WriteString(Header("Template"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  ID:         %s\n", t.ID))
	b.WriteString(fmt.Sprintf("  Title:      %s\n", Bold(t.Title)))
	b.WriteString(fmt.Sprintf("  Cluster:    %s\n", t.ClusterKey))
	b.WriteString(fmt.Sprintf("  Type:       %s\n", t.Type))
	b.WriteString(fmt.Sprintf("  Time:       %s (%d-%d)\n", FormatMinutes(t.EstimatedMinutes()), t.Time.Min, t.Time.Max))
	b.WriteString(fmt.Sprintf("  Difficulty: %s\n", DifficultyPips(t.Difficulty())))
	if len(t.Contexts) > 0 {
		b.WriteString(fmt.Sprintf("  Contexts:   %s\n", strings.Join(t.Contexts, ", ")))
	}
	if len(t.ConceptIDs) > 0 {
		b.WriteString(fmt.Sprintf("  Concepts:   %s\n", Dim(strings.Join(t.ConceptIDs, ", "))))
	}
	b.WriteString("\n")
	b.WriteString(Header("Missions"))
	b.WriteString("\n")
	b.WriteString(formatMissions(t.Missions))
	return b.String()
}

func formatMissions(missions []domain.Mission) string {
	var b strings.Builder
	for i, m := range missions {
		b.WriteString(fmt.Sprintf("  %d. %s %s\n", i+1, m.Action, Dim(FormatMinutes(m.EstMinutes))))
	}
	return b.String()
}

// FormatProfile renders a route profile; defaulted axes are dimmed.
func FormatProfile(query string, p route.Profile) string {
	axis := func(v string, explicit bool) string {
		if explicit {
			return StyleGreen.Render(v)
		}
		return Dim(v + " (default)")
	}

	var b strings.Builder
	b.WriteString(Header("Route profile"))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("  query: %q", query)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Domain:   %s\n", axis(string(p.Domain), p.ExplicitDomain)))
	b.WriteString(fmt.Sprintf("  Persona:  %s\n", axis(string(p.Persona), p.ExplicitPersona)))
	b.WriteString(fmt.Sprintf("  Type:     %s\n", axis(string(p.Type), p.ExplicitType)))
	b.WriteString(fmt.Sprintf("  State:    %s\n", axis(string(p.State), p.ExplicitState)))
	b.WriteString(fmt.Sprintf("  Time:     %s\n", axis(string(p.TimeContext), p.ExplicitTime)))

	pref := Dim("none")
	if p.PreferredMinutes != nil {
		pref = FormatMinutes(*p.PreferredMinutes)
	}
	b.WriteString(fmt.Sprintf("  Minutes:  %s\n", pref))
	var modes []string
	if p.QuickMode {
		modes = append(modes, "quick")
	}
	if p.DeepMode {
		modes = append(modes, "deep")
	}
	if len(modes) > 0 {
		b.WriteString(fmt.Sprintf("  Mode:     %s\n", strings.Join(modes, ", ")))
	}
	if len(p.Contexts) > 0 {
		b.WriteString(fmt.Sprintf("  Contexts: %s\n", strings.Join(p.Contexts, ", ")))
	}
	b.WriteString(fmt.Sprintf("  Signals:  %d\n", p.SignalCount))
	return b.String()
}

// FormatBreakdown renders every ranking signal for one template.
func FormatBreakdown(bd *ranking.Breakdown) string {
	kept := StyleGreen.Render("kept")
	if !bd.Kept {
		kept = StyleRed.Render("filtered out")
	}

	rows := [][]string{
		{"similarity", Score(bd.Similarity)},
		{"title similarity", Score(bd.TitleSimilarity)},
		{"mission similarity", Score(bd.MissionSimilarity)},
		{"token overlap", Score(bd.TokenOverlap)},
		{"cluster score", Score(bd.ClusterScore)},
		{"cluster normalized", Score(bd.ClusterNormalized)},
		{"concept sum", Score(bd.ConceptSum)},
		{"context bonus", Score(bd.ContextBonus)},
		{"mode bonus", Score(bd.ModeBonus)},
		{"preferred bonus", Score(bd.PreferredBonus)},
		{"template score", Score(bd.TemplateScore)},
		{"route alignment", Score(bd.RouteAlignment)},
		{"route confidence", Score(bd.RouteConfidence)},
		{"rerank confidence", Score(bd.RerankConfidence)},
		{"signal score", Score(bd.SignalScore)},
		{"total score", Bold(Score(bd.TotalScore))},
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s", Bold(bd.TemplateID), Dim("("+kept+")")))
	if bd.IsExactTitleMatch {
		b.WriteString(" " + StyleGreen.Render("★ exact title"))
	}
	b.WriteString("\n")
	b.WriteString(Table{Headers: []string{"Signal", "Value"}, Rows: rows, RightAlign: map[int]bool{1: true}}.Render())
	return b.String()
}
