package formatter

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/questgen/internal/dataset"
	"github.com/alexanderramin/questgen/internal/domain"
	"github.com/alexanderramin/questgen/internal/ranking"
	"github.com/alexanderramin/questgen/internal/service"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func plain(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{-3, "0m"},
		{5, "5m"},
		{60, "1h"},
		{95, "1h 35m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.in), "minutes %d", tt.in)
	}
}

func TestDifficultyPips_Clamped(t *testing.T) {
	assert.Equal(t, "●○○", plain(DifficultyPips(0)))
	assert.Equal(t, "●●○", plain(DifficultyPips(2)))
	assert.Equal(t, "●●●", plain(DifficultyPips(7)))
}

func TestRenderConfidence(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]  50%", plain(RenderConfidence(0.5, 10)))
	assert.Equal(t, "[░░░░░░░░░░]   0%", plain(RenderConfidence(-1, 10)))
	assert.Equal(t, "[██████████] 100%", plain(RenderConfidence(1.7, 10)))
	assert.Equal(t, "[█░]  50%", plain(RenderConfidence(0.5, 0)))
}

func TestConfidenceStyle_Gates(t *testing.T) {
	assert.Equal(t, StyleGreen.GetForeground(), ConfidenceStyle(ranking.SelectRouteStrong).GetForeground())
	assert.Equal(t, StyleYellow.GetForeground(), ConfidenceStyle(ranking.SelectSafeMinRoute).GetForeground())
	assert.Equal(t, StyleRed.GetForeground(), ConfidenceStyle(0).GetForeground())
}

func TestTable_Alignment(t *testing.T) {
	out := plain(Table{
		Headers:    []string{"ID", "N"},
		Rows:       [][]string{{"a", "7"}, {"long-id", "123"}},
		RightAlign: map[int]bool{1: true},
	}.Render())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID         N", lines[0])
	assert.Equal(t, "───────  ───", lines[1])
	assert.Equal(t, "a          7", lines[2])
	assert.Equal(t, "long-id  123", lines[3])
}

func TestTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestTable_ShortRowsPadded(t *testing.T) {
	out := plain(RenderTable([]string{"A", "B"}, [][]string{{"only"}}))
	assert.Contains(t, out, "only")
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 3)
}

func TestFormatCandidates_Empty(t *testing.T) {
	out := plain(FormatCandidates("xq zj", []ranking.Candidate{}))
	assert.Contains(t, out, "CANDIDATES")
	assert.Contains(t, out, `query: "xq zj"`)
	assert.Contains(t, out, "No matching templates.")
}

func TestFormatCandidates_MarksExactTitle(t *testing.T) {
	out := plain(FormatCandidates("소파에 쌓인 빨래", []ranking.Candidate{
		{ID: "t_sofa_laundry", Title: "소파에 쌓인 빨래", Intent: "빨래 정리", EstimatedTimeMin: 5, Difficulty: 1, TotalScore: 10123.4, IsExactTitleMatch: true},
		{ID: "t_fold", Title: "빨래 개기", Intent: "빨래 정리", EstimatedTimeMin: 10, Difficulty: 2, TotalScore: 80},
	}))
	assert.Contains(t, out, "★ 소파에 쌓인 빨래")
	assert.NotContains(t, out, "★ 빨래 개기")
	assert.Contains(t, out, "10123.40")
	assert.Less(t, strings.Index(out, "t_sofa_laundry"), strings.Index(out, "t_fold"))
}

func TestFormatSelection(t *testing.T) {
	chosen := ranking.Candidate{ID: "t_avoid_tiny", Title: "딱 한 줄만", EstimatedTimeMin: 3, Difficulty: 1}

	t.Run("selected", func(t *testing.T) {
		out := plain(FormatSelection("회사 가기 싫어", ranking.Selection{
			Candidate: &chosen,
			Rule:      ranking.RuleSafeDefault,
			Pool:      []ranking.Candidate{chosen},
		}))
		assert.Contains(t, out, "SELECTED QUEST")
		assert.Contains(t, out, "딱 한 줄만")
		assert.Contains(t, out, strings.ToUpper(string(ranking.RuleSafeDefault)))
	})

	t.Run("ambiguous", func(t *testing.T) {
		pool := []ranking.Candidate{chosen, {ID: "b", Title: "B"}, {ID: "c", Title: "C"}, {ID: "d", Title: "D"}}
		out := plain(FormatSelection("뭐하지", ranking.Selection{Rule: ranking.RuleAmbiguous, Pool: pool}))
		assert.Contains(t, out, "AMBIGUOUS")
		assert.Contains(t, out, "Not confident enough to choose.")
		assert.Contains(t, out, "3. C")
		assert.NotContains(t, out, "4. D")
	})

	t.Run("nothing", func(t *testing.T) {
		out := plain(FormatSelection("xq", ranking.Selection{Rule: ranking.RuleNoCandidates}))
		assert.Contains(t, out, "NO QUEST")
		assert.Contains(t, out, "Nothing in the dataset matches this description.")
	})
}

func TestFormatCheckResult(t *testing.T) {
	ok := plain(FormatCheckResult("data", &service.CheckResult{
		Stats: dataset.Stats{Concepts: 12, Clusters: 5, Templates: 12, Lexemes: 9, InvalidPatterns: 1},
	}))
	assert.Contains(t, ok, "✔ valid")
	assert.Contains(t, ok, "Templates: 12")
	assert.Contains(t, ok, "Lexemes:   9")
	assert.Contains(t, ok, "1 lexicon pattern(s) failed to compile")

	bad := plain(FormatCheckResult("data", &service.CheckResult{
		Problems: []string{"template t1: unknown cluster \"moon_trip\"", "two\nlines"},
	}))
	assert.Contains(t, bad, "✖ 2 problem(s)")
	assert.Contains(t, bad, "    two\n    lines")
	assert.NotContains(t, bad, "valid")
}

func TestFormatImport_OmitsLexemes(t *testing.T) {
	out := plain(FormatImport(&domain.DatasetImport{ID: "imp-1", Source: "/tmp/data", TemplateCount: 12}))
	assert.Contains(t, out, "Imported dataset imp-1")
	assert.Contains(t, out, "from /tmp/data")
	assert.NotContains(t, out, "Lexemes")
}

func TestFormatImportHistory(t *testing.T) {
	assert.Contains(t, plain(FormatImportHistory(nil)), "No dataset imports recorded.")

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	out := plain(FormatImportHistory([]*domain.DatasetImport{
		{ID: "new", Source: "b", TemplateCount: 12, ImportedAt: now},
		{ID: "old", Source: "a", TemplateCount: 10, ImportedAt: now.Add(-time.Hour)},
	}))
	assert.Contains(t, out, "new (active)")
	assert.NotContains(t, out, "old (active)")
	assert.Less(t, strings.Index(out, "new"), strings.Index(out, "old"))
}

func TestFormatTemplate(t *testing.T) {
	tmpl := &domain.Template{
		ID:         "t_fold",
		Title:      "빨래 개기",
		ClusterKey: "laundry_reset",
		Missions: []domain.Mission{
			{Action: "양말 짝 맞추기", EstMinutes: 3},
			{Action: "수건 개기", EstMinutes: 4},
		},
	}
	out := plain(FormatTemplate(tmpl))
	assert.Contains(t, out, "TEMPLATE")
	assert.Contains(t, out, "MISSIONS")
	assert.Contains(t, out, "  1. 양말 짝 맞추기 3m")
	assert.Contains(t, out, "  2. 수건 개기 4m")
}

func TestSpinner_StopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "importing")
	stop()
	stop()
}
