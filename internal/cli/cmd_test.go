package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/questgen/internal/config"
	"github.com/alexanderramin/questgen/internal/repository"
	"github.com/alexanderramin/questgen/internal/service"
	"github.com/alexanderramin/questgen/internal/testutil"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// testApp wires an App over the fixture dataset and an in-memory store.
// HOME is redirected so no user config file leaks into the run.
func testApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	reg := prometheus.NewRegistry()
	metrics := service.NewMetricsObserver(reg)

	quests, err := service.NewQuestService(testutil.FixtureSource(), service.QuestServiceOptions{CacheSize: 8}, metrics)
	require.NoError(t, err)

	database := testutil.NewTestDB(t)
	datasets := service.NewDatasetService(testutil.NewTestUoW(database), repository.NewSQLiteDatasetImportRepo(database), metrics)

	return &App{Quests: quests, Datasets: datasets, Metrics: reg}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stripANSI(buf.String()), err
}

func TestRankCmd_Text(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "rank", "소파에", "쌓인", "빨래")
	require.NoError(t, err)
	assert.Contains(t, out, "CANDIDATES")
	assert.Contains(t, out, "★ 소파에 쌓인 빨래")
	assert.Contains(t, out, "t_sofa_laundry")
}

func TestRankCmd_JSONRespectsLimit(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "rank", "-o", "json", "-n", "2", "빨래")
	require.NoError(t, err)

	var got struct {
		Query      string `json:"query"`
		Candidates []struct {
			ID               string  `json:"id"`
			RerankConfidence float64 `json:"rerankConfidence"`
		} `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "빨래", got.Query)
	assert.NotEmpty(t, got.Candidates)
	assert.LessOrEqual(t, len(got.Candidates), 2)
}

func TestRankCmd_ExplainYAML(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "rank", "--explain", "-o", "yaml", "-n", "1", "5분 스트레칭")
	require.NoError(t, err)
	assert.Contains(t, out, "id: t_stretch")
	assert.Contains(t, out, "breakdown:")
	assert.Contains(t, out, "isExactTitleMatch: true")
}

func TestRankCmd_NoMatches(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "rank", "xq", "zj")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching templates.")
}

func TestRankCmd_RequiresDescription(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "rank", "  ")
	assert.Error(t, err)
}

func TestSelectCmd_JSON(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "select", "-o", "json", "여권과 티켓 확인")
	require.NoError(t, err)

	var got selectionView
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "exact_title", got.Rule)
	require.NotNil(t, got.Candidate)
	assert.Equal(t, "t_trip_docs", got.Candidate.ID)
}

func TestSelectCmd_TextShowsMissions(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "select", "회사 가기 싫어")
	require.NoError(t, err)
	assert.Contains(t, out, "SELECTED QUEST")
	assert.Contains(t, out, "딱 2분만 시작하기")
	assert.Contains(t, out, "할 일 목록 열기")
}

func TestShowCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "show", "t_trip_pack")
	require.NoError(t, err)
	assert.Contains(t, out, "여행 짐 싸기")
	assert.Contains(t, out, "MISSIONS")
	assert.Contains(t, out, "3. 세면도구 챙기기")

	_, err = executeCmd(t, app, "show", "t_nope")
	assert.ErrorIs(t, err, service.ErrTemplateNotFound)
}

func TestProfileCmd_JSON(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "profile", "-o", "json", "빨레", "10분")
	require.NoError(t, err)

	var got profileView
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.PreferredMinutes)
	assert.Equal(t, 10, *got.PreferredMinutes)
	assert.NotNil(t, got.Explicit)
}

func TestInvalidOutputFormat(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "rank", "-o", "xml", "빨래")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestMetricsDump(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "--metrics", "select", "빨래")
	require.NoError(t, err)
	assert.Contains(t, out, "questgen_service_use_cases_total")
	assert.Contains(t, out, `questgen_selector_decisions_total{rule=`)
}

func TestDatasetCheckCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "dataset", "check", testutil.FixtureDir())
	require.NoError(t, err)
	assert.Contains(t, out, "✔ valid")
	assert.Contains(t, out, "Templates: 12")
	assert.Contains(t, out, "1 lexicon pattern(s) failed to compile")
}

func TestDatasetCheckCmd_Problems(t *testing.T) {
	app := testApp(t)
	dir := testutil.CopyFixtureDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "lexicon.json")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lexicon.json"), []byte(`{"bogus": true}`), 0o644))

	out, err := executeCmd(t, app, "dataset", "check", dir)
	require.Error(t, err)
	assert.Contains(t, out, "problem(s)")
	assert.Contains(t, out, "lexicon.json")
}

func TestDatasetImportAndHistoryCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "dataset", "import", testutil.FixtureDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Imported dataset")

	out, err = executeCmd(t, app, "dataset", "history", "-o", "json")
	require.NoError(t, err)
	var history []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &history))
	require.Len(t, history, 1)
	assert.Equal(t, float64(12), history[0]["templateCount"])
}

func TestDatasetHistoryCmd_Empty(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "dataset", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No dataset imports recorded.")
}

func TestDatasetStatsCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "dataset", "stats", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "templates: 12")
	assert.Contains(t, out, "invalidPatterns: 1")
}

func TestExploreCmd_RequiresTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "explore")
	assert.ErrorContains(t, err, "interactive terminal")
}

func TestBootstrapReceivesResolvedConfig(t *testing.T) {
	app := testApp(t)
	quests := app.Quests
	app.Quests = nil

	var seenLimit int
	app.Bootstrap = func(cfg config.Config) error {
		seenLimit = cfg.DefaultLimit
		app.Quests = quests
		return nil
	}

	_, err := executeCmd(t, app, "rank", "-n", "3", "빨래")
	require.NoError(t, err)
	assert.Equal(t, 3, seenLimit)
}
