package concept

import (
	"testing"

	"github.com/alexanderramin/questgen/internal/domain"
	"github.com/alexanderramin/questgen/internal/route"
	"github.com/alexanderramin/questgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_KeywordPatternLabelAndTag(t *testing.T) {
	idx := testutil.LoadFixtureDataset(t)

	scores := Score(idx, "빨래 개기")

	require.Len(t, scores, 1)
	// keyword 3 + pattern 4 + label 2 + tag 1.2
	assert.InDelta(t, 10.2, scores["c_laundry"], 1e-9)
}

func TestScore_NegativePatternSubtracts(t *testing.T) {
	idx := testutil.LoadFixtureDataset(t)

	plain := Score(idx, "빨래방 개업")["c_laundry"]
	negative := Score(idx, "빨래방 창업")["c_laundry"]

	assert.InDelta(t, 6.2, plain, 1e-9)
	assert.InDelta(t, plain+NegativePatternWeight, negative, 1e-9)
}

func TestScore_StateHintAddsBonus(t *testing.T) {
	idx := testutil.LoadFixtureDataset(t)

	scores := Score(idx, "시작이 안 돼")

	assert.InDelta(t, 3+2+1.2+StateHintWeight, scores["c_start"], 1e-9)
}

func TestScore_TagOverlapFallback(t *testing.T) {
	idx := testutil.LoadFixtureDataset(t)

	scores := Score(idx, "피로 누적")

	assert.Equal(t, Scores{"state_fatigued": TagOverlapWeight}, scores)
}

func TestScore_EmptyInput(t *testing.T) {
	idx := testutil.LoadFixtureDataset(t)

	assert.Empty(t, Score(idx, ""))
	assert.Empty(t, Score(idx, "   "))
}

func TestAggregate_FanOutByRank(t *testing.T) {
	idx := testutil.LoadFixtureDataset(t)

	clusters := Aggregate(idx, Scores{"c_laundry": 10}, route.Profile{})

	assert.InDelta(t, 10, clusters["laundry_reset"], 1e-9)
	assert.InDelta(t, 8, clusters["home_tidy"], 1e-9)
	assert.InDelta(t, 10, clusters.Max(), 1e-9)
}

func TestAggregate_SumsAcrossConcepts(t *testing.T) {
	idx := testutil.LoadFixtureDataset(t)

	clusters := Aggregate(idx, Scores{"c_laundry": 1, "c_tidy": 1}, route.Profile{})

	assert.InDelta(t, 1.8, clusters["laundry_reset"], 1e-9)
	assert.InDelta(t, 1.8, clusters["home_tidy"], 1e-9)
}

func TestAggregate_DomainFallback(t *testing.T) {
	idx := testutil.LoadFixtureDataset(t)
	prof := route.Profile{
		Attributes:  route.Attributes{Domain: domain.DomainLifeOps},
		QuickMode:   true,
		SignalCount: 1,
	}

	clusters := Aggregate(idx, Scores{}, prof)
	assert.Equal(t, ClusterScores{"laundry_reset": QuickFallbackScore, "home_tidy": QuickFallbackScore}, clusters)

	prof.QuickMode = false
	clusters = Aggregate(idx, Scores{}, prof)
	assert.Equal(t, DefaultFallbackScore, clusters["home_tidy"])

	prof.SignalCount = 0
	assert.Empty(t, Aggregate(idx, Scores{}, prof), "no signal means no fallback")
}

func TestRankWeight(t *testing.T) {
	assert.Equal(t, FirstClusterWeight, rankWeight(0))
	assert.Equal(t, SecondClusterWeight, rankWeight(1))
	assert.Equal(t, OtherClusterWeight, rankWeight(2))
	assert.Equal(t, OtherClusterWeight, rankWeight(7))
}
