package mobile

import (
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crackInsightBackend/internal/adapter/potfile"
	"crackInsightBackend/internal/config"
	"crackInsightBackend/internal/core/domain"
	"crackInsightBackend/internal/core/service"
)

type decoded struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, response string) decoded {
	t.Helper()
	var d decoded
	require.NoError(t, json.Unmarshal([]byte(response), &d))
	return d
}

func newTestBinding(pairs []domain.RecoveredPair, summaries []domain.HistoricalRunSummary) *MobileBinding {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	repo := potfile.NewMemoryRepository(pairs, summaries)
	return NewMobileBinding(service.NewAnalysisService(repo, nil, config.DefaultConfig(), logger, nil))
}

func TestAnalyzePotfile(t *testing.T) {
	binding := newTestBinding(nil, nil)

	resp := decode(t, binding.AnalyzePotfile("a:monkey1\nb:monkey1\nc:$HEX[41424344]\n", "0", 1))
	require.True(t, resp.Success, resp.Error)

	var result domain.AnalysisResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, uint64(3), result.Total)
	assert.Equal(t, 1e9, result.ThroughputHz)
	assert.Equal(t, "?l?l?l?l?l?l?d", result.Masks[0].Mask)
	assert.Equal(t, uint64(2), result.Masks[0].Count)
}

func TestAnalysisFlow(t *testing.T) {
	pairs := []domain.RecoveredPair{
		{Hash: "a", PlaintextRaw: "sunshine", AlgorithmID: "0"},
		{Hash: "b", PlaintextRaw: "2024sunshine", AlgorithmID: "0"},
		{Hash: "c", PlaintextRaw: "4321", AlgorithmID: "100"},
	}
	binding := newTestBinding(pairs, nil)

	started := decode(t, binding.StartAnalysis(`{"filter":{"algorithmId":"0"},"hashrateGHs":1}`))
	require.True(t, started.Success, started.Error)
	var job domain.AnalysisJob
	require.NoError(t, json.Unmarshal(started.Data, &job))

	require.Eventually(t, func() bool {
		var current domain.AnalysisJob
		resp := decode(t, binding.GetJob(job.ID))
		if !resp.Success || json.Unmarshal(resp.Data, &current) != nil {
			return false
		}
		return current.Status == domain.StatusComplete
	}, 5*time.Second, 10*time.Millisecond)

	var rules decoded
	require.Eventually(t, func() bool {
		rules = decode(t, binding.RuleFile())
		return rules.Success
	}, 5*time.Second, 10*time.Millisecond)
	var body string
	require.NoError(t, json.Unmarshal(rules.Data, &body))
	assert.Contains(t, body, "^4 ^2 ^0 ^2 # prefix: 2024\n")

	selected := decode(t, binding.SelectMasks(`{"budget":"5m","hashrateGHs":1,"sortMode":"optindex"}`))
	require.True(t, selected.Success, selected.Error)
	var selection domain.MaskSelectionResult
	require.NoError(t, json.Unmarshal(selected.Data, &selection))
	assert.Equal(t, []string{"?l?l?l?l?l?l?l?l"}, selection.SelectedMasks)
	assert.Equal(t, uint64(1), selection.CoveredCount)
}

func TestBindingErrors(t *testing.T) {
	binding := newTestBinding(nil, nil)

	tests := []struct {
		name     string
		response string
		wantErr  string
	}{
		{"Malformed analysis request", binding.StartAnalysis("{"), "decoding request"},
		{"Negative hashrate", binding.StartAnalysis(`{"hashrateGHs":-2}`), string(domain.ErrInvalidThroughput)},
		{"Unknown job", binding.GetJob("nope"), string(domain.ErrJobNotFound)},
		{"Bad budget", binding.SelectMasks(`{"budget":"later","hashrateGHs":1}`), string(domain.ErrInvalidBudget)},
		{"Nothing analyzed", binding.RuleFile(), string(domain.ErrNoResult)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := decode(t, tt.response)
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, tt.wantErr)
		})
	}
}

func TestSuggestHashrate(t *testing.T) {
	binding := newTestBinding(nil, []domain.HistoricalRunSummary{
		{AlgorithmID: "1000", AttackMode: 3, AvgHashrate: 4e10},
	})

	resp := decode(t, binding.SuggestHashrate("1000"))
	require.True(t, resp.Success)
	assert.JSONEq(t, `{"value":40,"detected":true,"source":"bruteforce"}`, string(resp.Data))
}

func TestResponses(t *testing.T) {
	assert.JSONEq(t, `{"success":false,"error":"boom"}`, createErrorResponse(errors.New("boom")))
	assert.JSONEq(t, `{"success":true,"data":[1,2]}`, createSuccessResponse([]int{1, 2}))
	assert.JSONEq(t, `{"success":false,"error":"json: unsupported type: chan int"}`, createSuccessResponse(make(chan int)))
}

func TestAnalyzePotfileThenMasksAndRules(t *testing.T) {
	binding := newTestBinding(nil, nil)

	analyzed := decode(t, binding.AnalyzePotfile("h1:password1\nh2:password2\n", "0", 10))
	require.True(t, analyzed.Success, analyzed.Error)

	selected := decode(t, binding.SelectMasks(`{"budget":"1h","hashrateGHs":10}`))
	require.True(t, selected.Success, selected.Error)
	var selection domain.DisplayedSelection
	require.NoError(t, json.Unmarshal(selected.Data, &selection))
	assert.Equal(t, []string{"?l?l?l?l?l?l?l?l?d"}, selection.SelectedMasks)
	assert.Equal(t, uint64(2), selection.Total)
	assert.InDelta(t, 1.0, selection.Coverage, 1e-9)

	rules := decode(t, binding.RuleFile())
	require.True(t, rules.Success, rules.Error)
	var body string
	require.NoError(t, json.Unmarshal(rules.Data, &body))
	assert.Contains(t, body, "$1 # suffix: 1\n")
	assert.Contains(t, body, "$2 # suffix: 2\n")
}
