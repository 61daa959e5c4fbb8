package desktop

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"crackInsightBackend/internal/adapter/potfile"
	"crackInsightBackend/internal/core/algorithm"
	"crackInsightBackend/internal/core/domain"
	"crackInsightBackend/internal/core/service"
	"crackInsightBackend/internal/port"
)

// Report is everything one potfile run produced.
type Report struct {
	Potfile   potfile.Stats              `json:"potfile"`
	Result    *domain.AnalysisResult     `json:"result"`
	Selection domain.MaskSelectionResult `json:"selection"`
	Coverage  float64                    `json:"coverage"`
	Files     []string                   `json:"files"`
}

type DesktopLib struct {
	analysisService port.AnalysisService
	config          *Config
}

func NewDesktopLib(svc port.AnalysisService, cfg *Config) *DesktopLib {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	return &DesktopLib{
		analysisService: svc,
		config:          cfg,
	}
}

// Direct library methods for desktop applications

func (d *DesktopLib) LoadPotfile(path, algorithmID string) ([]domain.RecoveredPair, potfile.Stats, error) {
	return potfile.ReadFile(path, potfile.Options{AlgorithmID: algorithmID})
}

func (d *DesktopLib) Analyze(pairs []domain.RecoveredPair) (*domain.AnalysisResult, error) {
	return d.AnalyzeAt(pairs, d.config.HashrateGHs)
}

// AnalyzeAt analyzes pairs at hashrateGHs; zero uses the service default.
func (d *DesktopLib) AnalyzeAt(pairs []domain.RecoveredPair, hashrateGHs float64) (*domain.AnalysisResult, error) {
	return d.analysisService.Analyze(context.Background(), pairs, service.GigahashToHz(hashrateGHs))
}

// SelectMasks runs the budget selector with the configured budget,
// hashrate, minimum length and ordering.
func (d *DesktopLib) SelectMasks(result *domain.AnalysisResult) (domain.MaskSelectionResult, error) {
	budget, err := service.ParseTimeBudget(d.config.TimeBudget)
	if err != nil {
		return domain.MaskSelectionResult{}, err
	}
	if d.config.HashrateGHs <= 0 {
		return domain.MaskSelectionResult{}, domain.ErrInvalidThroughput
	}
	if !d.config.SortMode.Valid() {
		return domain.MaskSelectionResult{}, domain.ErrInvalidSortMode
	}

	return algorithm.SelectMasks(result.Masks, domain.MaskSelectionRequest{
		TimeBudgetSeconds: budget,
		ThroughputHz:      service.GigahashToHz(d.config.HashrateGHs),
		MinMaskLength:     d.config.MinMaskLength,
		SortMode:          d.config.SortMode,
	}), nil
}

// ProcessPotfile analyzes a potfile and, when SaveResults is set, writes
// <name>.hcmask, <name>.rule and <name>.txt to ResultsPath.
func (d *DesktopLib) ProcessPotfile(path, algorithmID string) (*Report, error) {
	pairs, stats, err := d.LoadPotfile(path, algorithmID)
	if err != nil {
		return nil, err
	}

	result, err := d.Analyze(pairs)
	if err != nil {
		return nil, err
	}

	selection, err := d.SelectMasks(result)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Potfile:   stats,
		Result:    result,
		Selection: selection,
		Coverage:  selection.Coverage(result.Total),
		Files:     []string{},
	}
	if !d.config.SaveResults {
		return report, nil
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	exports := []struct {
		ext  string
		body string
	}{
		{".hcmask", algorithm.MaskFileBody(selection.SelectedMasks)},
		{".rule", algorithm.SynthesizeRules(result.Prefixes, result.Suffixes)},
		{".txt", algorithm.WordlistBody(pairs)},
	}
	for _, export := range exports {
		written, err := d.writeResult(name+export.ext, export.body)
		if err != nil {
			return nil, err
		}
		report.Files = append(report.Files, written)
	}

	return report, nil
}

func (d *DesktopLib) writeResult(filename, body string) (string, error) {
	if err := os.MkdirAll(d.config.ResultsPath, 0755); err != nil {
		return "", fmt.Errorf("creating results directory: %w", err)
	}
	target := filepath.Join(d.config.ResultsPath, filename)
	if err := os.WriteFile(target, []byte(body), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", filename, err)
	}
	return target, nil
}
