package mobile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"crackInsightBackend/internal/adapter/potfile"
	"crackInsightBackend/internal/core/domain"
	"crackInsightBackend/internal/core/service"
	"crackInsightBackend/internal/port"
)

type MobileBinding struct {
	analysisService port.AnalysisService
}

func NewMobileBinding(svc port.AnalysisService) *MobileBinding {
	return &MobileBinding{analysisService: svc}
}

// For iOS/Android. Every method returns a MobileResponse encoded as JSON.

func (m *MobileBinding) StartAnalysis(requestJSON string) string {
	var req AnalysisRequest
	if err := json.Unmarshal([]byte(requestJSON), &req); err != nil {
		return createErrorResponse(fmt.Errorf("decoding request: %w", err))
	}
	if req.HashrateGHs < 0 {
		return createErrorResponse(domain.ErrInvalidThroughput)
	}

	job, err := m.analysisService.StartAnalysis(context.Background(), domain.AnalysisRequest{
		Filter:       req.Filter,
		ThroughputHz: service.GigahashToHz(req.HashrateGHs),
	})
	if err != nil {
		return createErrorResponse(err)
	}
	return createSuccessResponse(job)
}

func (m *MobileBinding) GetJob(jobID string) string {
	job, err := m.analysisService.GetJob(context.Background(), jobID)
	if err != nil {
		return createErrorResponse(err)
	}
	return createSuccessResponse(job)
}

// AnalyzePotfile analyzes potfile content passed in from the host app and
// returns the statistics synchronously. The result becomes the displayed
// one, so SelectMasks and RuleFile work on it next.
func (m *MobileBinding) AnalyzePotfile(content, algorithmID string, hashrateGHs float64) string {
	pairs, _, err := potfile.Read(strings.NewReader(content), potfile.Options{AlgorithmID: algorithmID})
	if err != nil {
		return createErrorResponse(err)
	}

	result, err := m.analysisService.AnalyzeLive(context.Background(), pairs, service.GigahashToHz(hashrateGHs))
	if err != nil {
		return createErrorResponse(err)
	}
	return createSuccessResponse(result)
}

func (m *MobileBinding) SelectMasks(requestJSON string) string {
	var req MaskRequest
	if err := json.Unmarshal([]byte(requestJSON), &req); err != nil {
		return createErrorResponse(fmt.Errorf("decoding request: %w", err))
	}

	budget, err := service.ParseTimeBudget(req.Budget)
	if err != nil {
		return createErrorResponse(err)
	}

	selection, err := m.analysisService.SelectMasks(context.Background(), domain.MaskSelectionRequest{
		TimeBudgetSeconds: budget,
		ThroughputHz:      service.GigahashToHz(req.HashrateGHs),
		MinMaskLength:     req.MinMaskLength,
		SortMode:          req.SortMode,
	})
	if err != nil {
		return createErrorResponse(err)
	}
	return createSuccessResponse(selection)
}

func (m *MobileBinding) RuleFile() string {
	body, err := m.analysisService.RuleFile(context.Background())
	if err != nil {
		return createErrorResponse(err)
	}
	return createSuccessResponse(body)
}

func (m *MobileBinding) SuggestHashrate(algorithmID string) string {
	suggestion, err := m.analysisService.SuggestHashrate(context.Background(), algorithmID)
	if err != nil {
		return createErrorResponse(err)
	}
	return createSuccessResponse(suggestion)
}
