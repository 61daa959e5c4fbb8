package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"crackInsightBackend/internal/core/algorithm"
	"crackInsightBackend/internal/core/domain"
	"crackInsightBackend/internal/core/service"
	"crackInsightBackend/internal/port"
)

type AnalysisRequest struct {
	Filter      domain.CorpusFilter `json:"filter"`
	HashrateGHs float64             `json:"hashrateGHs"`
}

type MaskSelectionRequest struct {
	Budget        string          `json:"budget" binding:"required"`
	HashrateGHs   float64         `json:"hashrateGHs" binding:"required"`
	MinMaskLength int             `json:"minMaskLength"`
	SortMode      domain.SortMode `json:"sortMode"`
}

type SnapshotRequest struct {
	Name string `json:"name" binding:"required"`
}

type CurrentView struct {
	Mode       domain.ViewMode        `json:"mode"`
	Generation uint64                 `json:"generation"`
	Result     *domain.AnalysisResult `json:"result,omitempty"`
}

type WebHandler struct {
	analysisService port.AnalysisService
}

func NewWebHandler(svc port.AnalysisService) *WebHandler {
	return &WebHandler{
		analysisService: svc,
	}
}

func (h *WebHandler) StartAnalysis(c *gin.Context) {
	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.HashrateGHs < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidThroughput.Error()})
		return
	}

	job, err := h.analysisService.StartAnalysis(c.Request.Context(), domain.AnalysisRequest{
		Filter:       req.Filter,
		ThroughputHz: service.GigahashToHz(req.HashrateGHs),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, job)
}

func (h *WebHandler) GetJob(c *gin.Context) {
	job, err := h.analysisService.GetJob(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *WebHandler) Current(c *gin.Context) {
	result, mode, generation := h.analysisService.Current()
	c.JSON(http.StatusOK, CurrentView{
		Mode:       mode,
		Generation: generation,
		Result:     result,
	})
}

func (h *WebHandler) SaveSnapshot(c *gin.Context) {
	var req SnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := h.analysisService.SaveSnapshot(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, snapshot)
}

func (h *WebHandler) ViewSnapshot(c *gin.Context) {
	snapshot, err := h.analysisService.ViewSnapshot(c.Request.Context(), c.Param("snapshotId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// SelectMasks answers with JSON, or with the .hcmask body when the query
// has format=hcmask.
func (h *WebHandler) SelectMasks(c *gin.Context) {
	var req MaskSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := service.ParseTimeBudget(req.Budget)
	if err != nil {
		respondError(c, err)
		return
	}

	selection, err := h.analysisService.SelectMasks(c.Request.Context(), domain.MaskSelectionRequest{
		TimeBudgetSeconds: budget,
		ThroughputHz:      service.GigahashToHz(req.HashrateGHs),
		MinMaskLength:     req.MinMaskLength,
		SortMode:          req.SortMode,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("format") == "hcmask" {
		attachment(c, "masks.hcmask", algorithm.MaskFileBody(selection.SelectedMasks))
		return
	}

	c.JSON(http.StatusOK, selection)
}

func (h *WebHandler) RuleFile(c *gin.Context) {
	body, err := h.analysisService.RuleFile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	attachment(c, "affixes.rule", body)
}

func (h *WebHandler) SuggestHashrate(c *gin.Context) {
	suggestion, err := h.analysisService.SuggestHashrate(c.Request.Context(), c.Param("algorithmId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestion)
}

// ExportWordlist accepts algorithmId, since, until (RFC 3339) and limit as
// query parameters.
func (h *WebHandler) ExportWordlist(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body, err := h.analysisService.ExportWordlist(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	attachment(c, "wordlist.txt", body)
}

func filterFromQuery(c *gin.Context) (domain.CorpusFilter, error) {
	filter := domain.CorpusFilter{AlgorithmID: c.Query("algorithmId")}

	if v := c.Query("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.Since = t
	}
	if v := c.Query("until"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.Until = t
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return filter, errors.New("limit must be a non-negative integer")
		}
		filter.Limit = limit
	}
	return filter, nil
}

func attachment(c *gin.Context, filename, body string) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrJobNotFound), errors.Is(err, domain.ErrSnapshotNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoResult):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidThroughput),
		errors.Is(err, domain.ErrInvalidBudget),
		errors.Is(err, domain.ErrInvalidSortMode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
