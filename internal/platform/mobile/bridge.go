package mobile

import (
	"encoding/json"

	"crackInsightBackend/internal/core/domain"
)

// Bridge structs for mobile data transfer
type MobileResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type AnalysisRequest struct {
	Filter      domain.CorpusFilter `json:"filter"`
	HashrateGHs float64             `json:"hashrateGHs"`
}

type MaskRequest struct {
	Budget        string          `json:"budget"`
	HashrateGHs   float64         `json:"hashrateGHs"`
	MinMaskLength int             `json:"minMaskLength"`
	SortMode      domain.SortMode `json:"sortMode"`
}

func createErrorResponse(err error) string {
	response := MobileResponse{
		Success: false,
		Error:   err.Error(),
	}
	result, _ := json.Marshal(response)
	return string(result)
}

func createSuccessResponse(data interface{}) string {
	response := MobileResponse{
		Success: true,
		Data:    data,
	}
	result, err := json.Marshal(response)
	if err != nil {
		return createErrorResponse(err)
	}
	return string(result)
}
