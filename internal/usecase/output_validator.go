package usecase

import (
	"encoding/json"
	"strings"

	"github.com/sujayx07/TruthScope/internal/domain"
)

// OutputValidator parses and checks the JSON verdict emitted by the model.
type OutputValidator struct{}

func NewOutputValidator() OutputValidator {
	return OutputValidator{}
}

type verdictEnvelope struct {
	TextResult *verdictPayload `json:"textResult"`
}

type verdictPayload struct {
	Label      *string           `json:"label"`
	Score      *float64          `json:"score"`
	Highlights []string          `json:"highlights"`
	Reasoning  []string          `json:"reasoning"`
	FactCheck  []domain.Citation `json:"fact_check"`
}

// Validate strips optional code fences, parses the textResult envelope, and
// enforces the verdict shape. Failures carry the raw text for diagnostics.
func (v OutputValidator) Validate(raw string) (*domain.Verdict, error) {
	trimmed := stripCodeFences(raw)
	if trimmed == "" {
		return nil, &domain.InvalidModelOutputError{Reason: "empty response", Raw: raw}
	}

	var envelope verdictEnvelope
	if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
		return nil, &domain.InvalidModelOutputError{Reason: "response is not valid JSON", Raw: raw}
	}
	if envelope.TextResult == nil {
		return nil, &domain.InvalidModelOutputError{Reason: "missing textResult object", Raw: raw}
	}

	payload := envelope.TextResult
	if payload.Label == nil {
		return nil, &domain.InvalidModelOutputError{Reason: "missing label", Raw: raw}
	}
	if *payload.Label != domain.LabelCredible && *payload.Label != domain.LabelMisleading {
		return nil, &domain.InvalidModelOutputError{Reason: "unknown label " + *payload.Label, Raw: raw}
	}
	if payload.Score == nil {
		return nil, &domain.InvalidModelOutputError{Reason: "missing score", Raw: raw}
	}
	if *payload.Score < 0.0 || *payload.Score > 1.0 {
		return nil, &domain.InvalidModelOutputError{Reason: "score out of range", Raw: raw}
	}

	verdict := &domain.Verdict{
		Label:      *payload.Label,
		Score:      *payload.Score,
		Highlights: payload.Highlights,
		Reasoning:  payload.Reasoning,
		FactCheck:  payload.FactCheck,
	}

	// Absent arrays become empty ones so every field is always present.
	if verdict.Highlights == nil {
		verdict.Highlights = []string{}
	}
	if verdict.Reasoning == nil {
		verdict.Reasoning = []string{}
	}
	if verdict.FactCheck == nil {
		verdict.FactCheck = []domain.Citation{}
	}
	return verdict, nil
}

func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```json") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimSuffix(trimmed, "```")
	} else if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
	}
	return strings.TrimSpace(trimmed)
}
