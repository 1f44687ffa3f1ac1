package services

import (
	"encoding/json"
	"strings"

	"github.com/nayansarkar10/CompititivePricingAI/internal/models"
)

const (
	jsonFenceOpen = "```json"
	fenceClose    = "```"
)

// ExtractAnalysis splits a raw model reply into its two halves: the
// markdown report and the pricing table embedded in a ```json fence.
//
// The first fenced block is parsed; if it is not a valid JSON array the
// data half is simply empty, which is a tolerated partial failure. The
// report is the raw text with every ```json fence removed and trimmed.
func ExtractAnalysis(raw string) *models.AnalysisResult {
	data := []models.PricingItem{}

	if block, ok := firstJSONBlock(raw); ok {
		var parsed []models.PricingItem
		if err := json.Unmarshal([]byte(block), &parsed); err == nil && parsed != nil {
			data = parsed
		}
	}

	report := strings.TrimSpace(stripJSONBlocks(raw))

	return &models.AnalysisResult{Report: report, Data: data}
}

// firstJSONBlock returns the contents of the first closed ```json fence.
// An unclosed fence does not count as a block.
func firstJSONBlock(text string) (string, bool) {
	start := strings.Index(text, jsonFenceOpen)
	if start < 0 {
		return "", false
	}

	rest := text[start+len(jsonFenceOpen):]
	end := strings.Index(rest, fenceClose)
	if end < 0 {
		return "", false
	}

	return strings.TrimSpace(rest[:end]), true
}

// stripJSONBlocks removes all closed ```json fences, not just the first,
// in case the model emits stray blocks.
func stripJSONBlocks(text string) string {
	var out strings.Builder

	for {
		start := strings.Index(text, jsonFenceOpen)
		if start < 0 {
			break
		}
		end := strings.Index(text[start+len(jsonFenceOpen):], fenceClose)
		if end < 0 {
			break
		}

		out.WriteString(text[:start])
		text = text[start+len(jsonFenceOpen)+end+len(fenceClose):]
	}

	out.WriteString(text)
	return out.String()
}
