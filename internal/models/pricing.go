package models

import (
	"sort"
	"time"
)

// PricingItem represents one competitor data point extracted from the
// model's fenced JSON block. Fields may arrive missing or malformed from
// upstream; consumers must tolerate empty links and unknown currency codes.
type PricingItem struct {
	Company    string  `json:"company"`
	Brand      string  `json:"brand"`
	USP        string  `json:"usp"`
	Specs      string  `json:"specs"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	Link       string  `json:"link"`
	IsBestDeal bool    `json:"isBestDeal,omitempty"`
}

// AnalysisResult is the full output of one analysis run
type AnalysisResult struct {
	Report string        `json:"report"`
	Data   []PricingItem `json:"data"`
}

// Question is one multiple-choice clarifying prompt
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// RefinementData carries the original query plus the user's clarifying answers
type RefinementData struct {
	OriginalQuery string            `json:"original_query"`
	Answers       map[string]string `json:"answers"`
}

// ChatMessage is a single turn in a model conversation
type ChatMessage struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Text string `json:"text"`
}

// AnalysisRecord is the on-disk envelope for a saved analysis run
type AnalysisRecord struct {
	Query        string            `json:"query"`
	Answers      map[string]string `json:"answers"`
	Result       AnalysisResult    `json:"result"`
	AnalysisTime time.Time         `json:"analysis_time"`
	Simulated    bool              `json:"simulated"`
}

// SortByPrice returns a copy of items ordered by price. Descending order
// matches the report convention (high to low); ascending is used by the
// table view when toggled.
func SortByPrice(items []PricingItem, descending bool) []PricingItem {
	sorted := make([]PricingItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return sorted[i].Price > sorted[j].Price
		}
		return sorted[i].Price < sorted[j].Price
	})
	return sorted
}
