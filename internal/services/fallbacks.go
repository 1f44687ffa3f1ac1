package services

import (
	"fmt"

	"github.com/nayansarkar10/CompititivePricingAI/internal/models"
)

// fallbackQuestions is the fixed clarifying-question set used whenever
// the model cannot produce one. It must never be empty.
func fallbackQuestions() []models.Question {
	return []models.Question{
		{
			ID:      "q1",
			Text:    "What is your budget range?",
			Options: []string{"Low (Budget)", "Medium (Mid-range)", "High (Premium)"},
		},
		{
			ID:      "q2",
			Text:    "What is the primary use case?",
			Options: []string{"Personal", "Business/Enterprise", "Industrial"},
		},
		{
			ID:      "q3",
			Text:    "Do you have a brand preference?",
			Options: []string{"Established brands only", "Open to value brands", "No preference"},
		},
	}
}

// simulationResult is the deterministic analysis returned when the model
// is unavailable, quota-limited, or produced an unusable reply. It is the
// operation's terminal error handler: always renderable, never an error.
func simulationResult(query string) *models.AnalysisResult {
	report := fmt.Sprintf(`## ⚠️ Simulation Mode

Live market analysis for **"%s"** is temporarily unavailable. The analysis
service could not be reached, or the request quota was exhausted. The
figures below are representative fixtures, **not live market data**.

### Executive Summary
The segment typically spans entry-level offerings near the bottom of the
price band up to premium options at roughly four times that price. Street
prices move frequently with seasonal sales, so live verification matters.

### Price Range Analysis
- **Premium tier:** feature-complete flagships carrying a brand markup.
- **Mid tier:** the best value-for-money density sits here.
- **Entry tier:** aggressive penetration pricing, fewer after-sales perks.

### Recommendations
Re-run this analysis once live search is available to get current prices
and genuine purchase links. Until then, treat the table as an indicative
shape of the market rather than a buying guide.`, query)

	data := []models.PricingItem{
		{
			Company:  "ApexTech Retail",
			Brand:    "Apex Pro X",
			USP:      "Flagship build with extended warranty",
			Specs:    "Top-tier configuration, premium support plan",
			Price:    129999,
			Currency: "INR",
			Link:     "",
		},
		{
			Company:    "Meridian Stores",
			Brand:      "Meridian Elite",
			USP:        "Near-flagship performance at a mid premium",
			Specs:      "High-end configuration, standard warranty",
			Price:      92499,
			Currency:   "INR",
			Link:       "",
			IsBestDeal: true,
		},
		{
			Company:    "NovaMart",
			Brand:      "Nova Prime",
			USP:        "Best value-for-money in the mid tier",
			Specs:      "Balanced configuration, bundled accessories",
			Price:      67999,
			Currency:   "INR",
			Link:       "",
			IsBestDeal: true,
		},
		{
			Company:  "ValueHub",
			Brand:    "VH Essential",
			USP:      "Lowest entry price in the segment",
			Specs:    "Base configuration, limited warranty",
			Price:    38999,
			Currency: "INR",
			Link:     "",
		},
	}

	return &models.AnalysisResult{Report: report, Data: data}
}
