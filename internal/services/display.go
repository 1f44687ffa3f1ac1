package services

import (
	"fmt"
	"strings"

	"github.com/nayansarkar10/CompititivePricingAI/internal/format"
	"github.com/nayansarkar10/CompititivePricingAI/internal/helpers"
	"github.com/nayansarkar10/CompititivePricingAI/internal/models"
)

// IsSimulation reports whether a result came from the fallback path
func IsSimulation(result *models.AnalysisResult) bool {
	return strings.HasPrefix(result.Report, "## ⚠️ Simulation Mode")
}

// DisplayAnalysis renders the markdown report and the pricing table.
// The table tolerates missing links and duplicate companies; rows are
// shown high-to-low by default to match the report convention.
func DisplayAnalysis(query string, result *models.AnalysisResult, descending bool) {
	helpers.PrintTitle("Analysis Results")
	helpers.PrintInfo("Query: %s", query)
	helpers.PrintSeparator()

	fmt.Println(result.Report)
	helpers.PrintSeparator()

	if len(result.Data) == 0 {
		helpers.PrintWarning("No pricing data table generated. Check the report.")
		return
	}

	order := "high to low"
	if !descending {
		order = "low to high"
	}
	helpers.PrintInfo("Pricing table (%d items, %s):", len(result.Data), order)
	fmt.Println()

	fmt.Printf("   %-24s %-28s %-14s %s\n", "COMPANY / BRAND", "USP", "PRICE", "LINK")
	fmt.Println(strings.Repeat("─", 80))

	for _, item := range models.SortByPrice(result.Data, descending) {
		name := item.Company
		if item.Brand != "" && item.Brand != item.Company {
			name = fmt.Sprintf("%s (%s)", item.Company, item.Brand)
		}

		link := item.Link
		if link == "" {
			link = "-"
		}

		line := fmt.Sprintf("   %-24s %-28s %-14s %s",
			truncate(name, 23), truncate(item.USP, 27),
			format.FormatPrice(item.Price, item.Currency), link)

		if item.IsBestDeal {
			helpers.DealColor.Printf("★%s\n", line[1:])
		} else {
			fmt.Println(line)
		}

		if item.Specs != "" {
			fmt.Printf("     %s\n", truncate(item.Specs, 74))
		}
	}

	fmt.Println()
	helpers.PrintInfo("★ marks the model's best value-for-money picks")
}

// DisplayAgentActivity prints the four conceptual sub-agents the master
// agent simulates, shown while a request is in flight.
func DisplayAgentActivity() {
	helpers.PrintInfo("Agent 1: Information Gathering - scanning retailers for live listings...")
	helpers.PrintInfo("Agent 2: Competitive Analysis - extracting specs, pricing, and links...")
	helpers.PrintInfo("Agent 3: Positioning Strategy - classifying premium vs penetration pricing...")
	helpers.PrintInfo("Agent 4: Market Intelligence - identifying substitutes and best deals...")
}

// SaveAnalysisResult writes the analysis to timestamped JSON and markdown
// files in the output directory.
func SaveAnalysisResult(record *models.AnalysisRecord, outputDir string) error {
	if err := helpers.EnsureDir(outputDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	jsonPath := helpers.GetOutputPath(outputDir, helpers.GenerateOutputFilename("pricing-analysis", "json"))
	if err := helpers.SaveJSON(record, jsonPath); err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	helpers.PrintSuccess("Saved analysis to: %s", jsonPath)

	mdPath := helpers.GetOutputPath(outputDir, helpers.GenerateOutputFilename("pricing-report", "md"))
	if err := helpers.SaveText(buildMarkdownSummary(record), mdPath); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	helpers.PrintSuccess("Saved report to: %s", mdPath)

	return nil
}

// buildMarkdownSummary renders the saved report: the model's markdown
// followed by the pricing table as a markdown table.
func buildMarkdownSummary(record *models.AnalysisRecord) string {
	var summary strings.Builder

	summary.WriteString(fmt.Sprintf("# Competitive Pricing Analysis: %s\n\n", record.Query))
	summary.WriteString(fmt.Sprintf("**Generated:** %s\n\n", record.AnalysisTime.Format("2006-01-02 15:04:05")))

	if len(record.Answers) > 0 {
		summary.WriteString("**Refinement:**\n")
		summary.WriteString(flattenAnswers(record.Answers))
		summary.WriteString("\n\n")
	}

	summary.WriteString(record.Result.Report)
	summary.WriteString("\n")

	if len(record.Result.Data) > 0 {
		summary.WriteString("\n## Pricing Table\n\n")
		summary.WriteString("| Company | Brand | USP | Specs | Price | Best Deal | Link |\n")
		summary.WriteString("|---|---|---|---|---|---|---|\n")

		for _, item := range models.SortByPrice(record.Result.Data, true) {
			deal := ""
			if item.IsBestDeal {
				deal = "★"
			}
			summary.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
				item.Company, item.Brand, item.USP, item.Specs,
				format.FormatPrice(item.Price, item.Currency), deal, item.Link))
		}
	}

	return summary.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
