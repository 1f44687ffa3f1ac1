package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nayansarkar10/CompititivePricingAI/internal/models"
)

// buildQuestionsPrompt asks the model for clarifying questions narrowing
// the query toward the configured regional market.
func buildQuestionsPrompt(query, region, currency string) string {
	return fmt.Sprintf(`User wants market research for: "%s".
To provide the best competitive pricing analysis in %s (%s), I need to narrow this down.
Generate 3 specific, relevant multiple-choice questions to ask the user (e.g., Budget, Specific Features, Usage, Brand Preference).

Output strictly valid JSON in this format:
[
  { "id": "q1", "text": "Question text?", "options": ["Option A", "Option B", "Option C"] }
]
Do not add markdown formatting like %sjson. Just raw JSON.`, query, region, currency, "```")
}

// buildAnalysisInstruction composes the master-agent system instruction:
// one model call instructed to emulate four sequential research sub-steps
// and emit a markdown report plus a fenced JSON pricing table.
func buildAnalysisInstruction(data models.RefinementData, region, currency string) string {
	context := flattenAnswers(data.Answers)

	return fmt.Sprintf(`You are CompetitivePricingAI V3, a Master Agent coordinating 4 specialized sub-agents to research the %s Market (%s).

**USER REQUEST:** "%s"
**CONTEXT:**
%s

**YOUR WORKFLOW (Simulate these Agents):**

1.  **Agent 1 (Gathering):** Search Amazon, Flipkart, Croma, Reliance Digital, and other major retailers. Find 5-10 REAL products/services available now.
2.  **Agent 2 (Analysis):** For each item, extract Price (%s), Discounts, Specs, USP, and a GENUINE Purchase Link.
3.  **Agent 3 (Positioning):** Identify if the item is Premium, Market-rate, or Penetration pricing.
4.  **Agent 4 (Intelligence):** Identify best value options.

**OUTPUT REQUIREMENTS:**

1.  **JSON Data (The Table):**
    *   Strict JSON array.
    *   Fields: "company", "brand", "price" (number), "currency" (%s), "specs" (short), "usp" (short), "link" (valid URL), "isBestDeal" (boolean - true for top 2 value-for-money items).
    *   Sort by Price High to Low.

2.  **Analysis Report (Markdown):**
    *   Executive Summary of the market.
    *   Price Range Analysis.
    *   Recommendations based on the user's answers.
    *   Agent Observations (briefly mention what Agent 1-4 found).

**RESPONSE FORMAT:**
Return the JSON array wrapped in %sjson ... %s.
Everything else is the Markdown report.`,
		region, currency, data.OriginalQuery, context, currency, currency, "```", "```")
}

// analysisTrigger is the user turn that kicks off the workflow; the real
// content lives in the system instruction.
const analysisTrigger = "Execute Master Agent Workflow."

// flattenAnswers renders the answer set as "- question: answer" lines,
// sorted for a deterministic prompt.
func flattenAnswers(answers map[string]string) string {
	if len(answers) == 0 {
		return "- (no refinement answers provided)"
	}

	questions := make([]string, 0, len(answers))
	for q := range answers {
		questions = append(questions, q)
	}
	sort.Strings(questions)

	lines := make([]string, 0, len(questions))
	for _, q := range questions {
		lines = append(lines, fmt.Sprintf("- %s: %s", q, answers[q]))
	}
	return strings.Join(lines, "\n")
}
