package main

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/nayansarkar10/CompititivePricingAI/internal/config"
	"github.com/nayansarkar10/CompititivePricingAI/internal/helpers"
	"github.com/nayansarkar10/CompititivePricingAI/internal/models"
	"github.com/nayansarkar10/CompititivePricingAI/internal/services"
	"github.com/nayansarkar10/CompititivePricingAI/internal/wizard"
)

// runInteractive drives the controller through the four wizard screens.
// The controller's service calls block, so the loop only ever observes
// the interactive states.
func runInteractive(ctx context.Context, cfg *config.Config, ctrl *wizard.Controller) error {
	reader := bufio.NewReader(os.Stdin)
	sortDescending := true
	var lastSaved *models.AnalysisResult

	for {
		snap := ctrl.Snapshot()

		switch snap.State {
		case wizard.StateLanding:
			if snap.Notice != "" {
				helpers.PrintWarning("%s", snap.Notice)
			}
			helpers.PrintTitle("Competitive Pricing AI")
			helpers.PrintInfo("Market: %s (%s)", cfg.Market.Region, cfg.Market.Currency)
			helpers.PrintPrompt("Enter a product or service to research (or 'quit'): ")

			query := readLine(reader)
			if isQuit(query) {
				return nil
			}
			if query == "" {
				continue
			}

			helpers.PrintInfo("Generating clarifying questions for %q...", query)
			if err := ctrl.SubmitQuery(ctx, query); err != nil {
				helpers.PrintWarning("%v", err)
			}

		case wizard.StateQuestions:
			answers, ok := askQuestions(reader, snap.Questions)
			if !ok {
				if err := ctrl.Back(); err != nil {
					helpers.PrintWarning("%v", err)
				}
				continue
			}

			services.DisplayAgentActivity()
			if err := ctrl.SubmitAnswers(ctx, answers); err != nil {
				helpers.PrintWarning("%v", err)
			}

		case wizard.StateResults:
			services.DisplayAnalysis(snap.Query, snap.Result, sortDescending)

			if cfg.Processing.SaveResults && snap.Result != lastSaved {
				if err := saveResult(cfg, snap.Query, snap.Answers, snap.Result); err != nil {
					helpers.PrintWarning("Failed to save result: %v", err)
				}
				lastSaved = snap.Result
			}

			helpers.PrintPrompt("[r]egenerate, [s]ort order, [n]ew search, [q]uit: ")
			switch readLine(reader) {
			case "r", "regenerate":
				services.DisplayAgentActivity()
				if err := ctrl.Regenerate(ctx); err != nil && !errors.Is(err, wizard.ErrBusy) {
					helpers.PrintWarning("%v", err)
				}
			case "s", "sort":
				sortDescending = !sortDescending
			case "n", "new":
				ctrl.Reset()
			case "q", "quit", "exit":
				return nil
			}

		case wizard.StateProcessing:
			// Unreachable with blocking service calls; recover anyway.
			ctrl.Reset()
		}
	}
}

// askQuestions walks the clarifying questions one by one. It returns
// false when the user types "back", sending the wizard to the landing
// screen.
func askQuestions(reader *bufio.Reader, questions []models.Question) (map[string]string, bool) {
	helpers.PrintTitle("A few questions to narrow the search")
	helpers.PrintInfo("Answer with an option number, or type 'back' to change the query")

	answers := make(map[string]string, len(questions))

	for _, q := range questions {
		for {
			helpers.PrintSeparator()
			helpers.PrintInfo("%s", q.Text)
			for i, option := range q.Options {
				helpers.PrintOption(i+1, option)
			}
			helpers.PrintPrompt("Your choice: ")

			input := readLine(reader)
			if input == "back" {
				return nil, false
			}

			if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(q.Options) {
				answers[q.Text] = q.Options[n-1]
				break
			}

			helpers.PrintWarning("Please enter a number between 1 and %d", len(q.Options))
		}
	}

	return answers, true
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func isQuit(input string) bool {
	switch strings.ToLower(input) {
	case "q", "quit", "exit":
		return true
	}
	return false
}
