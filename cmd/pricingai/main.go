package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/nayansarkar10/CompititivePricingAI/internal/config"
	"github.com/nayansarkar10/CompititivePricingAI/internal/helpers"
	"github.com/nayansarkar10/CompititivePricingAI/internal/models"
	"github.com/nayansarkar10/CompititivePricingAI/internal/services"
	"github.com/nayansarkar10/CompititivePricingAI/internal/wizard"
)

var configFile string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "pricingai",
		Short: "Competitive Pricing AI - market research powered by live web search",
		Long: `Competitive Pricing AI turns a free-text product or service query into a
structured competitive-pricing report: a markdown market analysis plus a
table of real, currently available offers with genuine purchase links.`,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "Configuration file path")

	var wizardCmd = &cobra.Command{
		Use:   "wizard",
		Short: "Run the interactive research wizard",
		Long:  "Walk through the full flow: query, clarifying questions, analysis, results",
		Args:  cobra.NoArgs,
		RunE:  runWizard,
	}
	rootCmd.AddCommand(wizardCmd)

	var analyzeCmd = &cobra.Command{
		Use:   "analyze <query>",
		Short: "Run a one-shot analysis for a query",
		Long:  "Generate a pricing analysis without the interactive wizard; clarifying questions are auto-answered with their first option",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().BoolP("skip-questions", "s", false, "Skip the clarifying-question step")
	analyzeCmd.Flags().String("sort", "desc", "Table sort order by price (asc, desc)")
	analyzeCmd.Flags().Bool("no-save", false, "Do not write result files to the output directory")
	rootCmd.AddCommand(analyzeCmd)

	var showCmd = &cobra.Command{
		Use:   "show <analysis.json>",
		Short: "Re-display a previously saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	showCmd.Flags().String("sort", "desc", "Table sort order by price (asc, desc)")
	rootCmd.AddCommand(showCmd)

	var initCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file",
		RunE:  runInit,
	}
	rootCmd.AddCommand(initCmd)

	if err := rootCmd.Execute(); err != nil {
		helpers.PrintError("Error: %v", err)
		os.Exit(1)
	}
}

func runWizard(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := helpers.NewLogger()
	svc := services.NewQueryService(cfg, logger)
	ctrl := wizard.NewController(svc, logger)

	return runInteractive(cmd.Context(), cfg, ctrl)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(args[0])
	if query == "" {
		return fmt.Errorf("query must not be empty")
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	skipQuestions, _ := cmd.Flags().GetBool("skip-questions")
	sortOrder, _ := cmd.Flags().GetString("sort")
	noSave, _ := cmd.Flags().GetBool("no-save")

	logger := helpers.NewLogger()
	svc := services.NewQueryService(cfg, logger)
	ctx := cmd.Context()

	helpers.PrintTitle("Competitive Pricing Analysis")
	helpers.PrintInfo("Query: %s", query)

	answers := map[string]string{}
	if !skipQuestions {
		helpers.PrintInfo("Generating clarifying questions...")
		for _, q := range svc.GenerateQuestions(ctx, query) {
			if len(q.Options) > 0 {
				answers[q.Text] = q.Options[0]
			}
		}
		helpers.PrintInfo("Auto-answered %d clarifying questions with their first option", len(answers))
	}

	svc.Reset()
	services.DisplayAgentActivity()

	result := svc.GenerateAnalysis(ctx, models.RefinementData{OriginalQuery: query, Answers: answers})
	services.DisplayAnalysis(query, result, sortOrder != "asc")

	if !noSave && cfg.Processing.SaveResults {
		return saveResult(cfg, query, answers, result)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	sortOrder, _ := cmd.Flags().GetString("sort")

	var record models.AnalysisRecord
	if err := helpers.LoadJSON(args[0], &record); err != nil {
		return fmt.Errorf("failed to load analysis file: %w", err)
	}

	if record.Simulated {
		helpers.PrintWarning("This analysis was generated in simulation mode")
	}
	helpers.PrintInfo("Generated: %s", record.AnalysisTime.Format("2006-01-02 15:04:05"))

	services.DisplayAnalysis(record.Query, &record.Result, sortOrder != "asc")
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	helpers.PrintTitle("Initializing Competitive Pricing AI Configuration")

	if helpers.FileExists(configFile) {
		fmt.Printf("Configuration file already exists at %s\n", configFile)
		if !confirm("Do you want to overwrite it? (y/N): ") {
			helpers.PrintInfo("Configuration initialization cancelled.")
			return nil
		}
	}

	cfg := config.Default()
	cfg.Gemini.APIKey = "your-gemini-api-key-here"
	cfg.Processing.SaveResults = true

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	helpers.PrintSuccess("Configuration file created at %s", configFile)
	helpers.PrintWarning("Add your Gemini API key to the config file or set GEMINI_API_KEY before running an analysis.")
	return nil
}

func saveResult(cfg *config.Config, query string, answers map[string]string, result *models.AnalysisResult) error {
	record := &models.AnalysisRecord{
		Query:        query,
		Answers:      answers,
		Result:       *result,
		AnalysisTime: time.Now(),
		Simulated:    services.IsSimulation(result),
	}
	return services.SaveAnalysisResult(record, cfg.Processing.OutputDir)
}

func confirm(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
