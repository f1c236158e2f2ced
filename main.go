package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"jira_defect_writer/config"
	"jira_defect_writer/generator"
)

var configPath string

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	rootCmd := &cobra.Command{
		Use:           "defect-writer",
		Short:         "AI-powered Jira defect writing tool",
		Long:          "Turns a user story and defect metadata into a Jira-ready defect report and a Word document.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ./defect-writer.yaml)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildLLM(cfg *config.Config) (generator.LLMClient, error) {
	switch cfg.LLM.Provider {
	case config.ProviderMock:
		log.Printf("[cli] using mock llm; no completion requests will be sent")
		return &generator.MockLLM{}, nil
	case config.ProviderOpenRouter, config.ProviderOpenAI:
		// Both speak the OpenAI chat completions protocol; only base_url differs.
		return generator.NewOpenAILLMFromConfig(cfg.LLM.Settings())
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}

func buildAgent(cfg *config.Config) (*generator.Agent, error) {
	llm, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}
	return generator.NewAgent(llm, cfg.ReportStyle)
}
