package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/RipScriptos/Oversight/pkg/clients"
	"github.com/RipScriptos/Oversight/pkg/compiler"
	"github.com/RipScriptos/Oversight/pkg/config"
	"github.com/RipScriptos/Oversight/pkg/oversight"
	"github.com/RipScriptos/Oversight/pkg/session"
)

var (
	topic      string
	reportType string
)

// demoTopics are offered in interactive mode when the user has nothing
// specific in mind.
var demoTopics = []string{
	"Artificial Intelligence",
	"Climate Change",
	"Digital Marketing",
	"Renewable Energy",
	"Cybersecurity",
}

func main() {
	handler := slog.NewTextHandler(os.Stdout, nil)
	slog.SetDefault(slog.New(handler))

	// Load .env file
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, as long as env vars are set
	}

	rootCmd := &cobra.Command{
		Use:   "oversight",
		Short: "A terminal-based topic analysis agent",
		Long:  `Oversight analyzes a topic from eight fixed research angles, scores the findings by importance, and renders a structured report.`,
		Run: func(cmd *cobra.Command, args []string) {
			topicFlagChanged := cmd.Flags().Changed("topic")

			if !topicFlagChanged {
				// Interactive Mode
				reader := bufio.NewReader(os.Stdin)

				fmt.Println("Example topics:")
				for i, t := range demoTopics {
					fmt.Printf("  %d. %s\n", i+1, t)
				}

				fmt.Print("Enter topic to analyze: ")
				input, _ := reader.ReadString('\n')
				topic = strings.TrimSpace(input)
				if topic == "" {
					slog.Error("Topic cannot be empty")
					os.Exit(1)
				}

				fmt.Printf("Enter report type (default: %s): ", reportType)
				input, _ = reader.ReadString('\n')
				input = strings.TrimSpace(input)
				if input != "" {
					reportType = input
				}
			} else {
				if topic == "" {
					slog.Error("--topic flag provided but empty")
					os.Exit(1)
				}
			}

			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				slog.Error("Invalid configuration", "error", err)
				os.Exit(1)
			}

			llm, err := clients.OpenAI(cfg.Model, cfg.OpenAIApiKey)
			if err != nil {
				slog.Error("Failed to init OpenAI client", "error", err)
				os.Exit(1)
			}

			completer := &compiler.LLMCompleter{
				Model:       llm,
				MaxTokens:   cfg.MaxTokens,
				Temperature: cfg.Temperature,
			}

			system := oversight.New(completer, session.NewMemoryStore())

			slog.Info("Starting analysis", "topic", topic, "report_type", reportType)

			outcome, err := system.ProcessTopic(context.Background(), topic, reportType)
			if err != nil {
				slog.Error("Analysis failed", "error", err)
				os.Exit(1)
			}

			fmt.Println(outcome.TextReport)

			filename := fmt.Sprintf("oversight_report_%d.md", time.Now().Unix())
			if err := os.WriteFile(filename, []byte(outcome.MarkdownReport), 0o644); err != nil {
				slog.Error("Failed to write markdown report", "error", err)
				os.Exit(1)
			}
			slog.Info("Saved markdown report", "file", filename, "session_id", outcome.SessionID)
		},
	}

	rootCmd.Flags().StringVarP(&topic, "topic", "t", "", "The topic to analyze")
	rootCmd.Flags().StringVarP(&reportType, "report-type", "r", "detailed", "Report type: executive, detailed, technical or summary")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
