package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"alfredoptarigan/resume-reviewer/internal/config"
	"alfredoptarigan/resume-reviewer/internal/logger"
	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/services"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "reviewctl",
		Short:         "Extract resume text and run AI resume reviews from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newExtractCommand(), newReviewCommand())
	return root
}

func newExtractCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the normalized text extracted from a PDF, DOCX or TXT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.Configure(cfg.Server.Env, cfg.Server.LogLevel)

			doc, err := loadDocument(args[0], cfg.Extraction.MaxFileSize)
			if err != nil {
				return err
			}

			text, err := services.NewTextExtractor(cfg.Extraction.MaxFileSize).
				Extract(cmd.Context(), doc.Content, doc.Format)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newReviewCommand() *cobra.Command {
	var (
		jdPath string
		role   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "review <resume>",
		Short: "Review a resume, optionally against a job description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.Configure(cfg.Server.Env, cfg.Server.LogLevel)

			if output != "markdown" && output != "json" && output != "yaml" {
				return fmt.Errorf("unknown output format %q (want markdown, json or yaml)", output)
			}

			resume, err := loadDocument(args[0], cfg.Extraction.MaxFileSize)
			if err != nil {
				return err
			}

			input := services.ReviewInput{Resume: resume, Role: role}
			if jdPath != "" {
				jd, err := loadDocument(jdPath, cfg.Extraction.MaxFileSize)
				if err != nil {
					return err
				}
				input.JobDescription = &jd
			}

			reviewService, err := buildReviewService(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			outcome, err := reviewService.Review(cmd.Context(), input)
			if err != nil {
				return err
			}

			return writeOutcome(cmd.OutOrStdout(), outcome, output)
		},
	}

	cmd.Flags().StringVar(&jdPath, "jd", "", "job description file (.pdf, .docx or .txt)")
	cmd.Flags().StringVar(&role, "role", "", "target job role")
	cmd.Flags().StringVarP(&output, "output", "o", "markdown", "output format: markdown, json or yaml")
	return cmd
}

func buildReviewService(ctx context.Context, cfg *config.Config) (services.ReviewService, error) {
	llm, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini: %w", err)
	}

	analyzer := services.NewAnalysisClient(llm, services.RetryPolicy{
		MaxAttempts:    cfg.Analysis.MaxAttempts,
		InitialBackoff: cfg.Analysis.InitialBackoff,
		MaxBackoff:     cfg.Analysis.MaxBackoff,
	}, cfg.Analysis.CallTimeout)

	return services.NewReviewService(
		services.NewTextExtractor(cfg.Extraction.MaxFileSize),
		services.NewPromptBuilder(cfg.Analysis.MaxPromptChars),
		analyzer,
		cfg.Extraction.PreviewChars,
	), nil
}

// loadDocument reads at most maxBytes+1 bytes so the extractor can reject an
// oversized file.
func loadDocument(path string, maxBytes int64) (models.UploadedDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.UploadedDocument{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return models.UploadedDocument{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return models.UploadedDocument{
		Filename: path,
		Format:   models.DetectFormat("", path, content),
		Content:  content,
	}, nil
}

func writeOutcome(w io.Writer, outcome *services.ReviewOutcome, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	case "yaml":
		b, err := yaml.Marshal(outcome)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		for _, warning := range outcome.Warnings {
			if _, err := fmt.Fprintf(w, "> ⚠️ %s\n\n", warning); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, services.RenderReport(outcome.General, outcome.JDMatch))
		return err
	}
}
