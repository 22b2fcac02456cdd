package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/cvanalysis"
	"github.com/spigell/cv-analyzer/internal/intake"
	"github.com/spigell/cv-analyzer/internal/logger"
)

const (
	PromptSummary = "Print summary"
	PromptDump    = "Dump profile to file"
	PromptSave    = "Save to history"
	PromptExit    = "Exit"
)

var errExit = errors.New("exit requested")

var analyzePrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSummary, PromptDump, PromptSave, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze CV text from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("request", "r", "", "read a JSON request body ({\"cvText\": ..., \"resumeId\": ...}) from the file, - for stdin")
	analyzeCmd.Flags().BoolP("save", "s", false, "store the result in the analysis history")
	analyzeCmd.Flags().BoolP("interactive", "i", false, "ask what to do with the result")
}

// analysisInput is a cv text together with the resume it belongs to.
type analysisInput struct {
	text     string
	resumeID *int64
}

func analyze(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	logger, config := setup()

	input, err := readAnalysisInput(cmd, args)
	if err != nil {
		var reqErr *intake.RequestError
		if errors.As(err, &reqErr) {
			logger.Fatal("rejecting the request", zap.String("code", reqErr.Code), zap.String("reason", reqErr.Message))
		}
		logger.Fatal("reading cv text", zap.Error(err))
	}

	profile, err := cvanalysis.NewAnalyzer(logger.Named("analyzer")).Analyze(input.text)
	if err != nil {
		logger.Fatal("analyzing cv", zap.Error(err))
	}

	logger.Info("cv analyzed", profileFields(profile)...)

	if err := writeOutput(cmd.OutOrStdout(), config.Output, profile); err != nil {
		logger.Fatal("printing the profile", zap.Error(err))
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := saveProfile(ctx, config, logger, profile, input); err != nil {
			logger.Fatal("saving the analysis", zap.Error(err))
		}
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if !interactive {
		return
	}

	for {
		_, action, err := analyzePrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAnalyzeAction(ctx, action, cmd.OutOrStdout(), config, logger, profile, input); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// profileFields is used where a local logger variable shadows the package.
func profileFields(p *cvanalysis.Profile) []zap.Field {
	return logger.ProfileFields(p)
}

func handleAnalyzeAction(ctx context.Context, action string, w io.Writer, config *Config, logger *zap.Logger, profile *cvanalysis.Profile, input *analysisInput) error {
	switch action {
	case PromptSummary:
		_, err := fmt.Fprintln(w, profile.Summary)
		return err
	case PromptDump:
		filename, err := dumpToTmpFile(profile)
		if err != nil {
			return fmt.Errorf("dump profile to file: %w", err)
		}
		logger.Info("dumping profile to file", zap.String("filename", filename))
		return nil
	case PromptSave:
		return saveProfile(ctx, config, logger, profile, input)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func saveProfile(ctx context.Context, config *Config, logger *zap.Logger, profile *cvanalysis.Profile, input *analysisInput) error {
	s := openStore(ctx, config, logger)
	defer s.Close()

	rec, err := s.Insert(ctx, profile, input.text, input.resumeID)
	if err != nil {
		return err
	}

	logger.Info("analysis saved to history", zap.Int64("id", rec.ID))
	return nil
}

func readAnalysisInput(cmd *cobra.Command, args []string) (*analysisInput, error) {
	requestFile, _ := cmd.Flags().GetString("request")

	if requestFile != "" {
		if len(args) > 0 {
			return nil, errors.New("a cv file argument cannot be combined with --request")
		}

		body, err := readSource(requestFile, cmd.InOrStdin())
		if err != nil {
			return nil, err
		}

		req, err := intake.Parse(body)
		if err != nil {
			return nil, err
		}
		return &analysisInput{text: strings.TrimSpace(req.CVText), resumeID: req.ResumeID}, nil
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	data, err := readSource(path, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}

	return &analysisInput{text: strings.TrimSpace(string(data))}, nil
}

// readSource reads a file, or stdin when path is empty or "-".
func readSource(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return data, nil
}

func dumpToTmpFile(v any) (string, error) {
	file, err := os.CreateTemp("", "cv_analysis_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := writeOutput(file, outputJSON, v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
