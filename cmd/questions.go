package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Generate interview questions for a candidate",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		jdPath, _ := cmd.Flags().GetString("jd")
		cvPath, _ := cmd.Flags().GetString("cv")
		if jdPath == "" {
			return errJobDescriptionRequired
		}
		if cvPath == "" {
			return errors.New("--cv is required")
		}

		a, err := newApplication(cmd.Context())
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck

		jd, err := a.loadJobDescription(cmd.Context(), jdPath)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(cvPath)
		if err != nil {
			return err
		}
		text, err := a.recruiter.ExtractText(data, filepath.Base(cvPath))
		if err != nil {
			return err
		}

		candidate := a.recruiter.AnalyzeCVText(cmd.Context(), text, jd).Candidate()
		questions := a.analyzer.GenerateInterviewQuestions(cmd.Context(), jd, candidate)
		a.logger.Info("interview questions generated",
			zap.String("candidate", candidate.Name),
			zap.Int("count", len(questions)),
		)

		return printJSON(cmd.OutOrStdout(), map[string]any{
			"position":  jd.Position,
			"candidate": candidate.Name,
			"questions": questions,
		})
	},
}

func init() {
	questionsCmd.Flags().String("jd", "", "job description: a document or a JSON file produced by 'analyze jd'")
	questionsCmd.Flags().String("cv", "", "candidate CV document")

	rootCmd.AddCommand(questionsCmd)
}
