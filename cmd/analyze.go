package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errJobDescriptionRequired = errors.New("--jd is required")

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyse job descriptions and CVs",
}

var analyzeJDCmd = &cobra.Command{
	Use:   "jd FILE",
	Short: "Extract position, requirements and keywords from a job description document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApplication(cmd.Context())
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		report, err := a.recruiter.ProcessJobDescription(cmd.Context(), data, filepath.Base(args[0]))
		if err != nil {
			return err
		}
		a.logger.Info("job description analysed",
			zap.String("position", report.Position),
			zap.String("source", string(report.Source)),
		)
		return printJSON(cmd.OutOrStdout(), report)
	},
}

var analyzeCVCmd = &cobra.Command{
	Use:   "cv FILE",
	Short: "Match a CV document against a job description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jdPath, _ := cmd.Flags().GetString("jd")
		if jdPath == "" {
			return errJobDescriptionRequired
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

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		report, err := a.recruiter.ProcessCV(cmd.Context(), data, filepath.Base(args[0]), jd)
		if err != nil {
			return err
		}
		a.logger.Info("cv analysed",
			zap.String("position", jd.Position),
			zap.Int("score", report.Score),
			zap.String("source", string(report.Source)),
		)
		return printJSON(cmd.OutOrStdout(), report)
	},
}

func init() {
	analyzeCVCmd.Flags().String("jd", "", "job description: a document or a JSON file produced by 'analyze jd'")

	analyzeCmd.AddCommand(analyzeJDCmd, analyzeCVCmd)
	rootCmd.AddCommand(analyzeCmd)
}
