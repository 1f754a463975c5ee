package cmd

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Print the plain text of a PDF, DOCX or ODT document",
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

		text, err := a.recruiter.ExtractText(data, filepath.Base(args[0]))
		if err != nil {
			return err
		}
		a.logger.Info("document extracted",
			zap.String("file", args[0]),
			zap.Int("characters", utf8.RuneCountInString(text)),
		)

		return printJSON(cmd.OutOrStdout(), map[string]any{
			"file": filepath.Base(args[0]),
			"text": text,
		})
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
