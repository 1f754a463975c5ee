package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/autohire/internal/recruiter"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var errCancelled = errors.New("scheduling cancelled")

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Screen candidates and send interview invitations",
	Long: `schedule reads a JSON request with candidates, interview details and an optional job
description, screens the candidates and sends an invitation with interview questions to each
one that passes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("request")
		if path == "" {
			return errors.New("--request is required")
		}
		autoApprove, _ := cmd.Flags().GetBool("auto-approve")

		a, err := newApplication(cmd.Context())
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		req, err := recruiter.DecodeScheduleRequest(raw)
		if err != nil {
			return err
		}

		a.logger.Info("schedule request loaded",
			zap.Int("candidates", len(req.Candidates)),
			zap.String("date", req.InterviewDetails.Date),
			zap.String("mode", req.InterviewDetails.Mode),
		)

		if !autoApprove {
			if err := confirm(fmt.Sprintf("Send invitations to %d candidate(s)?", len(req.Candidates))); err != nil {
				a.logger.Info("exiting", zap.String("reason", err.Error()))
				return nil
			}
		}

		report, err := a.recruiter.ScheduleInterviews(cmd.Context(), req)
		if err != nil && !errors.Is(err, recruiter.ErrNothingScheduled) {
			return err
		}
		if perr := printJSON(cmd.OutOrStdout(), report); perr != nil {
			return perr
		}
		return err
	},
}

// confirm asks for a yes/no answer on the terminal.
func confirm(label string) error {
	prompt := promptui.Select{
		Label: label,
		Items: []string{PromptYes, PromptNo},
	}
	_, answer, err := prompt.Run()
	if err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	if answer != PromptYes {
		return errCancelled
	}
	return nil
}

func init() {
	scheduleCmd.Flags().StringP("request", "r", "", "JSON file with candidates, interview details and job description")
	scheduleCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before sending invitations")

	rootCmd.AddCommand(scheduleCmd)
}
