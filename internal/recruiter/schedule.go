package recruiter

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/autohire/internal/filtering"
	"github.com/spigell/autohire/internal/hiring"
	"github.com/spigell/autohire/internal/mailer"
)

const (
	DefaultInterviewTime = "10:00 AM"
	DefaultInterviewMode = "virtual"
	DefaultPosition      = "Open Position"
	DefaultCompanyInfo   = "Our Company"
	DefaultRequirement   = "Required skills and qualifications"

	dateLayout = "2006-01-02"

	msgScheduled        = "Interviews scheduled successfully"
	msgNothingScheduled = "No interviews were scheduled"
	reasonNoneScheduled = "No valid candidates found or all email sends failed"
)

var (
	ErrNoCandidates     = errors.New("missing or empty 'candidates' field")
	ErrPositionRequired = errors.New("job position is required in job description")
	// ErrNothingScheduled accompanies a complete report in which every candidate failed.
	ErrNothingScheduled = errors.New("no interviews were scheduled")
)

// ScheduledInterview is one candidate that received an invitation.
type ScheduledInterview struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Questions []string        `json:"questions"`
	Details   *mailer.Preview `json:"details"`
	Delivered bool            `json:"delivered"`
}

// Delivery is the mail outcome for one candidate.
type Delivery struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Preview *mailer.Preview `json:"preview,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ScheduleReport summarises a scheduling batch.
type ScheduleReport struct {
	Message          string                  `json:"message"`
	Reason           string                  `json:"reason,omitempty"`
	Scheduled        int                     `json:"scheduled"`
	InterviewDetails hiring.InterviewDetails `json:"interview_details"`
	Position         string                  `json:"position"`
	Candidates       []ScheduledInterview    `json:"candidates"`
	EmailPreviews    []Delivery              `json:"email_previews"`
	Rejected         []filtering.Rejection   `json:"rejected"`
	Filters          []filtering.Status      `json:"filters"`
}

// ScheduleInterviews screens the candidates, prepares questions for each one and sends the
// invitations. The report is returned with ErrNothingScheduled when nobody was invited.
func (s *Service) ScheduleInterviews(ctx context.Context, req ScheduleRequest) (ScheduleReport, error) {
	if len(req.Candidates) == 0 {
		return ScheduleReport{}, ErrNoCandidates
	}

	jd := defaultJobDescription()
	if req.JobDescription != nil {
		jd = *req.JobDescription
		if strings.TrimSpace(jd.Position) == "" {
			return ScheduleReport{}, ErrPositionRequired
		}
	}

	details := s.normalizeDetails(req.InterviewDetails)
	log := s.logger.With(
		zap.String("position", jd.Position),
		zap.String("date", details.Date),
		zap.String("mode", details.Mode),
	)

	steps := s.filters()
	screened, err := filtering.Run(ctx, s.filterCfg, filtering.Deps{Logger: log}, steps, filtering.NewCandidates(req.Candidates))
	if err != nil {
		return ScheduleReport{}, err
	}

	report := ScheduleReport{
		InterviewDetails: details,
		Position:         jd.Position,
		Candidates:       []ScheduledInterview{},
		EmailPreviews:    []Delivery{},
		Rejected:         screened.Rejected,
		Filters:          filtering.Describe(steps),
	}
	if report.Rejected == nil {
		report.Rejected = []filtering.Rejection{}
	}

	for _, candidate := range screened.Items {
		if err := ctx.Err(); err != nil {
			return ScheduleReport{}, err
		}

		questions := s.analyzer.GenerateInterviewQuestions(ctx, jd, candidate)

		log.Info("sending interview invitation", zap.String("candidate", candidate.Name), zap.String("email", candidate.Email))
		result := s.inviter.SendInvitation(mailer.Invitation{
			CandidateEmail: candidate.Email,
			CandidateName:  candidate.Name,
			Position:       jd.Position,
			Date:           details.Date,
			Time:           details.Time,
			Mode:           details.Mode,
			Location:       locationFor(details),
		})

		if !result.Success {
			log.Error("interview invitation failed", zap.String("candidate", candidate.Name), zap.String("error", result.Error))
			report.EmailPreviews = append(report.EmailPreviews, Delivery{
				Name:  candidate.Name,
				Email: candidate.Email,
				Error: result.Error,
			})
			continue
		}

		report.Candidates = append(report.Candidates, ScheduledInterview{
			ID:        s.newID(),
			Name:      candidate.Name,
			Email:     candidate.Email,
			Questions: questions,
			Details:   result.Preview,
			Delivered: result.Delivered,
		})
		report.EmailPreviews = append(report.EmailPreviews, Delivery{
			Name:    candidate.Name,
			Email:   candidate.Email,
			Preview: result.Preview,
		})
	}

	report.Scheduled = len(report.Candidates)
	if report.Scheduled == 0 {
		report.Message = msgNothingScheduled
		report.Reason = reasonNoneScheduled
		log.Warn("no interviews were scheduled", zap.Int("rejected", len(report.Rejected)))
		return report, ErrNothingScheduled
	}

	report.Message = msgScheduled
	log.Info("interviews scheduled", zap.Int("scheduled", report.Scheduled), zap.Int("rejected", len(report.Rejected)))
	return report, nil
}

// normalizeDetails applies defaults and moves past or unparseable dates to today.
func (s *Service) normalizeDetails(d hiring.InterviewDetails) hiring.InterviewDetails {
	now := s.now()
	today := now.Format(dateLayout)

	date := strings.TrimSpace(d.Date)
	switch parsed, err := time.ParseInLocation(dateLayout, date, now.Location()); {
	case date == "":
		date = today
	case err != nil:
		s.logger.Warn("invalid interview date; using today", zap.String("date", date))
		date = today
	case parsed.Format(dateLayout) < today:
		s.logger.Info("interview date is in the past; using today", zap.String("date", date))
		date = today
	}

	d.Date = date
	if d.Time = strings.TrimSpace(d.Time); d.Time == "" {
		d.Time = DefaultInterviewTime
	}
	if d.Mode = strings.ToLower(strings.TrimSpace(d.Mode)); d.Mode == "" {
		d.Mode = DefaultInterviewMode
	}
	return d
}

func locationFor(d hiring.InterviewDetails) string {
	switch d.Mode {
	case "virtual":
		return d.MeetingLink
	case "in-person":
		return d.OfficeAddress
	}
	return ""
}

func defaultJobDescription() hiring.JobDescription {
	return hiring.JobDescription{
		Position:     DefaultPosition,
		CompanyInfo:  DefaultCompanyInfo,
		Requirements: []string{DefaultRequirement},
	}
}
