// Package mailer builds and delivers interview invitation emails.
package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/jhillyerd/enmime"
	"go.uber.org/zap"
)

const (
	DefaultFromName      = "Hiring Team"
	DefaultFromAddress   = "hiring@autohire.local"
	DefaultOfficeAddress = "123 Tech Park, Innovation Street, Silicon Valley, CA 94025"
	DefaultMeetingLink   = "https://zoom.us/j/12345678"
	PhoneLocation        = "Phone Interview"

	inputDateLayout   = "2006-01-02"
	displayDateLayout = "Monday, January 02, 2006"
)

// Config describes the sender identity and the SMTP relay.
type Config struct {
	FromName      string `mapstructure:"from-name"`
	FromAddress   string `mapstructure:"from-address"`
	SMTPHost      string `mapstructure:"smtp-host"`
	SMTPPort      int    `mapstructure:"smtp-port"`
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	PasswordFile  string `mapstructure:"password-file"`
	OfficeAddress string `mapstructure:"office-address"`
	MeetingLink   string `mapstructure:"meeting-link"`
}

// Invitation is one interview to announce.
type Invitation struct {
	CandidateEmail string
	CandidateName  string
	Position       string
	Date           string
	Time           string
	Mode           string
	Location       string
}

// Preview is what the candidate receives.
type Preview struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Mode     string `json:"mode"`
	Location string `json:"location"`
}

// Result reports a send attempt. Delivered is false when no SMTP relay is configured.
type Result struct {
	Success   bool     `json:"success"`
	Delivered bool     `json:"delivered"`
	Preview   *Preview `json:"preview,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }

type Mailer struct {
	cfg    Config
	sender enmime.Sender
	logger *zap.Logger
}

// New creates a Mailer. A nil sender renders invitations without delivering them.
func New(cfg Config, sender enmime.Sender, logger *zap.Logger) *Mailer {
	if strings.TrimSpace(cfg.FromName) == "" {
		cfg.FromName = DefaultFromName
	}
	if strings.TrimSpace(cfg.FromAddress) == "" {
		cfg.FromAddress = DefaultFromAddress
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{cfg: cfg, sender: sender, logger: logger}
}

// NewSMTPSender returns an enmime sender for the configured relay, or nil when no host is set.
func NewSMTPSender(cfg Config, password string) enmime.Sender {
	host := strings.TrimSpace(cfg.SMTPHost)
	if host == "" {
		return nil
	}

	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, password, host)
	}
	return enmime.NewSMTP(net.JoinHostPort(host, strconv.Itoa(port)), auth)
}

// SendInvitation validates inv, renders it and hands it to the SMTP relay.
// Failures are reported in the Result and never returned as errors.
func (m *Mailer) SendInvitation(inv Invitation) Result {
	log := m.logger.With(zap.String("to", inv.CandidateEmail), zap.String("position", inv.Position))

	preview, html, err := m.render(inv)
	if err != nil {
		var vErr *validationError
		if errors.As(err, &vErr) {
			log.Warn("invitation validation failed", zap.Error(err))
			return Result{Error: err.Error()}
		}
		log.Error("render invitation", zap.Error(err))
		return Result{Error: fmt.Sprintf("Unexpected error: %v", err)}
	}

	builder := enmime.Builder().
		From(m.cfg.FromName, m.cfg.FromAddress).
		To(inv.CandidateName, inv.CandidateEmail).
		Subject(preview.Subject).
		Date(time.Now()).
		Text([]byte(preview.Body)).
		HTML(html)

	if m.sender == nil {
		if _, err := builder.Build(); err != nil {
			log.Error("build invitation", zap.Error(err))
			return Result{Error: fmt.Sprintf("Unexpected error: %v", err)}
		}
		log.Info("smtp relay is not configured; invitation rendered only")
		return Result{Success: true, Preview: preview}
	}

	if err := builder.Send(m.sender); err != nil {
		log.Error("send invitation", zap.Error(err))
		return Result{Error: fmt.Sprintf("SMTP error: %v", err)}
	}

	log.Info("invitation sent")
	return Result{Success: true, Delivered: true, Preview: preview}
}

func (m *Mailer) render(inv Invitation) (*Preview, []byte, error) {
	fields := []string{inv.CandidateEmail, inv.CandidateName, inv.Position, inv.Date, inv.Time, inv.Mode}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return nil, nil, &validationError{msg: "Missing required fields for sending email"}
		}
	}

	if !strings.Contains(inv.CandidateEmail, "@") || !strings.Contains(inv.CandidateEmail, ".") {
		return nil, nil, &validationError{msg: "Invalid email format: " + inv.CandidateEmail}
	}

	date, err := time.Parse(inputDateLayout, strings.TrimSpace(inv.Date))
	if err != nil {
		return nil, nil, &validationError{msg: "Invalid date format: " + inv.Date}
	}

	details := m.detailsFor(inv.Mode, inv.Location)
	preview := &Preview{
		To:       inv.CandidateEmail,
		Subject:  fmt.Sprintf("Interview Invitation: %s Position", inv.Position),
		Name:     inv.CandidateName,
		Position: inv.Position,
		Date:     date.Format(displayDateLayout),
		Time:     inv.Time,
		Mode:     inv.Mode,
		Location: details.location,
	}
	preview.Body = textBody(preview, details.instructions)

	var html bytes.Buffer
	if err := htmlTemplate.Execute(&html, htmlData{Preview: preview, Instructions: details.instructions}); err != nil {
		return nil, nil, fmt.Errorf("render html body: %w", err)
	}

	return preview, html.Bytes(), nil
}

type modeDetails struct {
	instructions string
	location     string
}

func (m *Mailer) detailsFor(mode, location string) modeDetails {
	location = strings.TrimSpace(location)

	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "virtual":
		if location == "" {
			location = firstNonEmpty(m.cfg.MeetingLink, DefaultMeetingLink)
		}
		return modeDetails{instructions: virtualInstructions, location: location}
	case "in-person":
		if location == "" {
			location = firstNonEmpty(m.cfg.OfficeAddress, DefaultOfficeAddress)
		}
		return modeDetails{instructions: inPersonInstructions, location: location}
	default:
		return modeDetails{instructions: phoneInstructions, location: PhoneLocation}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
