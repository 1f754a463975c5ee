package mailer

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type fakeSender struct {
	from       string
	recipients []string
	msg        []byte
	err        error
}

func (f *fakeSender) Send(reversePath string, recipients []string, msg []byte) error {
	f.from = reversePath
	f.recipients = recipients
	f.msg = msg
	return f.err
}

func validInvitation() Invitation {
	return Invitation{
		CandidateEmail: "jane@example.com",
		CandidateName:  "Jane Doe",
		Position:       "Backend Engineer",
		Date:           "2026-10-19",
		Time:           "10:00 AM",
		Mode:           "virtual",
	}
}

func TestSendInvitation(t *testing.T) {
	sender := &fakeSender{}
	m := New(Config{FromAddress: "hr@example.com"}, sender, zap.NewNop())

	res := m.SendInvitation(validInvitation())

	if !res.Success || !res.Delivered || res.Error != "" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Preview.Subject != "Interview Invitation: Backend Engineer Position" {
		t.Fatalf("unexpected subject: %q", res.Preview.Subject)
	}
	if res.Preview.Date != "Monday, October 19, 2026" {
		t.Fatalf("unexpected date: %q", res.Preview.Date)
	}
	if res.Preview.Location != DefaultMeetingLink {
		t.Fatalf("unexpected location: %q", res.Preview.Location)
	}
	if !strings.Contains(res.Preview.Body, "For this virtual interview:") {
		t.Fatalf("missing instructions in body: %s", res.Preview.Body)
	}

	if sender.from != "hr@example.com" || len(sender.recipients) != 1 || sender.recipients[0] != "jane@example.com" {
		t.Fatalf("unexpected envelope: %s -> %v", sender.from, sender.recipients)
	}
	if !strings.Contains(string(sender.msg), "multipart/alternative") {
		t.Fatal("expected text and html alternatives")
	}
}

func TestSendInvitationModes(t *testing.T) {
	m := New(Config{OfficeAddress: "1 Main St"}, nil, nil)

	tests := []struct {
		mode     string
		location string
		expect   string
	}{
		{mode: "In-Person", expect: "1 Main St"},
		{mode: "in-person", location: "Room 4", expect: "Room 4"},
		{mode: "virtual", location: "https://meet.example/x", expect: "https://meet.example/x"},
		{mode: "phone", location: "ignored", expect: PhoneLocation},
	}

	for _, tt := range tests {
		t.Run(tt.mode+tt.location, func(t *testing.T) {
			inv := validInvitation()
			inv.Mode = tt.mode
			inv.Location = tt.location

			res := m.SendInvitation(inv)

			if !res.Success || res.Delivered {
				t.Fatalf("expected rendered-only success, got %+v", res)
			}
			if res.Preview.Location != tt.expect {
				t.Fatalf("expected location %q, got %q", tt.expect, res.Preview.Location)
			}
		})
	}
}

func TestSendInvitationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Invitation)
		sender *fakeSender
		expect string
	}{
		{name: "missing field", mutate: func(i *Invitation) { i.Position = " " }, expect: "Missing required fields for sending email"},
		{name: "bad email", mutate: func(i *Invitation) { i.CandidateEmail = "jane" }, expect: "Invalid email format: jane"},
		{name: "bad date", mutate: func(i *Invitation) { i.Date = "19/10/2026" }, expect: "Invalid date format: 19/10/2026"},
		{name: "smtp", sender: &fakeSender{err: errors.New("connection refused")}, expect: "SMTP error: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := validInvitation()
			if tt.mutate != nil {
				tt.mutate(&inv)
			}

			var m *Mailer
			if tt.sender != nil {
				m = New(Config{}, tt.sender, nil)
			} else {
				m = New(Config{}, nil, nil)
			}

			res := m.SendInvitation(inv)
			if res.Success || res.Preview != nil || !strings.HasPrefix(res.Error, tt.expect) {
				t.Fatalf("expected error %q, got %+v", tt.expect, res)
			}
		})
	}
}

func TestNewSMTPSender(t *testing.T) {
	if NewSMTPSender(Config{}, "") != nil {
		t.Fatal("expected nil sender without host")
	}
	if NewSMTPSender(Config{SMTPHost: "smtp.example.com", Username: "u"}, "p") == nil {
		t.Fatal("expected sender for configured host")
	}
}
