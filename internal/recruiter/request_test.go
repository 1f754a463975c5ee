package recruiter

import (
	"encoding/json"
	"testing"

	"github.com/spigell/autohire/internal/hiring"
)

func decodeJSON(t *testing.T, payload string) ScheduleRequest {
	t.Helper()

	var raw map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	req, err := DecodeScheduleRequest(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return req
}

func TestDecodeScheduleRequestAliases(t *testing.T) {
	req := decodeJSON(t, `{
		"Candidates": [
			{"name": "Jane", "email": "jane@example.com", "score": 87.0, "skills": "Go", "experience": ["ignored"]},
			"not an object"
		],
		"interviewDetails": {"time": "3:00 PM", "meeting_link": "https://meet.example.com"},
		"interview_date": "2026-05-01",
		"interviewMode": "phone",
		"jobDescription": {"position": "SRE", "requirements": "Linux"}
	}`)

	if len(req.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(req.Candidates))
	}
	jane := req.Candidates[0]
	if jane.Name != "Jane" || jane.Score == nil || *jane.Score != 87 || len(jane.Skills) != 1 || jane.Skills[0] != "Go" {
		t.Fatalf("unexpected candidate: %+v", jane)
	}
	if placeholder := req.Candidates[1]; placeholder.Name != "" || placeholder.Email != "" {
		t.Fatalf("expected empty placeholder, got %+v", req.Candidates[1])
	}

	expect := hiring.InterviewDetails{Date: "2026-05-01", Time: "3:00 PM", Mode: "phone", MeetingLink: "https://meet.example.com"}
	if req.InterviewDetails != expect {
		t.Fatalf("expected %+v, got %+v", expect, req.InterviewDetails)
	}

	if req.JobDescription == nil || req.JobDescription.Position != "SRE" || len(req.JobDescription.Requirements) != 1 {
		t.Fatalf("unexpected job description: %+v", req.JobDescription)
	}
}

func TestDecodeScheduleRequestPrecedence(t *testing.T) {
	req := decodeJSON(t, `{
		"candidates": [],
		"Candidates": [{"name": "Jane", "email": "jane@example.com"}],
		"interview_details": {"date": "2026-06-01", "mode": "in-person"},
		"interview_date": "2026-07-01",
		"job_description": {}
	}`)

	if len(req.Candidates) != 1 {
		t.Fatalf("expected fallback to second candidates key, got %+v", req.Candidates)
	}
	if req.InterviewDetails.Date != "2026-06-01" || req.InterviewDetails.Mode != "in-person" {
		t.Fatalf("nested details must win: %+v", req.InterviewDetails)
	}
	if req.JobDescription != nil {
		t.Fatalf("empty job description must be treated as missing, got %+v", req.JobDescription)
	}
}

func TestDecodeScheduleRequestMissingCandidates(t *testing.T) {
	req := decodeJSON(t, `{"candidates": "Jane"}`)
	if len(req.Candidates) != 0 {
		t.Fatalf("expected no candidates, got %+v", req.Candidates)
	}
}
