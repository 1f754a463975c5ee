package recruiter

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/autohire/internal/hiring"
)

// ScheduleRequest is a batch of candidates to invite for one position.
type ScheduleRequest struct {
	Candidates       []hiring.Candidate      `json:"candidates"`
	InterviewDetails hiring.InterviewDetails `json:"interview_details"`
	// JobDescription is nil when the request did not carry one.
	JobDescription *hiring.JobDescription `json:"job_description,omitempty"`
}

var (
	candidatesKeys     = []string{"candidates", "Candidates"}
	detailsKeys        = []string{"interviewDetails", "interview_details", "InterviewDetails", "interview"}
	jobDescriptionKeys = []string{"job_description", "jobDescription", "JobDescription"}
	dateKeys           = []string{"interview_date", "interviewDate"}
	timeKeys           = []string{"interview_time", "interviewTime"}
	modeKeys           = []string{"interview_mode", "interviewMode"}
)

// DecodeScheduleRequest reads a loosely shaped JSON object. Field aliases in camel, snake and
// Pascal case are accepted, and date, time and mode may also sit at the top level. Candidate
// entries that are not objects are kept as empty candidates so screening reports them.
func DecodeScheduleRequest(raw map[string]any) (ScheduleRequest, error) {
	var req ScheduleRequest

	if list, ok := first(raw, candidatesKeys).([]any); ok {
		req.Candidates = make([]hiring.Candidate, 0, len(list))
		for _, item := range list {
			var candidate hiring.Candidate
			if obj, ok := item.(map[string]any); ok {
				if err := weakDecode(obj, &candidate); err != nil {
					return ScheduleRequest{}, fmt.Errorf("decode candidate: %w", err)
				}
			}
			req.Candidates = append(req.Candidates, candidate)
		}
	}

	details, _ := first(raw, detailsKeys).(map[string]any)
	if details != nil {
		if err := weakDecode(details, &req.InterviewDetails); err != nil {
			return ScheduleRequest{}, fmt.Errorf("decode interview details: %w", err)
		}
	}
	if req.InterviewDetails.Date == "" {
		req.InterviewDetails.Date = firstString(raw, dateKeys)
	}
	if req.InterviewDetails.Time == "" {
		req.InterviewDetails.Time = firstString(raw, timeKeys)
	}
	if req.InterviewDetails.Mode == "" {
		req.InterviewDetails.Mode = firstString(raw, modeKeys)
	}

	if obj, ok := first(raw, jobDescriptionKeys).(map[string]any); ok {
		jd, err := DecodeJobDescription(obj)
		if err != nil {
			return ScheduleRequest{}, err
		}
		req.JobDescription = &jd
	}

	return req, nil
}

// DecodeJobDescription reads a job description object. Scalars are accepted where lists are
// expected and numbers where strings are expected.
func DecodeJobDescription(raw map[string]any) (hiring.JobDescription, error) {
	var jd hiring.JobDescription
	if err := weakDecode(raw, &jd); err != nil {
		return hiring.JobDescription{}, fmt.Errorf("decode job description: %w", err)
	}
	return jd, nil
}

// first returns the value of the first key holding a non-empty value.
func first(raw map[string]any, keys []string) any {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				continue
			}
		case []any:
			if len(v) == 0 {
				continue
			}
		case map[string]any:
			if len(v) == 0 {
				continue
			}
		}
		return value
	}
	return nil
}

func firstString(raw map[string]any, keys []string) string {
	if s, ok := first(raw, keys).(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func weakDecode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
