package server

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spigell/autohire/internal/document"
	"github.com/spigell/autohire/internal/recruiter"
)

const (
	msgNoFile           = "No file provided"
	msgNoFileSelected   = "No file selected"
	msgUnsupported      = "File type not supported. Please upload PDF or Word documents."
	msgTextTooShort     = "Extracted text is too short or empty. Please check if the file contains readable text."
	msgJDRequired       = "Job description data is required"
	msgJDInvalid        = "Invalid job description data format"
	msgJSONRequired     = "Invalid data format. JSON required."
	msgNoCandidates     = "Missing or empty 'candidates' field"
	msgPositionRequired = "Job position is required in job description"
	msgScheduleFailed   = "Error scheduling interviews"
)

func (s *Server) handleIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Recruitment Assistant API",
		"status":  "active",
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	ai := false
	if s.aiAvailable != nil {
		ai = s.aiAvailable()
	}
	return c.JSON(fiber.Map{
		"status":       "healthy",
		"ai_available": ai,
		"time":         time.Now().UTC(),
	})
}

func (s *Server) handleProcessJobDescription(c *fiber.Ctx) error {
	data, filename, err := uploadedFile(c)
	if err != nil {
		return err
	}

	report, err := s.recruiter.ProcessJobDescription(c.UserContext(), data, filename)
	if err != nil {
		return documentError(err, "Error processing job description")
	}
	return c.JSON(report)
}

func (s *Server) handleProcessCV(c *fiber.Ctx) error {
	data, filename, err := uploadedFile(c)
	if err != nil {
		return err
	}

	field := c.FormValue("job_description")
	if field == "" {
		return fiber.NewError(fiber.StatusBadRequest, msgJDRequired)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(field), &raw); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgJDInvalid)
	}
	jd, err := recruiter.DecodeJobDescription(raw)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgJDInvalid)
	}

	report, err := s.recruiter.ProcessCV(c.UserContext(), data, filename, jd)
	if err != nil {
		return documentError(err, "Error processing CV")
	}
	return c.JSON(report)
}

func (s *Server) handleScheduleInterviews(c *fiber.Ctx) error {
	var raw map[string]any
	if err := json.Unmarshal(c.Body(), &raw); err != nil || raw == nil {
		return fiber.NewError(fiber.StatusBadRequest, msgJSONRequired)
	}

	req, err := recruiter.DecodeScheduleRequest(raw)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	report, err := s.recruiter.ScheduleInterviews(c.UserContext(), req)
	switch {
	case err == nil:
		return c.JSON(report)
	case errors.Is(err, recruiter.ErrNothingScheduled):
		return c.Status(fiber.StatusBadRequest).JSON(report)
	case errors.Is(err, recruiter.ErrNoCandidates):
		return fiber.NewError(fiber.StatusBadRequest, msgNoCandidates)
	case errors.Is(err, recruiter.ErrPositionRequired):
		return fiber.NewError(fiber.StatusBadRequest, msgPositionRequired)
	default:
		s.logger.Error("scheduling interviews", zap.String("request_id", requestID(c)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": msgScheduleFailed,
			"error":   err.Error(),
		})
	}
}

// uploadedFile reads the "file" form field and checks its extension.
func uploadedFile(c *fiber.Ctx) ([]byte, string, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, msgNoFile)
	}
	if header.Filename == "" {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, msgNoFileSelected)
	}
	if !document.Supported(header.Filename) {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, msgUnsupported)
	}

	file, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

func documentError(err error, prefix string) error {
	var (
		unsupported *document.UnsupportedFormatError
		corrupt     *document.CorruptDocumentError
	)
	switch {
	case errors.Is(err, recruiter.ErrTextTooShort):
		return fiber.NewError(fiber.StatusBadRequest, msgTextTooShort)
	case errors.As(err, &unsupported):
		return fiber.NewError(fiber.StatusBadRequest, msgUnsupported)
	case errors.As(err, &corrupt):
		return fiber.NewError(fiber.StatusUnprocessableEntity, prefix+": "+corrupt.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, prefix+": "+err.Error())
	}
}
