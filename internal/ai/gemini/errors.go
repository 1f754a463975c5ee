package gemini

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/spigell/autohire/internal/ai"
)

// kindOf maps a GenAI SDK or transport error onto an ai.ErrorKind.
func kindOf(err error) ai.ErrorKind {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiKind(apiErr)
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiKind(*apiErrPtr)
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return ai.KindConnectivity
	}

	return ai.KindOther
}

func apiKind(err genai.APIError) ai.ErrorKind {
	status := strings.ToUpper(strings.TrimSpace(err.Status))
	message := strings.ToLower(err.Message)

	switch {
	case err.Code == http.StatusTooManyRequests, status == "RESOURCE_EXHAUSTED":
		return ai.KindRateLimit
	case err.Code == http.StatusUnauthorized, err.Code == http.StatusForbidden,
		status == "UNAUTHENTICATED", status == "PERMISSION_DENIED":
		return ai.KindAuth
	// Gemini rejects unknown keys with 400 INVALID_ARGUMENT.
	case err.Code == http.StatusBadRequest && strings.Contains(message, "api key"):
		return ai.KindAuth
	case err.Code >= http.StatusInternalServerError, status == "UNAVAILABLE", status == "DEADLINE_EXCEEDED":
		return ai.KindConnectivity
	default:
		return ai.KindOther
	}
}
