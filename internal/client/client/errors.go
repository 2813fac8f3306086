package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// RequestError is returned when the backend answers with a status >= 400.
// Detail carries the backend's human-readable "detail" message, if any.
type RequestError struct {
	Status    int
	Detail    string
	RequestID string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Is lets callers match auth and availability failures with errors.Is.
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrUnavailable:
		return e.Status == http.StatusBadGateway ||
			e.Status == http.StatusServiceUnavailable ||
			e.Status == http.StatusGatewayTimeout
	}
	return false
}

// DetailOf extracts RequestError.Detail from anywhere in err's chain.
func DetailOf(err error) string {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Detail
	}
	return ""
}

type validationIssue struct {
	Msg string `json:"msg"`
}

// parseDetail reads the "detail" field of an error body. The backend sends
// either a string or, for schema validation failures, a list of issues whose
// messages are joined. Anything else yields "".
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}

	var issues []validationIssue
	if err := json.Unmarshal(envelope.Detail, &issues); err == nil {
		msgs := make([]string, 0, len(issues))
		for _, i := range issues {
			if m := strings.TrimSpace(i.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
