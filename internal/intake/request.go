package intake

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Error codes reported to callers submitting an analysis request.
const (
	CodeInvalidBody      = "INVALID_BODY"
	CodeUserIDNotAllowed = "USER_ID_NOT_ALLOWED"
	CodeMissingCVText    = "MISSING_CV_TEXT"
	CodeInvalidResumeID  = "INVALID_RESUME_ID"
)

var forbiddenKeys = []string{"userId", "user_id"}

// RequestError describes a rejected analysis request.
type RequestError struct {
	Code    string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Request is a validated analysis request.
type Request struct {
	CVText   string
	ResumeID *int64
}

type rawRequest struct {
	CVText   string      `json:"cvText"`
	ResumeID interface{} `json:"resumeId"`
}

// Parse decodes a JSON request body and validates it.
func Parse(body []byte) (*Request, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, &RequestError{Code: CodeInvalidBody, Message: fmt.Sprintf("request body must be a JSON object: %v", err)}
	}
	return Decode(fields)
}

// Decode validates an already parsed request object.
func Decode(fields map[string]interface{}) (*Request, error) {
	if fields == nil {
		return nil, &RequestError{Code: CodeInvalidBody, Message: "request body must be a JSON object"}
	}

	for _, key := range forbiddenKeys {
		if _, ok := fields[key]; ok {
			return nil, &RequestError{Code: CodeUserIDNotAllowed, Message: "user id cannot be provided in request body"}
		}
	}

	if text, ok := fields["cvText"].(string); !ok || strings.TrimSpace(text) == "" {
		return nil, &RequestError{Code: CodeMissingCVText, Message: "cvText is required and must be a non-empty string"}
	}

	var raw rawRequest
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return nil, fmt.Errorf("create request decoder: %w", err)
	}
	if err := decoder.Decode(fields); err != nil {
		return nil, &RequestError{Code: CodeInvalidBody, Message: err.Error()}
	}

	resumeID, err := ParseResumeID(raw.ResumeID)
	if err != nil {
		return nil, err
	}

	return &Request{CVText: raw.CVText, ResumeID: resumeID}, nil
}

// ParseResumeID validates an optional resume id taken from decoded JSON.
// nil means no resume; integers and numeric strings are accepted when positive.
func ParseResumeID(v interface{}) (*int64, error) {
	invalid := &RequestError{Code: CodeInvalidResumeID, Message: fmt.Sprintf("resumeId must be a positive integer, got %v", v)}

	var id int64
	switch val := v.(type) {
	case nil:
		return nil, nil
	case float64:
		if val != float64(int64(val)) {
			return nil, invalid
		}
		id = int64(val)
	case int:
		id = int64(val)
	case int64:
		id = val
	case json.Number:
		parsed, err := val.Int64()
		if err != nil {
			return nil, invalid
		}
		id = parsed
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return nil, invalid
		}
		id = parsed
	default:
		return nil, invalid
	}

	if id <= 0 {
		return nil, invalid
	}

	return &id, nil
}
