package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ValidationError carries field-level failures, either from client-side
// input validation or from a 4xx response naming the offending fields.
type ValidationError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	msg := e.Message
	if msg == "" {
		msg = "validation failed"
	}
	return msg + ": " + strings.Join(parts, ", ")
}

// RequestError is any non-validation failure: transport errors, 5xx, or a
// 4xx without field details.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Status > 0 && e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == http.StatusNotFound
}

// errorFromResponse maps an error response to a ValidationError when it
// names fields, otherwise to a RequestError.
func errorFromResponse(status int, body []byte) error {
	msg, ok := extractAPIErrorBody(body)
	if !ok {
		msg = strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(status)
		}
		msg = fmt.Sprintf("HTTP %d: %s", status, msg)
	}
	if status >= 400 && status < 500 {
		if fields := extractFieldErrors(body); len(fields) > 0 {
			return &ValidationError{Status: status, Message: msg, Fields: fields}
		}
	}
	return &RequestError{Status: status, Message: msg}
}

func extractAPIErrorBody(body []byte) (string, bool) {
	if len(body) == 0 {
		return "", false
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}

	if msg, ok := parseErrorValue(payload["error"]); ok {
		return msg, true
	}
	if msg, ok := parseErrorValue(payload["message"]); ok {
		return msg, true
	}
	if msg, ok := parseErrorValue(payload["detail"]); ok {
		return msg, true
	}
	return "", false
}

func parseErrorValue(raw any) (string, bool) {
	switch value := raw.(type) {
	case string:
		msg := strings.TrimSpace(value)
		if msg == "" {
			return "", false
		}
		return msg, true
	case map[string]any:
		if nested, ok := parseErrorValue(value["error"]); ok {
			return nested, true
		}
		code, _ := value["code"].(string)
		message, _ := value["message"].(string)
		return formatAPIError(code, message)
	}
	return "", false
}

func formatAPIError(code, message string) (string, bool) {
	code = strings.TrimSpace(code)
	message = strings.TrimSpace(message)
	switch {
	case code != "" && message != "":
		return fmt.Sprintf("%s: %s", code, message), true
	case code != "":
		return code, true
	case message != "":
		return message, true
	default:
		return "", false
	}
}

// extractFieldErrors understands the three shapes the backend uses for
// field errors:
//
//	{"errors": {"name": "must not be blank"}}
//	{"errors": [{"field": "name", "message": "must not be blank"}]}
//	{"success": false, "data": {"name": "must not be blank"}}
func extractFieldErrors(body []byte) map[string]string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	for _, key := range []string{"errors", "fieldErrors", "data"} {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		if fields := fieldMap(raw); len(fields) > 0 {
			return fields
		}
	}
	return nil
}

func fieldMap(raw json.RawMessage) map[string]string {
	var asMap map[string]any
	if err := json.Unmarshal(raw, &asMap); err == nil {
		out := make(map[string]string, len(asMap))
		for k, v := range asMap {
			switch msg := v.(type) {
			case string:
				out[k] = msg
			case []any:
				if len(msg) > 0 {
					if s, ok := msg[0].(string); ok {
						out[k] = s
					}
				}
			}
		}
		return out
	}

	var asList []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &asList); err == nil {
		out := make(map[string]string, len(asList))
		for _, fe := range asList {
			if fe.Field == "" {
				continue
			}
			out[fe.Field] = fe.Message
		}
		return out
	}
	return nil
}
