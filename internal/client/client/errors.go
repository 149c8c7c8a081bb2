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

// FieldError is a server-reported problem with one input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned when the server rejects individual fields.
type ValidationError struct {
	Status int
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// APIError is any other error status. Message is empty when the server did
// not send one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (%d)", e.Status)
	}
	return e.Message
}

// ErrorKind is the coarse category of a remote failure.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindValidation
	KindGeneral
	KindNetwork
	KindAuthorization
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindGeneral:
		return "general"
	case KindNetwork:
		return "network"
	case KindAuthorization:
		return "authorization"
	default:
		return "other"
	}
}

// Classify maps err onto the remote error taxonomy.
func Classify(err error) ErrorKind {
	var (
		verr *ValidationError
		aerr *APIError
	)
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, ErrUnauthorized):
		return KindAuthorization
	case errors.Is(err, ErrUnavailable):
		return KindNetwork
	case errors.As(err, &verr):
		return KindValidation
	case errors.As(err, &aerr):
		return KindGeneral
	default:
		return KindOther
	}
}

type errorBody struct {
	Error   any              `json:"error"`
	Message string           `json:"message"`
	Errors  []fieldErrorBody `json:"errors"`
}

type fieldErrorBody struct {
	Path    string `json:"path"`
	Param   string `json:"param"`
	Field   string `json:"field"`
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

func (f fieldErrorBody) toFieldError() FieldError {
	fe := FieldError{Field: f.Path, Message: f.Msg}
	if fe.Field == "" {
		fe.Field = f.Param
	}
	if fe.Field == "" {
		fe.Field = f.Field
	}
	if fe.Message == "" {
		fe.Message = f.Message
	}
	return fe
}

// decodeError builds the error for a non-2xx, non-auth response.
func decodeError(status int, body []byte) error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return &APIError{Status: status, Message: plainMessage(body)}
	}

	if len(eb.Errors) > 0 && status < http.StatusInternalServerError {
		fields := make([]FieldError, 0, len(eb.Errors))
		for _, f := range eb.Errors {
			fields = append(fields, f.toFieldError())
		}
		return &ValidationError{Status: status, Fields: fields}
	}

	msg := ""
	switch v := eb.Error.(type) {
	case string:
		msg = v
	case map[string]any:
		if m, ok := v["message"].(string); ok {
			msg = m
		}
	}
	if msg == "" {
		msg = eb.Message
	}
	return &APIError{Status: status, Message: msg}
}

// plainMessage accepts short text bodies and ignores HTML error pages.
func plainMessage(body []byte) string {
	s := strings.TrimSpace(string(body))
	if strings.HasPrefix(s, "<") || len(s) > 200 {
		return ""
	}
	return s
}
