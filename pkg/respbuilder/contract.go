package respbuilder

import "net/http"

type ErrKind int64

const (
	ErrUnhandled ErrKind = iota + 1
	ErrValidation
	ErrResourceNotFound
	ErrCancelled
	ErrConflict
)

type Reason struct {
	Code       string
	Message    string
	HTTPStatus int
}

var ReasonMap = map[ErrKind]Reason{
	ErrUnhandled:        {Code: "01", Message: "unhandled error", HTTPStatus: http.StatusInternalServerError},
	ErrValidation:       {Code: "02", Message: "error validation", HTTPStatus: http.StatusBadRequest},
	ErrResourceNotFound: {Code: "04", Message: "resource not found", HTTPStatus: http.StatusNotFound},
	ErrCancelled:        {Code: "06", Message: "request cancelled", HTTPStatus: http.StatusRequestTimeout},
	ErrConflict:         {Code: "07", Message: "state conflict", HTTPStatus: http.StatusConflict},
}

// FieldErrorer is implemented by errors carrying one message per input field.
type FieldErrorer interface {
	error
	FieldMessages() map[string]string
}

// ErrorEntity contain code, message, debug (*if applicable) and trace id.
type ErrorEntity struct {
	Code    string            `json:"error_code"`        // to handle by FE
	Message string            `json:"error_description"` // to handle by FE (string version of the error code)
	Debug   string            `json:"debug,omitempty"`   // technical error
	Fields  map[string]string `json:"fields,omitempty"`  // per field validation message
	TraceID string            `json:"trace_id"`
}

// HTTPError follow Facebook error response object:
// https://developers.facebook.com/docs/graph-api/using-graph-api/error-handling/
type HTTPError struct {
	Err ErrorEntity `json:"error"`
}

func (e HTTPError) Error() string {
	return e.Err.Message + ": " + e.Err.Debug
}

// HTTPSuccess success response always wrap in data key.
type HTTPSuccess struct {
	TraceID string      `json:"trace_id"`
	Data    interface{} `json:"data"`
}
