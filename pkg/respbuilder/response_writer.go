package respbuilder

import (
	"net/http"

	"github.com/segmentio/encoding/json"
)

func WriteJSON(httpStatus int, rw http.ResponseWriter, r *http.Request, data interface{}) {
	tracer := MustExtract(r.Context())

	payload, err := json.Marshal(data)
	if err != nil {
		reason := ReasonMap[ErrUnhandled]
		httpStatus = reason.HTTPStatus
		payload, _ = json.Marshal(HTTPError{
			Err: ErrorEntity{
				Code:    reason.Code,
				Message: reason.Message,
				Debug:   err.Error(),
				TraceID: tracer.AppTraceID,
			},
		})
	}

	rw.Header().Set("Content-Type", "application/json")
	setHeaders(rw.Header(), tracer)
	rw.WriteHeader(httpStatus)
	_, _ = rw.Write(payload)
}

// WriteError writes err with the status registered for the kind.
func WriteError(reasonKind ErrKind, rw http.ResponseWriter, r *http.Request, err error) {
	WriteJSON(StatusCode(reasonKind), rw, r, Error(r.Context(), reasonKind, err))
}

// WriteHTML writes pre-rendered html, used by chart endpoints.
func WriteHTML(httpStatus int, rw http.ResponseWriter, r *http.Request, body []byte) {
	tracer := MustExtract(r.Context())

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	setHeaders(rw.Header(), tracer)
	rw.WriteHeader(httpStatus)
	_, _ = rw.Write(body)
}
