package respbuilder

import (
	"context"
	"errors"
)

func Error(ctx context.Context, reasonKind ErrKind, err error) HTTPError {
	stuff := MustExtract(ctx)

	reason, ok := ReasonMap[reasonKind]
	if !ok {
		return HTTPError{
			Err: ErrorEntity{
				Code:    "XX",
				Message: "unknown error kind",
				Debug:   "", // don't show message if unknown type, to prevent security breach
				TraceID: stuff.AppTraceID,
			},
		}
	}

	entity := ErrorEntity{
		Code:    reason.Code,
		Message: reason.Message,
		TraceID: stuff.AppTraceID,
	}

	if err != nil {
		entity.Debug = err.Error()

		var fieldErr FieldErrorer
		if errors.As(err, &fieldErr) {
			entity.Fields = fieldErr.FieldMessages()
		}
	}

	return HTTPError{Err: entity}
}

// StatusCode returns the HTTP status registered for the kind, 500 for unknown kind.
func StatusCode(reasonKind ErrKind) int {
	reason, ok := ReasonMap[reasonKind]
	if !ok {
		return ReasonMap[ErrUnhandled].HTTPStatus
	}

	return reason.HTTPStatus
}

func Success(ctx context.Context, data interface{}) HTTPSuccess {
	stuff := MustExtract(ctx)

	return HTTPSuccess{
		TraceID: stuff.AppTraceID,
		Data:    data,
	}
}
