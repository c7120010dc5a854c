package httptyped

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/apprepo"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/catalogsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/dashsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/sessionsvc"
	"github.com/yusufsyaifudin/appkeeper/pkg/respbuilder"
)

var notFoundErrs = []error{
	appsvc.ErrAppNotFound,
	apprepo.ErrNotFound,
	sessionsvc.ErrSessionNotFound,
	catalogsvc.ErrCandidateNotFound,
}

var conflictErrs = []error{
	sessionsvc.ErrNoOpenForm,
	catalogsvc.ErrDialogClosed,
}

var validationErrs = []error{
	appsvc.ErrFormInvalid,
	appsvc.ErrUnknownSortKey,
	appsvc.ErrUnknownStatus,
	appsvc.ErrUnknownPlatform,
	appsvc.ErrUnknownField,
	apprepo.ErrValidation,
	catalogsvc.ErrEmptyQuery,
	catalogsvc.ErrNoPlatform,
	dashsvc.ErrRangeTooLong,
	dashsvc.ErrInvalidRange,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// ErrKindOf classifies a service error for the response envelope.
func ErrKindOf(err error) respbuilder.ErrKind {
	var verrs validator.ValidationErrors

	switch {
	case isAny(err, notFoundErrs):
		return respbuilder.ErrResourceNotFound
	case isAny(err, conflictErrs):
		return respbuilder.ErrConflict
	case isAny(err, validationErrs), errors.As(err, &verrs):
		return respbuilder.ErrValidation
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return respbuilder.ErrCancelled
	}

	return respbuilder.ErrUnhandled
}
