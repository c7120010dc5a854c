package catalogsvc

import (
	"context"
	"errors"

	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
)

var (
	ErrEmptyQuery        = errors.New("search query is empty")
	ErrNoPlatform        = errors.New("no platform selected")
	ErrDialogClosed      = errors.New("import dialog is not open")
	ErrCandidateNotFound = errors.New("import candidate not found")
	ErrStaleSearch       = errors.New("search was superseded")
)

type Service interface {
	Search(ctx context.Context, input InputSearch) (out OutSearch, err error)
	Import(ctx context.Context, input InputImport) (out OutImport, err error)
}

// InputSearch looks up every platform in selection order.
type InputSearch struct {
	Platforms []appsvc.Platform `validate:"required,min=1,dive,oneof=Android iOS Web"`
	Query     string            `validate:"notblank"`
}

type OutSearch struct {
	Candidates []Candidate
	Cached     bool
}

// InputImport only uses the first selected platform.
type InputImport struct {
	Platforms []appsvc.Platform `validate:"required,min=1,dive,oneof=Android iOS Web"`
	Candidate Candidate
}

type OutImport struct {
	Fields appsvc.FormFields
}
