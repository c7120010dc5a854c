package appsvc

import (
	"context"
)

// Service is an interface of final business logic.
// Any input and output from/to this function should be SAFE for external party to consume,
// i.e: request or response from HTTP handler
type Service interface {
	CreateApp(ctx context.Context, input InputCreateApp) (out OutCreateApp, err error)
	PutApp(ctx context.Context, input InputPutApp) (out OutPutApp, err error)
	GetApp(ctx context.Context, input InputGetApp) (out OutGetApp, err error)
	ListApp(ctx context.Context, input InputListApp) (out OutListApp, err error)
	ValidateApp(ctx context.Context, input InputValidateApp) (out OutValidateApp, err error)
}

// InputCreateApp always creates with status In Review.
type InputCreateApp struct {
	Fields FormFields
}

type OutCreateApp struct {
	App App
}

// InputPutApp replaces every field of app ID with Fields.
// Empty Status keeps the current status.
type InputPutApp struct {
	ID     int64      `validate:"required,gt=0"`
	Fields FormFields `validate:"-"`
	Status Status     `validate:"-"`
}

type OutPutApp struct {
	App App
}

type InputGetApp struct {
	ID int64 `validate:"required,gt=0"`
}

type OutGetApp struct {
	App App
}

// InputListApp runs filter, then sort, then pagination. Empty SortBy means newest first.
type InputListApp struct {
	Filter Filter
	SortBy SortKey
	Page   int
}

type OutListApp struct {
	Filter  Filter
	SortBy  SortKey
	Page    Page
	Version uint64
}

type InputValidateApp struct {
	Fields FormFields
}

type OutValidateApp struct {
	Valid  bool
	Errors FieldErrors
}
