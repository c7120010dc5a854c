package apprepo

import (
	"context"
	"errors"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("app not found")
	ErrDuplicateID = errors.New("app id already exist")
)

// Repo is App repository service
type Repo interface {
	Create(ctx context.Context, in InputCreate) (out OutCreate, err error)
	Update(ctx context.Context, in InputUpdate) (out OutUpdate, err error)
	GetByID(ctx context.Context, in InputGetByID) (out OutGetByID, err error)
	List(ctx context.Context, in InputList) (out OutList, err error)
}

// InputCreate ignores App.ID, the repository assigns it.
type InputCreate struct {
	App App
}

type OutCreate struct {
	App App
}

// InputUpdate replaces every field of the record except ID and CreatedOn.
type InputUpdate struct {
	ID  int64 `validate:"required,gt=0"`
	App App
}

type OutUpdate struct {
	App App
}

type InputGetByID struct {
	ID int64 `validate:"required,gt=0"`
}

type OutGetByID struct {
	App App
}

type InputList struct{}

// OutList returns records in insertion order.
// Version changes every time the collection is mutated.
type OutList struct {
	Apps    []App
	Version uint64
}
