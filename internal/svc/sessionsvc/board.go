package sessionsvc

import (
	"context"
	"fmt"
	"sync"

	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
)

// BoardState is the table selection of one session.
type BoardState struct {
	Filter appsvc.Filter
	SortBy appsvc.SortKey
	Page   int
}

// Board coordinates filter, sort and page of the applications table.
// The page goes back to 1 when the filter or sort changes, and when the
// store changed since the last render unless the page was moved since.
type Board struct {
	apps appsvc.Service

	mu         sync.Mutex
	filter     appsvc.Filter
	sortBy     appsvc.SortKey
	page       int
	totalPages int
	version    uint64
	rendered   bool
	navigated  bool
}

func NewBoard(apps appsvc.Service) *Board {
	return &Board{
		apps:   apps,
		sortBy: appsvc.SortNewest,
		page:   1,
	}
}

func (b *Board) SetFilters(f appsvc.Filter) error {
	if err := f.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.filter = appsvc.Filter{
		Status:   append([]appsvc.Status(nil), f.Status...),
		Platform: append([]appsvc.Platform(nil), f.Platform...),
	}
	b.page = 1
	return nil
}

func (b *Board) ToggleStatus(s appsvc.Status) error {
	if !s.Valid() {
		return appsvc.Filter{Status: []appsvc.Status{s}}.Validate()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.filter = b.filter.ToggleStatus(s)
	b.page = 1
	return nil
}

func (b *Board) TogglePlatform(p appsvc.Platform) error {
	if !p.Valid() {
		return appsvc.Filter{Platform: []appsvc.Platform{p}}.Validate()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.filter = b.filter.TogglePlatform(p)
	b.page = 1
	return nil
}

func (b *Board) SetSortBy(key appsvc.SortKey) error {
	if !key.Valid() {
		return fmt.Errorf("%w '%s'", appsvc.ErrUnknownSortKey, key)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.sortBy = key
	b.page = 1
	return nil
}

// SetPage is clamped on the next render.
func (b *Board) SetPage(page int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if page < 1 {
		page = 1
	}

	b.page = page
	b.navigated = true
}

// NextPage moves one page forward, staying on the last page.
func (b *Board) NextPage(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.step(ctx, 1)
}

// PrevPage moves one page back, staying on page 1.
func (b *Board) PrevPage(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.step(ctx, -1)
}

// step counts pages from the current store. A store change not yet rendered
// resets the page before moving.
func (b *Board) step(ctx context.Context, delta int) error {
	out, err := b.list(ctx, 1)
	if err != nil {
		return err
	}

	page := b.page
	if b.rendered && out.Version != b.version {
		page = 1
	}

	page += delta
	if page > out.Page.TotalPages {
		page = out.Page.TotalPages
	}
	if page < 1 {
		page = 1
	}

	b.page = page
	b.totalPages = out.Page.TotalPages
	b.version = out.Version
	b.navigated = true
	return nil
}

func (b *Board) State() BoardState {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BoardState{
		Filter: appsvc.Filter{
			Status:   append([]appsvc.Status{}, b.filter.Status...),
			Platform: append([]appsvc.Platform{}, b.filter.Platform...),
		},
		SortBy: b.sortBy,
		Page:   b.page,
	}
}

// Rows renders the current page.
func (b *Board) Rows(ctx context.Context) (appsvc.OutListApp, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out, err := b.list(ctx, b.page)
	if err != nil {
		return appsvc.OutListApp{}, err
	}

	if b.rendered && !b.navigated && out.Version != b.version && out.Page.Page != 1 {
		out, err = b.list(ctx, 1)
		if err != nil {
			return appsvc.OutListApp{}, err
		}
	}

	b.page = out.Page.Page
	b.totalPages = out.Page.TotalPages
	b.version = out.Version
	b.rendered = true
	b.navigated = false
	return out, nil
}

func (b *Board) list(ctx context.Context, page int) (appsvc.OutListApp, error) {
	return b.apps.ListApp(ctx, appsvc.InputListApp{
		Filter: b.filter,
		SortBy: b.sortBy,
		Page:   page,
	})
}

func (b *Board) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.filter = appsvc.Filter{}
	b.sortBy = appsvc.SortNewest
	b.page = 1
	b.totalPages = 0
	b.version = 0
	b.rendered = false
	b.navigated = false
}
