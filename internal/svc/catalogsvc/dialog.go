package catalogsvc

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
	"github.com/yusufsyaifudin/appkeeper/pkg/logger"
	"github.com/yusufsyaifudin/appkeeper/pkg/worker"
)

const (
	PlaceholderNoPlatform = "Select a platform first"
	PlaceholderAndroid    = "Enter Package Name, Play Store URL, or App Name"
	PlaceholderIOS        = "Enter App ID, App Store URL, or App Name"
	PlaceholderWeb        = "Enter Website URL"
)

// DialogState is a snapshot of the import dialog.
type DialogState struct {
	Open        bool
	Platforms   []appsvc.Platform
	Query       string
	Placeholder string
	Searching   bool
	Results     []Candidate
	Error       string
	Generation  uint64
}

// Dialog is the import dialog of one session. Search runs on the worker pool,
// a completion only lands when the dialog is still open and no newer search,
// platform change or close happened since it started.
type Dialog struct {
	svc    Service
	worker worker.Service

	mu        sync.Mutex
	open      bool
	platforms []appsvc.Platform
	query     string
	results   []Candidate
	searching bool
	lastErr   error
	gen       uint64
	cancel    context.CancelFunc
}

func NewDialog(svc Service, w worker.Service) *Dialog {
	return &Dialog{
		svc:    svc,
		worker: w,
	}
}

func (d *Dialog) Open() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.resetLocked()
	d.open = true
}

// Close cancels the pending search and drops every selection.
func (d *Dialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.resetLocked()
	d.open = false
}

func (d *Dialog) resetLocked() {
	d.cancelLocked()
	d.platforms = nil
	d.query = ""
	d.results = nil
	d.lastErr = nil
}

// cancelLocked stops the pending search and invalidates its completion.
func (d *Dialog) cancelLocked() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}

	d.searching = false
	d.gen++
}

func (d *Dialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// TogglePlatform clears the query and results.
func (d *Dialog) TogglePlatform(p appsvc.Platform) error {
	if !p.Valid() {
		return fmt.Errorf("%w '%s'", appsvc.ErrUnknownPlatform, p)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return ErrDialogClosed
	}

	f := appsvc.Filter{Platform: d.platforms}.TogglePlatform(p)
	d.platforms = f.Platform

	d.cancelLocked()
	d.query = ""
	d.results = nil
	d.lastErr = nil
	return nil
}

func (d *Dialog) SetQuery(q string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return ErrDialogClosed
	}

	d.query = q
	return nil
}

// Placeholder is the input hint of the selected platform with the highest
// priority: Android, then iOS, then Web.
func (d *Dialog) Placeholder() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.placeholderLocked()
}

func (d *Dialog) placeholderLocked() string {
	switch {
	case len(d.platforms) == 0:
		return PlaceholderNoPlatform
	case d.selectedLocked(appsvc.PlatformAndroid):
		return PlaceholderAndroid
	case d.selectedLocked(appsvc.PlatformIOS):
		return PlaceholderIOS
	default:
		return PlaceholderWeb
	}
}

func (d *Dialog) selectedLocked(p appsvc.Platform) bool {
	for _, sel := range d.platforms {
		if sel == p {
			return true
		}
	}
	return false
}

func (d *Dialog) State() DialogState {
	d.mu.Lock()
	defer d.mu.Unlock()

	state := DialogState{
		Open:        d.open,
		Platforms:   append([]appsvc.Platform{}, d.platforms...),
		Query:       d.query,
		Placeholder: d.placeholderLocked(),
		Searching:   d.searching,
		Results:     append([]Candidate{}, d.results...),
		Generation:  d.gen,
	}

	if d.lastErr != nil {
		state.Error = d.lastErr.Error()
	}

	return state
}

// Search queues a lookup and returns a channel closed once the job finished, applied or not.
// A pending search is superseded.
func (d *Dialog) Search(ctx context.Context) (<-chan struct{}, error) {
	d.mu.Lock()

	if !d.open {
		d.mu.Unlock()
		return nil, ErrDialogClosed
	}

	if len(d.platforms) == 0 {
		d.mu.Unlock()
		return nil, ErrNoPlatform
	}

	if strings.TrimSpace(d.query) == "" {
		d.mu.Unlock()
		return nil, ErrEmptyQuery
	}

	d.cancelLocked()

	jobCtx, cancel := context.WithCancel(logger.Detach(ctx))
	job := &searchJob{
		id:     nextSearchJobID(),
		ctx:    jobCtx,
		dialog: d,
		gen:    d.gen,
		input: InputSearch{
			Platforms: append([]appsvc.Platform{}, d.platforms...),
			Query:     d.query,
		},
		done: make(chan struct{}),
	}

	d.cancel = cancel
	d.searching = true
	d.results = nil
	d.lastErr = nil
	d.mu.Unlock()

	// queueing may block on a full pool, the lock must not be held here
	// since running jobs take it in PostExecute
	if err := d.worker.AddJob(job); err != nil {
		d.mu.Lock()
		if d.gen == job.gen {
			d.cancelLocked()
		}
		d.mu.Unlock()

		cancel()
		return nil, fmt.Errorf("queue import search: %w", err)
	}

	logger.Debug(ctx, "import search queued",
		logger.KV("job_id", job.id),
		logger.KV("queued", d.worker.Queued()),
	)

	return job.done, nil
}

// Pick turns the result at idx into form fields and closes the dialog.
func (d *Dialog) Pick(ctx context.Context, idx int) (appsvc.FormFields, error) {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return appsvc.FormFields{}, ErrDialogClosed
	}

	if idx < 0 || idx >= len(d.results) {
		d.mu.Unlock()
		return appsvc.FormFields{}, fmt.Errorf("%w: index %d", ErrCandidateNotFound, idx)
	}

	input := InputImport{
		Platforms: append([]appsvc.Platform{}, d.platforms...),
		Candidate: d.results[idx],
	}
	d.mu.Unlock()

	out, err := d.svc.Import(ctx, input)
	if err != nil {
		return appsvc.FormFields{}, err
	}

	d.Close()
	return out.Fields, nil
}

func (d *Dialog) isCurrent(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open && d.gen == gen
}

func (d *Dialog) apply(ctx context.Context, gen uint64, out OutSearch, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open || d.gen != gen {
		logger.Debug(ctx, "discarding stale import search", logger.KV("generation", gen), logger.KV("current", d.gen))
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}

	d.searching = false
	if err != nil {
		d.lastErr = err
		d.results = nil
		return
	}

	d.results = out.Candidates
}
