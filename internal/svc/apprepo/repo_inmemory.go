package apprepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yusufsyaifudin/appkeeper/pkg/validator"
)

// InMemory keeps the records in insertion order.
// IDs come from a counter that never goes back, so an id is never handed out twice.
type InMemory struct {
	mu      sync.RWMutex
	apps    []App
	index   map[int64]int
	lastID  int64
	version uint64
	now     func() time.Time
}

var _ Repo = (*InMemory)(nil)

func NewInMemory() *InMemory {
	return &InMemory{
		apps:  make([]App, 0),
		index: map[int64]int{},
		now:   time.Now,
	}
}

// Seed loads records keeping their ids. The id counter continues after the highest id.
func (m *InMemory) Seed(apps ...App) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, app := range apps {
		if app.ID <= 0 {
			return fmt.Errorf("%w: seed app '%s' has no id", ErrValidation, app.Name)
		}

		if _, exist := m.index[app.ID]; exist {
			return fmt.Errorf("%w: %d", ErrDuplicateID, app.ID)
		}

		m.index[app.ID] = len(m.apps)
		m.apps = append(m.apps, app)
		if app.ID > m.lastID {
			m.lastID = app.ID
		}
	}

	m.version++
	return nil
}

func (m *InMemory) Create(_ context.Context, in InputCreate) (out OutCreate, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID++

	app := in.App
	app.ID = m.lastID
	if app.CreatedOn == 0 {
		app.CreatedOn = m.now().UTC().UnixMicro()
	}

	m.index[app.ID] = len(m.apps)
	m.apps = append(m.apps, app)
	m.version++

	out = OutCreate{App: app}
	return
}

func (m *InMemory) Update(_ context.Context, in InputUpdate) (out OutUpdate, err error) {
	err = validator.Validate(in)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrValidation, err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx, exist := m.index[in.ID]
	if !exist {
		err = fmt.Errorf("%w: id %d", ErrNotFound, in.ID)
		return
	}

	existing := m.apps[idx]
	app := in.App
	app.ID = existing.ID
	app.CreatedOn = existing.CreatedOn

	m.apps[idx] = app
	m.version++

	out = OutUpdate{App: app}
	return
}

func (m *InMemory) GetByID(_ context.Context, in InputGetByID) (out OutGetByID, err error) {
	err = validator.Validate(in)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrValidation, err)
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, exist := m.index[in.ID]
	if !exist {
		err = fmt.Errorf("%w: id %d", ErrNotFound, in.ID)
		return
	}

	out = OutGetByID{App: m.apps[idx]}
	return
}

func (m *InMemory) List(_ context.Context, _ InputList) (out OutList, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	apps := make([]App, len(m.apps))
	copy(apps, m.apps)

	out = OutList{
		Apps:    apps,
		Version: m.version,
	}
	return
}
