package sessionsvc

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/catalogsvc"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoOpenForm      = errors.New("no form is open")
)

// FormState is a snapshot of the open form.
type FormState struct {
	Mode   appsvc.FormMode
	AppID  int64
	Status appsvc.Status
	Fields appsvc.FormFields
	Errors appsvc.FieldErrors
}

func formState(f *appsvc.Form) FormState {
	return FormState{
		Mode:   f.Mode(),
		AppID:  f.AppID(),
		Status: f.Status(),
		Fields: f.Fields(),
		Errors: f.Errors(),
	}
}

// Session holds everything one operator has open: the table selection,
// the import dialog and at most one form.
type Session struct {
	ID        string
	CreatedAt time.Time

	apps   appsvc.Service
	board  *Board
	dialog *catalogsvc.Dialog

	mu   sync.Mutex
	form *appsvc.Form
}

func (s *Session) Board() *Board {
	return s.board
}

func (s *Session) Dialog() *catalogsvc.Dialog {
	return s.dialog
}

// OpenCreateForm replaces any open form.
func (s *Session) OpenCreateForm() FormState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.form = appsvc.NewCreateForm()
	return formState(s.form)
}

// OpenEditForm prefills the form from record id.
func (s *Session) OpenEditForm(ctx context.Context, id int64) (FormState, error) {
	app, err := s.View(ctx, id)
	if err != nil {
		return FormState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.form = appsvc.NewEditForm(app)
	return formState(s.form), nil
}

func (s *Session) View(ctx context.Context, id int64) (appsvc.App, error) {
	out, err := s.apps.GetApp(ctx, appsvc.InputGetApp{ID: id})
	if err != nil {
		return appsvc.App{}, err
	}

	return out.App, nil
}

// PickImport imports the dialog result at idx and opens it as an import form.
func (s *Session) PickImport(ctx context.Context, idx int) (FormState, error) {
	fields, err := s.dialog.Pick(ctx, idx)
	if err != nil {
		return FormState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.form = appsvc.NewImportForm(fields)
	return formState(s.form), nil
}

func (s *Session) Form() (FormState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.form == nil {
		return FormState{}, ErrNoOpenForm
	}

	return formState(s.form), nil
}

func (s *Session) SetFormField(field, value string) (FormState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.form == nil {
		return FormState{}, ErrNoOpenForm
	}

	if err := s.form.Set(field, value); err != nil {
		return formState(s.form), err
	}

	return formState(s.form), nil
}

// SubmitForm closes the form on success. On failure the form stays open with its errors.
func (s *Session) SubmitForm(ctx context.Context) (appsvc.App, FormState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.form == nil {
		return appsvc.App{}, FormState{}, ErrNoOpenForm
	}

	app, err := s.form.Submit(ctx, s.apps)
	if err != nil {
		return appsvc.App{}, formState(s.form), err
	}

	s.form = nil
	return app, FormState{}, nil
}

func (s *Session) CloseForm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.form = nil
}

// Clear drops the open form, the import dialog and the table selection.
func (s *Session) Clear() {
	s.dialog.Close()

	s.mu.Lock()
	s.form = nil
	s.mu.Unlock()

	s.board.reset()
}
