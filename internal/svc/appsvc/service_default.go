package appsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yusufsyaifudin/appkeeper/internal/svc/apprepo"
	"github.com/yusufsyaifudin/appkeeper/pkg/logger"
	"github.com/yusufsyaifudin/appkeeper/pkg/tracer"
	"github.com/yusufsyaifudin/appkeeper/pkg/validator"
)

type DefaultServiceConfig struct {
	AppRepo apprepo.Repo     `validate:"required"`
	Now     func() time.Time `validate:"-"`
}

type DefaultService struct {
	Config DefaultServiceConfig
}

var _ Service = (*DefaultService)(nil)

func New(dep DefaultServiceConfig) (*DefaultService, error) {
	if err := validator.Validate(dep); err != nil {
		return nil, err
	}

	if dep.Now == nil {
		dep.Now = time.Now
	}

	return &DefaultService{
		Config: dep,
	}, nil
}

// CreateApp is a function that knows business logic.
// It doesn't know whether the input come from HTTP or GRPC or any input.
func (d *DefaultService) CreateApp(ctx context.Context, input InputCreateApp) (out OutCreateApp, err error) {
	ctx, span := tracer.StartSpan(ctx, "appsvc.CreateApp")
	defer span.End()

	if fieldErrs := ValidateFields(input.Fields); fieldErrs != nil {
		err = fmt.Errorf("create app: %w", fieldErrs)
		return
	}

	app := toRepo(input.Fields)
	app.Status = string(StatusInReview)
	app.CreatedOn = d.Config.Now().UTC().UnixMicro()

	appOut, err := d.Config.AppRepo.Create(ctx, apprepo.InputCreate{
		App: app,
	})
	if err != nil {
		err = fmt.Errorf("persist new app: %w", err)
		return
	}

	logger.Info(ctx, "app created", logger.KV("id", appOut.App.ID), logger.KV("platform", appOut.App.Platform))

	out = OutCreateApp{
		App: AppFromRepo(appOut.App),
	}
	return
}

// PutApp shallow merges the submitted fields into the record, ID and CreatedOn are kept.
func (d *DefaultService) PutApp(ctx context.Context, input InputPutApp) (out OutPutApp, err error) {
	ctx, span := tracer.StartSpan(ctx, "appsvc.PutApp")
	defer span.End()

	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	fieldErrs := ValidateFields(input.Fields)
	if input.Status != "" && !input.Status.Valid() {
		if fieldErrs == nil {
			fieldErrs = FieldErrors{}
		}

		fieldErrs[FieldStatus] = MsgStatusUnknown
	}

	if fieldErrs != nil {
		err = fmt.Errorf("update app %d: %w", input.ID, fieldErrs)
		return
	}

	existing, err := d.GetApp(ctx, InputGetApp{ID: input.ID})
	if err != nil {
		return
	}

	status := existing.App.Status
	if input.Status != "" {
		status = input.Status
	}

	app := toRepo(input.Fields)
	app.Status = string(status)

	appOut, err := d.Config.AppRepo.Update(ctx, apprepo.InputUpdate{
		ID:  input.ID,
		App: app,
	})
	if errors.Is(err, apprepo.ErrNotFound) {
		err = fmt.Errorf("%w: id %d", ErrAppNotFound, input.ID)
		return
	}

	if err != nil {
		err = fmt.Errorf("persist app %d: %w", input.ID, err)
		return
	}

	out = OutPutApp{
		App: AppFromRepo(appOut.App),
	}
	return
}

func (d *DefaultService) GetApp(ctx context.Context, input InputGetApp) (out OutGetApp, err error) {
	ctx, span := tracer.StartSpan(ctx, "appsvc.GetApp")
	defer span.End()

	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	appOut, err := d.Config.AppRepo.GetByID(ctx, apprepo.InputGetByID{ID: input.ID})
	if errors.Is(err, apprepo.ErrNotFound) {
		err = fmt.Errorf("%w: id %d", ErrAppNotFound, input.ID)
		return
	}

	if err != nil {
		return
	}

	out = OutGetApp{
		App: AppFromRepo(appOut.App),
	}
	return
}

func (d *DefaultService) ListApp(ctx context.Context, input InputListApp) (out OutListApp, err error) {
	ctx, span := tracer.StartSpan(ctx, "appsvc.ListApp")
	defer span.End()

	if input.SortBy == "" {
		input.SortBy = SortNewest
	}

	if !input.SortBy.Valid() {
		err = fmt.Errorf("%w '%s'", ErrUnknownSortKey, input.SortBy)
		return
	}

	err = input.Filter.Validate()
	if err != nil {
		return
	}

	listOut, err := d.Config.AppRepo.List(ctx, apprepo.InputList{})
	if err != nil {
		err = fmt.Errorf("list apps: %w", err)
		return
	}

	apps := FilterApps(appsFromRepo(listOut.Apps), input.Filter)
	apps = SortApps(apps, input.SortBy)

	out = OutListApp{
		Filter:  input.Filter,
		SortBy:  input.SortBy,
		Page:    Paginate(apps, input.Page, PageSize),
		Version: listOut.Version,
	}
	return
}

// ValidateApp runs the form rules without writing anything.
func (d *DefaultService) ValidateApp(ctx context.Context, input InputValidateApp) (out OutValidateApp, err error) {
	_, span := tracer.StartSpan(ctx, "appsvc.ValidateApp")
	defer span.End()

	fieldErrs := ValidateFields(input.Fields)
	if fieldErrs == nil {
		fieldErrs = FieldErrors{}
	}

	out = OutValidateApp{
		Valid:  len(fieldErrs) == 0,
		Errors: fieldErrs,
	}
	return
}

func toRepo(fields FormFields) apprepo.App {
	return apprepo.App{
		Name:        strings.TrimSpace(fields.Name),
		Category:    strings.TrimSpace(fields.Category),
		Description: fields.Description,
		Logo:        strings.TrimSpace(fields.Logo),
		WebsiteURL:  strings.TrimSpace(fields.WebsiteURL),
		Platform:    string(fields.Platform),
		PackageName: strings.TrimSpace(fields.PackageName),
	}
}
