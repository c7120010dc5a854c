package appsvc

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgvalidator "github.com/yusufsyaifudin/appkeeper/pkg/validator"
)

const (
	FieldName        = "name"
	FieldCategory    = "category"
	FieldLogo        = "logo"
	FieldWebsiteURL  = "websiteUrl"
	FieldPlatform    = "platform"
	FieldPackageName = "packageName"
	FieldDescription = "description"
	FieldStatus      = "status"
)

const (
	MsgNameRequired        = "Name is required"
	MsgCategoryRequired    = "Category is required"
	MsgPlatformRequired    = "Platform is required"
	MsgPlatformUnknown     = "Platform must be one of Android, iOS, Web"
	MsgPackageNameRequired = "Package Name/App ID is required for Android/iOS"
	MsgStatusUnknown       = "Status must be one of Active, In Review, In Testing"
)

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrFormInvalid  = errors.New("form is invalid")
)

// FormFields are the editable fields of an application.
type FormFields struct {
	Name        string   `json:"name" validate:"notblank"`
	Category    string   `json:"category" validate:"notblank"`
	Logo        string   `json:"logo"`
	WebsiteURL  string   `json:"websiteUrl"`
	Platform    Platform `json:"platform" validate:"required,oneof=Android iOS Web"`
	PackageName string   `json:"packageName"`
	Description string   `json:"description"`
}

// FieldsFromApp prefills the form from an existing record.
func FieldsFromApp(app App) FormFields {
	return FormFields{
		Name:        app.Name,
		Category:    app.Category,
		Logo:        app.Logo,
		WebsiteURL:  app.WebsiteURL,
		Platform:    app.Platform,
		PackageName: app.PackageName,
		Description: app.Description,
	}
}

// FieldErrors maps field name to its message. It is an error so it can travel through
// service returns and be found with errors.As.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, f[k]))
	}

	return strings.Join(parts, "; ")
}

func (f FieldErrors) FieldMessages() map[string]string {
	out := make(map[string]string, len(f))
	for k, v := range f {
		out[k] = v
	}

	return out
}

func (f FieldErrors) Is(target error) bool {
	return target == ErrFormInvalid
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := pkgvalidator.New()
	v.RegisterStructValidation(packageNameRule, FormFields{})
	return v
}

func packageNameRule(sl validator.StructLevel) {
	fields, ok := sl.Current().Interface().(FormFields)
	if !ok {
		return
	}

	if fields.Platform.RequiresPackageName() && strings.TrimSpace(fields.PackageName) == "" {
		sl.ReportError(fields.PackageName, FieldPackageName, "PackageName", "required_for_platform", string(fields.Platform))
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case FieldName:
		return MsgNameRequired
	case FieldCategory:
		return MsgCategoryRequired
	case FieldPlatform:
		if fe.Tag() == "required" {
			return MsgPlatformRequired
		}

		return MsgPlatformUnknown
	case FieldPackageName:
		return MsgPackageNameRequired
	}

	return fmt.Sprintf("%s is invalid", fe.Field())
}

// ValidateFields returns nil when every rule passes.
func ValidateFields(fields FormFields) FieldErrors {
	err := formValidator.Struct(fields)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		if _, exist := out[fe.Field()]; exist {
			continue
		}

		out[fe.Field()] = fieldMessage(fe)
	}

	return out
}

type FormMode string

const (
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
	FormImport FormMode = "import"
)

// Form holds the state of one create, edit or import dialog.
// It is not safe for concurrent use.
type Form struct {
	mode   FormMode
	appID  int64
	status Status
	fields FormFields
	errs   FieldErrors
}

func NewCreateForm() *Form {
	return &Form{mode: FormCreate, errs: FieldErrors{}}
}

// NewEditForm prefills from app, the status is kept unless SetStatus is called.
func NewEditForm(app App) *Form {
	return &Form{
		mode:   FormEdit,
		appID:  app.ID,
		status: app.Status,
		fields: FieldsFromApp(app),
		errs:   FieldErrors{},
	}
}

// NewImportForm prefills from an import candidate, it submits like create.
func NewImportForm(fields FormFields) *Form {
	return &Form{mode: FormImport, fields: fields, errs: FieldErrors{}}
}

func (f *Form) Mode() FormMode {
	return f.mode
}

// AppID is the record being edited, zero outside edit mode.
func (f *Form) AppID() int64 {
	return f.appID
}

func (f *Form) Status() Status {
	return f.status
}

func (f *Form) Fields() FormFields {
	return f.fields
}

func (f *Form) Errors() FieldErrors {
	return FieldErrors(f.errs.FieldMessages())
}

// Set changes one field and clears the error of that field only.
func (f *Form) Set(field, value string) error {
	switch field {
	case FieldName:
		f.fields.Name = value
	case FieldCategory:
		f.fields.Category = value
	case FieldLogo:
		f.fields.Logo = value
	case FieldWebsiteURL:
		f.fields.WebsiteURL = value
	case FieldPlatform:
		f.fields.Platform = Platform(value)
	case FieldPackageName:
		f.fields.PackageName = value
	case FieldDescription:
		f.fields.Description = value
	case FieldStatus:
		if f.mode != FormEdit {
			return fmt.Errorf("%w: status can only be changed when editing", ErrUnknownField)
		}

		f.status = Status(value)
	default:
		return fmt.Errorf("%w '%s'", ErrUnknownField, field)
	}

	delete(f.errs, field)
	return nil
}

// Validate evaluates every rule and stores the result.
func (f *Form) Validate() bool {
	errs := ValidateFields(f.fields)
	if f.mode == FormEdit && !f.status.Valid() {
		if errs == nil {
			errs = FieldErrors{}
		}

		errs[FieldStatus] = MsgStatusUnknown
	}

	if errs == nil {
		errs = FieldErrors{}
	}

	f.errs = errs
	return len(errs) == 0
}

// Submit validates then creates or updates through svc. Nothing is written when invalid,
// the returned error is then FieldErrors.
func (f *Form) Submit(ctx context.Context, svc Service) (app App, err error) {
	if !f.Validate() {
		err = f.Errors()
		return
	}

	switch f.mode {
	case FormEdit:
		var out OutPutApp
		out, err = svc.PutApp(ctx, InputPutApp{
			ID:     f.appID,
			Fields: f.fields,
			Status: f.status,
		})
		app = out.App

	default:
		var out OutCreateApp
		out, err = svc.CreateApp(ctx, InputCreateApp{
			Fields: f.fields,
		})
		app = out.App
	}

	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		f.errs = fieldErrs
	}

	return
}
