package handlerapp

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
	"github.com/yusufsyaifudin/appkeeper/pkg/respbuilder"
	"github.com/yusufsyaifudin/appkeeper/pkg/validator"
	"github.com/yusufsyaifudin/appkeeper/transport/restapi/httptyped"
)

type HandlerConfig struct {
	AppService appsvc.Service `validate:"required"`
}

type Handler struct {
	Config HandlerConfig
}

func NewHandler(conf HandlerConfig) (*Handler, error) {
	err := validator.Validate(conf)
	if err != nil {
		return nil, err
	}

	return &Handler{Config: conf}, nil
}

func appID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("app id '%s' is not a positive number", raw)
	}

	return id, nil
}

type CreateAppReq struct {
	appsvc.FormFields
}

type CreateAppResp struct {
	App httptyped.AppEntity `json:"app"`
}

// CreateApp creates a new application with status In Review.
// Path         : POST /api/v1/apps
// Request Body : CreateAppReq
// Response     : CreateAppResp
func (h *Handler) CreateApp() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var reqBody CreateAppReq
		err := httptyped.DecodeBody(r, &reqBody)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		createAppOut, err := h.Config.AppService.CreateApp(ctx, appsvc.InputCreateApp{
			Fields: reqBody.FormFields,
		})
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		respBody := CreateAppResp{
			App: httptyped.AppEntityFromSvc(createAppOut.App),
		}

		resp := respbuilder.Success(ctx, respBody)
		respbuilder.WriteJSON(http.StatusCreated, w, r, resp)
	}

	return handler
}

type PutAppRequest struct {
	appsvc.FormFields

	// Status is optional, empty keeps the current status.
	Status string `json:"status"`
}

type PutAppResp struct {
	App httptyped.AppEntity `json:"app"`
}

// PutApp shallow merges the body into the stored application.
// Keys missing from the body keep their value, id and createdOn never change.
// Path         : PUT /api/v1/apps/{id}
// Request Body : PutAppRequest
// Response     : PutAppResp
func (h *Handler) PutApp() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := appID(r)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		existing, err := h.Config.AppService.GetApp(ctx, appsvc.InputGetApp{ID: id})
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		// decoding over the stored fields only overwrites the keys present in the body
		reqBody := PutAppRequest{FormFields: appsvc.FieldsFromApp(existing.App)}
		err = httptyped.DecodeBody(r, &reqBody)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		putAppOut, err := h.Config.AppService.PutApp(ctx, appsvc.InputPutApp{
			ID:     id,
			Fields: reqBody.FormFields,
			Status: appsvc.Status(reqBody.Status),
		})
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		respBody := PutAppResp{
			App: httptyped.AppEntityFromSvc(putAppOut.App),
		}

		resp := respbuilder.Success(ctx, respBody)
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

type ListAppsReq struct {
	Status   []string `schema:"status"`
	Platform []string `schema:"platform"`
	Sort     string   `schema:"sort"`
	Page     int      `schema:"page"`
}

type ListAppsResp struct {
	httptyped.AppListEntity
}

// ListApps filters, sorts then paginates the applications.
// Path          : GET /api/v1/apps
// Request Query : ListAppsReq
// Response      : ListAppsResp
func (h *Handler) ListApps() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query := ListAppsReq{}
		err := httptyped.DecodeQuery(r, &query)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		listOut, err := h.Config.AppService.ListApp(ctx, appsvc.InputListApp{
			Filter: httptyped.FilterFromRequest(splitValues(query.Status), splitValues(query.Platform)),
			SortBy: appsvc.SortKey(query.Sort),
			Page:   query.Page,
		})
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		respBody := ListAppsResp{
			AppListEntity: httptyped.AppListEntityFromSvc(listOut),
		}

		resp := respbuilder.Success(ctx, respBody)
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

// splitValues accepts both repeated and comma separated parameters.
func splitValues(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

type GetAppResp struct {
	App httptyped.AppEntity `json:"app"`
}

// GetApp returns one application.
// Path          : GET /api/v1/apps/{id}
// Response      : GetAppResp
func (h *Handler) GetApp() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := appID(r)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		getAppOut, err := h.Config.AppService.GetApp(ctx, appsvc.InputGetApp{ID: id})
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		respBody := GetAppResp{
			App: httptyped.AppEntityFromSvc(getAppOut.App),
		}

		resp := respbuilder.Success(ctx, respBody)
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

type ValidateAppReq struct {
	appsvc.FormFields
}

type ValidateAppResp struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// ValidateApp runs the form rules without saving.
// Path         : POST /api/v1/apps/validate
// Request Body : ValidateAppReq
// Response     : ValidateAppResp
func (h *Handler) ValidateApp() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var reqBody ValidateAppReq
		err := httptyped.DecodeBody(r, &reqBody)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		out, err := h.Config.AppService.ValidateApp(ctx, appsvc.InputValidateApp{
			Fields: reqBody.FormFields,
		})
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		respBody := ValidateAppResp{
			Valid:  out.Valid,
			Errors: out.Errors.FieldMessages(),
		}

		resp := respbuilder.Success(ctx, respBody)
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}
