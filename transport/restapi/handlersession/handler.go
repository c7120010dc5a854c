package handlersession

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/sessionsvc"
	"github.com/yusufsyaifudin/appkeeper/pkg/logger"
	"github.com/yusufsyaifudin/appkeeper/pkg/respbuilder"
	"github.com/yusufsyaifudin/appkeeper/pkg/validator"
	"github.com/yusufsyaifudin/appkeeper/transport/restapi/httptyped"
)

type HandlerConfig struct {
	SessionService sessionsvc.Service `validate:"required"`
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

type sessCtxKey struct{}

// WithSession resolves {sid} and tags the request logs with it.
func (h *Handler) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sid := strings.TrimSpace(chi.URLParam(r, "sid"))
		sess, err := h.Config.SessionService.Get(ctx, sid)
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		logTracer := logger.MustExtract(ctx)
		logTracer.SessionID = sess.ID

		ctx = logger.Inject(ctx, logTracer)
		ctx = respbuilder.WithSession(ctx, sess.ID)
		ctx = context.WithValue(ctx, sessCtxKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(ctx context.Context) *sessionsvc.Session {
	sess, _ := ctx.Value(sessCtxKey{}).(*sessionsvc.Session)
	return sess
}

type CreateSessionResp struct {
	Session httptyped.SessionEntity `json:"session"`
}

// Create starts a session.
// Path     : POST /api/v1/sessions
// Response : CreateSessionResp
func (h *Handler) Create() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess, err := h.Config.SessionService.Create(ctx)
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		respBody := CreateSessionResp{
			Session: httptyped.SessionEntity{
				ID:        sess.ID,
				CreatedAt: sess.CreatedAt,
			},
		}

		resp := respbuilder.Success(ctx, respBody)
		respbuilder.WriteJSON(http.StatusCreated, w, r, resp)
	}

	return handler
}

type ClearSessionResp struct {
	Success bool `json:"success"`
}

// Clear logs the session out.
// Path     : DELETE /api/v1/sessions/{sid}
// Response : ClearSessionResp
func (h *Handler) Clear() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		err := h.Config.SessionService.Clear(ctx, sessionFrom(ctx).ID)
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		resp := respbuilder.Success(ctx, ClearSessionResp{Success: true})
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

// -- board

type BoardResp struct {
	httptyped.AppListEntity
}

func writeRows(w http.ResponseWriter, r *http.Request, board *sessionsvc.Board) {
	ctx := r.Context()

	rows, err := board.Rows(ctx)
	if err != nil {
		respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
		return
	}

	resp := respbuilder.Success(ctx, BoardResp{AppListEntity: httptyped.AppListEntityFromSvc(rows)})
	respbuilder.WriteJSON(http.StatusOK, w, r, resp)
}

// Board renders the current page of the session table.
// Path     : GET /api/v1/sessions/{sid}/board
// Response : BoardResp
func (h *Handler) Board() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		writeRows(w, r, sessionFrom(r.Context()).Board())
	}

	return handler
}

type SetFiltersReq struct {
	Status   []string `json:"status"`
	Platform []string `json:"platform"`
}

// SetFilters replaces the filter and goes back to the first page.
// Path         : PUT /api/v1/sessions/{sid}/board/filters
// Request Body : SetFiltersReq
// Response     : BoardResp
func (h *Handler) SetFilters() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		board := sessionFrom(r.Context()).Board()

		var reqBody SetFiltersReq
		err := httptyped.DecodeBody(r, &reqBody)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		err = board.SetFilters(httptyped.FilterFromRequest(reqBody.Status, reqBody.Platform))
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		writeRows(w, r, board)
	}

	return handler
}

type SetSortReq struct {
	SortBy string `json:"sortBy"`
}

// SetSort changes the order and goes back to the first page.
// Path         : PUT /api/v1/sessions/{sid}/board/sort
// Request Body : SetSortReq
// Response     : BoardResp
func (h *Handler) SetSort() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		board := sessionFrom(r.Context()).Board()

		var reqBody SetSortReq
		err := httptyped.DecodeBody(r, &reqBody)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		err = board.SetSortBy(appsvc.SortKey(reqBody.SortBy))
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		writeRows(w, r, board)
	}

	return handler
}

// SetPageReq moves to Page, or one step when Action is "next" or "prev".
type SetPageReq struct {
	Page   int    `json:"page"`
	Action string `json:"action"`
}

// SetPage changes the page, out of range pages are clamped.
// Path         : PUT /api/v1/sessions/{sid}/board/page
// Request Body : SetPageReq
// Response     : BoardResp
func (h *Handler) SetPage() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		board := sessionFrom(r.Context()).Board()

		var reqBody SetPageReq
		err := httptyped.DecodeBody(r, &reqBody)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		switch reqBody.Action {
		case "next":
			err = board.NextPage(r.Context())
		case "prev":
			err = board.PrevPage(r.Context())
		case "":
			board.SetPage(reqBody.Page)
		default:
			err = fmt.Errorf("unknown page action '%s'", reqBody.Action)
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		writeRows(w, r, board)
	}

	return handler
}

// -- form

type FormResp struct {
	Form httptyped.FormEntity `json:"form"`
}

// OpenFormReq opens a create form, or an edit form of AppID when Mode is "edit".
type OpenFormReq struct {
	Mode  string `json:"mode"`
	AppID int64  `json:"appId"`
}

// OpenForm opens the create or edit form, replacing the open one.
// Path         : POST /api/v1/sessions/{sid}/form
// Request Body : OpenFormReq
// Response     : FormResp
func (h *Handler) OpenForm() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := sessionFrom(ctx)

		var reqBody OpenFormReq
		err := httptyped.DecodeBody(r, &reqBody)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		var state sessionsvc.FormState
		switch appsvc.FormMode(reqBody.Mode) {
		case appsvc.FormEdit:
			state, err = sess.OpenEditForm(ctx, reqBody.AppID)
		case appsvc.FormCreate, "":
			state = sess.OpenCreateForm()
		default:
			err = fmt.Errorf("%w: form mode '%s'", appsvc.ErrUnknownField, reqBody.Mode)
		}

		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		resp := respbuilder.Success(ctx, FormResp{Form: httptyped.FormEntityFromSvc(state)})
		respbuilder.WriteJSON(http.StatusCreated, w, r, resp)
	}

	return handler
}

// GetForm returns the open form.
// Path     : GET /api/v1/sessions/{sid}/form
// Response : FormResp
func (h *Handler) GetForm() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		state, err := sessionFrom(ctx).Form()
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		resp := respbuilder.Success(ctx, FormResp{Form: httptyped.FormEntityFromSvc(state)})
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

type SetFieldReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// SetField edits one field and clears its error.
// Path         : PATCH /api/v1/sessions/{sid}/form
// Request Body : SetFieldReq
// Response     : FormResp
func (h *Handler) SetField() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var reqBody SetFieldReq
		err := httptyped.DecodeBody(r, &reqBody)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		state, err := sessionFrom(ctx).SetFormField(reqBody.Field, reqBody.Value)
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		resp := respbuilder.Success(ctx, FormResp{Form: httptyped.FormEntityFromSvc(state)})
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

type SubmitFormResp struct {
	App httptyped.AppEntity `json:"app"`
}

// SubmitForm validates then saves the open form. Field errors come back in error.fields.
// Path     : POST /api/v1/sessions/{sid}/form/submit
// Response : SubmitFormResp
func (h *Handler) SubmitForm() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		app, _, err := sessionFrom(ctx).SubmitForm(ctx)
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		resp := respbuilder.Success(ctx, SubmitFormResp{App: httptyped.AppEntityFromSvc(app)})
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

type CloseResp struct {
	Success bool `json:"success"`
}

// CloseForm discards the open form.
// Path     : DELETE /api/v1/sessions/{sid}/form
// Response : CloseResp
func (h *Handler) CloseForm() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sessionFrom(ctx).CloseForm()

		resp := respbuilder.Success(ctx, CloseResp{Success: true})
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}
