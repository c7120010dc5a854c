package handlersession

import (
	"net/http"

	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/catalogsvc"
	"github.com/yusufsyaifudin/appkeeper/pkg/respbuilder"
	"github.com/yusufsyaifudin/appkeeper/transport/restapi/httptyped"
)

type DialogResp struct {
	Dialog httptyped.DialogEntity `json:"dialog"`
}

func writeDialog(status int, w http.ResponseWriter, r *http.Request, d *catalogsvc.Dialog) {
	resp := respbuilder.Success(r.Context(), DialogResp{Dialog: httptyped.DialogEntityFromSvc(d.State())})
	respbuilder.WriteJSON(status, w, r, resp)
}

// OpenImport opens a fresh import dialog.
// Path     : POST /api/v1/sessions/{sid}/import
// Response : DialogResp
func (h *Handler) OpenImport() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		d := sessionFrom(r.Context()).Dialog()
		d.Open()
		writeDialog(http.StatusCreated, w, r, d)
	}

	return handler
}

// ImportState returns the dialog state, poll it while searching is true.
// Path     : GET /api/v1/sessions/{sid}/import
// Response : DialogResp
func (h *Handler) ImportState() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		writeDialog(http.StatusOK, w, r, sessionFrom(r.Context()).Dialog())
	}

	return handler
}

type TogglePlatformReq struct {
	Platform string `json:"platform"`
}

// TogglePlatform selects or unselects a platform, the query and results are cleared.
// Path         : PUT /api/v1/sessions/{sid}/import/platforms
// Request Body : TogglePlatformReq
// Response     : DialogResp
func (h *Handler) TogglePlatform() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		d := sessionFrom(r.Context()).Dialog()

		var reqBody TogglePlatformReq
		err := httptyped.DecodeBody(r, &reqBody)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		err = d.TogglePlatform(appsvc.Platform(reqBody.Platform))
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		writeDialog(http.StatusOK, w, r, d)
	}

	return handler
}

type SetQueryReq struct {
	Query string `json:"query"`
}

// SetQuery sets the search text.
// Path         : PUT /api/v1/sessions/{sid}/import/query
// Request Body : SetQueryReq
// Response     : DialogResp
func (h *Handler) SetQuery() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		d := sessionFrom(r.Context()).Dialog()

		var reqBody SetQueryReq
		err := httptyped.DecodeBody(r, &reqBody)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		err = d.SetQuery(reqBody.Query)
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		writeDialog(http.StatusOK, w, r, d)
	}

	return handler
}

// SearchReq with Wait blocks until the search finished or the request ends.
type SearchReq struct {
	Wait bool `json:"wait"`
}

// Search starts a search in background.
// Path         : POST /api/v1/sessions/{sid}/import/search
// Request Body : SearchReq
// Response     : DialogResp
func (h *Handler) Search() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		d := sessionFrom(ctx).Dialog()

		var reqBody SearchReq
		err := httptyped.DecodeBody(r, &reqBody)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		done, err := d.Search(ctx)
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		if !reqBody.Wait {
			writeDialog(http.StatusAccepted, w, r, d)
			return
		}

		select {
		case <-done:
		case <-ctx.Done():
		}

		writeDialog(http.StatusOK, w, r, d)
	}

	return handler
}

type PickReq struct {
	Index int `json:"index"`
}

// Pick imports one result into an import form and closes the dialog.
// Path         : POST /api/v1/sessions/{sid}/import/pick
// Request Body : PickReq
// Response     : FormResp
func (h *Handler) Pick() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var reqBody PickReq
		err := httptyped.DecodeBody(r, &reqBody)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		state, err := sessionFrom(ctx).PickImport(ctx, reqBody.Index)
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		resp := respbuilder.Success(ctx, FormResp{Form: httptyped.FormEntityFromSvc(state)})
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

// CloseImport closes the dialog and cancels the pending search.
// Path     : DELETE /api/v1/sessions/{sid}/import
// Response : DialogResp
func (h *Handler) CloseImport() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		d := sessionFrom(r.Context()).Dialog()
		d.Close()
		writeDialog(http.StatusOK, w, r, d)
	}

	return handler
}
