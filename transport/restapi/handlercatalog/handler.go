package handlercatalog

import (
	"net/http"
	"strings"

	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/catalogsvc"
	"github.com/yusufsyaifudin/appkeeper/pkg/respbuilder"
	"github.com/yusufsyaifudin/appkeeper/pkg/validator"
	"github.com/yusufsyaifudin/appkeeper/transport/restapi/httptyped"
)

type HandlerConfig struct {
	CatalogService catalogsvc.Service `validate:"required"`
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

func platforms(in []string) []appsvc.Platform {
	out := make([]appsvc.Platform, 0, len(in))
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, appsvc.Platform(part))
			}
		}
	}

	return out
}

type SearchReq struct {
	Platform []string `schema:"platform"`
	Query    string   `schema:"q"`
}

type SearchResp struct {
	Candidates []catalogsvc.Candidate `json:"candidates"`
	Cached     bool                   `json:"cached"`
}

// Search looks up importable store listings.
// Path          : GET /api/v1/catalog/search
// Request Query : SearchReq
// Response      : SearchResp
func (h *Handler) Search() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query := SearchReq{}
		err := httptyped.DecodeQuery(r, &query)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		out, err := h.Config.CatalogService.Search(ctx, catalogsvc.InputSearch{
			Platforms: platforms(query.Platform),
			Query:     query.Query,
		})
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		respBody := SearchResp{
			Candidates: out.Candidates,
			Cached:     out.Cached,
		}

		resp := respbuilder.Success(ctx, respBody)
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

type ImportReq struct {
	Platforms []string             `json:"platforms"`
	Candidate catalogsvc.Candidate `json:"candidate"`
}

type ImportResp struct {
	Fields appsvc.FormFields `json:"fields"`
}

// Import maps a listing into form fields using the first selected platform.
// Path         : POST /api/v1/catalog/import
// Request Body : ImportReq
// Response     : ImportResp
func (h *Handler) Import() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var reqBody ImportReq
		err := httptyped.DecodeBody(r, &reqBody)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		out, err := h.Config.CatalogService.Import(ctx, catalogsvc.InputImport{
			Platforms: platforms(reqBody.Platforms),
			Candidate: reqBody.Candidate,
		})
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		resp := respbuilder.Success(ctx, ImportResp{Fields: out.Fields})
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}
