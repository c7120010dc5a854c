package handlerdash

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/yusufsyaifudin/appkeeper/internal/svc/dashsvc"
	"github.com/yusufsyaifudin/appkeeper/pkg/respbuilder"
	"github.com/yusufsyaifudin/appkeeper/pkg/validator"
	"github.com/yusufsyaifudin/appkeeper/transport/restapi/httptyped"
)

const dateLayout = "2006-01-02"

type HandlerConfig struct {
	DashService dashsvc.Service `validate:"required"`
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

type OverviewReq struct {
	Refresh bool `schema:"refresh"`
}

type OverviewResp struct {
	httptyped.OverviewEntity
}

// Overview returns the metric cards, revenue graph and geo distribution.
// Path          : GET /api/v1/dashboard
// Request Query : OverviewReq
// Response      : OverviewResp
func (h *Handler) Overview() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query := OverviewReq{}
		err := httptyped.DecodeQuery(r, &query)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		out, err := h.Config.DashService.Overview(ctx, dashsvc.InputOverview{Refresh: query.Refresh})
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		resp := respbuilder.Success(ctx, OverviewResp{OverviewEntity: httptyped.OverviewEntityFromSvc(out.Overview)})
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

type SpendReportReq struct {
	From string `schema:"from"`
	To   string `schema:"to"`
}

type SpendReportResp struct {
	httptyped.SpendReportEntity
}

// SpendReport returns spend figures of at most 15 days.
// Path          : GET /api/v1/dashboard/spend
// Request Query : SpendReportReq
// Response      : SpendReportResp
func (h *Handler) SpendReport() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query := SpendReportReq{}
		err := httptyped.DecodeQuery(r, &query)
		if err != nil {
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		from, err := time.Parse(dateLayout, query.From)
		if err != nil {
			err = fmt.Errorf("from must be a %s date: %w", dateLayout, err)
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		to, err := time.Parse(dateLayout, query.To)
		if err != nil {
			err = fmt.Errorf("to must be a %s date: %w", dateLayout, err)
			respbuilder.WriteError(respbuilder.ErrValidation, w, r, err)
			return
		}

		out, err := h.Config.DashService.SpendReport(ctx, dashsvc.InputSpendReport{From: from, To: to})
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		resp := respbuilder.Success(ctx, SpendReportResp{SpendReportEntity: httptyped.SpendReportEntityFromSvc(out.Report)})
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

type CampaignsResp struct {
	Campaigns []httptyped.CampaignEntity `json:"campaigns"`
}

// Campaigns returns the top performing campaigns.
// Path     : GET /api/v1/dashboard/campaigns
// Response : CampaignsResp
func (h *Handler) Campaigns() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		out, err := h.Config.DashService.Campaigns(ctx)
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		campaigns := make([]httptyped.CampaignEntity, 0, len(out.Campaigns))
		for _, c := range out.Campaigns {
			campaigns = append(campaigns, httptyped.CampaignEntityFromSvc(c))
		}

		resp := respbuilder.Success(ctx, CampaignsResp{Campaigns: campaigns})
		respbuilder.WriteJSON(http.StatusOK, w, r, resp)
	}

	return handler
}

// RevenueChart renders the revenue graph as an HTML page.
// Path     : GET /api/v1/dashboard/charts/revenue
// Response : text/html
func (h *Handler) RevenueChart() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		err := h.Config.DashService.RenderRevenueChart(r.Context(), &buf)
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		respbuilder.WriteHTML(http.StatusOK, w, r, buf.Bytes())
	}

	return handler
}

// GeoChart renders active users per country as an HTML page.
// Path     : GET /api/v1/dashboard/charts/geo
// Response : text/html
func (h *Handler) GeoChart() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		err := h.Config.DashService.RenderGeoChart(r.Context(), &buf)
		if err != nil {
			respbuilder.WriteError(httptyped.ErrKindOf(err), w, r, err)
			return
		}

		respbuilder.WriteHTML(http.StatusOK, w, r, buf.Bytes())
	}

	return handler
}
