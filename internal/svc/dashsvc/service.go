package dashsvc

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrRangeTooLong = errors.New("date range cannot exceed 15 days")
	ErrInvalidRange = errors.New("end date is before start date")
)

// MaxSpendRangeDays is the longest span between the first and last day of a spend report.
const MaxSpendRangeDays = 15

type Service interface {
	Overview(ctx context.Context, input InputOverview) (out OutOverview, err error)
	SpendReport(ctx context.Context, input InputSpendReport) (out OutSpendReport, err error)
	Campaigns(ctx context.Context) (out OutCampaigns, err error)
	RenderRevenueChart(ctx context.Context, w io.Writer) (err error)
	RenderGeoChart(ctx context.Context, w io.Writer) (err error)
}

// InputOverview with Refresh regenerates the revenue graph.
type InputOverview struct {
	Refresh bool
}

type OutOverview struct {
	Overview Overview
}

// InputSpendReport covers From to To, both days included.
type InputSpendReport struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required"`
}

type OutSpendReport struct {
	Report SpendReport
}

type OutCampaigns struct {
	Campaigns []Campaign
}
