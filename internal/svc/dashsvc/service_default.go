package dashsvc

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/yusufsyaifudin/appkeeper/pkg/logger"
	"github.com/yusufsyaifudin/appkeeper/pkg/metric"
	"github.com/yusufsyaifudin/appkeeper/pkg/tracer"
	"github.com/yusufsyaifudin/appkeeper/pkg/validator"
)

const dateLayout = "2006-01-02"

var todayMetrics = Metrics{
	TodayRevenue: "1,245.50",
	RevenueDiff:  "+12.5",
	TodayClicks:  "8,542",
	ClicksDiff:   "+8.3",
	ARPM:         "2.45",
	ARPMDiff:     "+5.2",
	ARPU:         "0.85",
	ARPUDiff:     "-2.1",
	TodayDAU:     "12,450",
}

const totalRevenue metric.Number = "45,230.75"

var geoData = []GeoPoint{
	{CountryCode: "US", CountryName: "United States", ActiveUsers: 4500},
	{CountryCode: "GB", CountryName: "United Kingdom", ActiveUsers: 2800},
	{CountryCode: "CA", CountryName: "Canada", ActiveUsers: 3200},
	{CountryCode: "AU", CountryName: "Australia", ActiveUsers: 1900},
	{CountryCode: "DE", CountryName: "Germany", ActiveUsers: 2100},
	{CountryCode: "FR", CountryName: "France", ActiveUsers: 1750},
	{CountryCode: "IN", CountryName: "India", ActiveUsers: 5200},
	{CountryCode: "BR", CountryName: "Brazil", ActiveUsers: 1500},
}

type DefaultServiceConfig struct {
	Now  func() time.Time `validate:"-"`
	Rand *rand.Rand       `validate:"-"`
}

type DefaultService struct {
	cfg DefaultServiceConfig

	mu           sync.Mutex
	revenueGraph []RevenuePoint
	generatedAt  time.Time
}

var _ Service = (*DefaultService)(nil)

func New(cfg DefaultServiceConfig) (*DefaultService, error) {
	if err := validator.Validate(cfg); err != nil {
		return nil, err
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &DefaultService{
		cfg: cfg,
	}, nil
}

func (d *DefaultService) Overview(ctx context.Context, input InputOverview) (out OutOverview, err error) {
	ctx, span := tracer.StartSpan(ctx, "dashsvc.Overview")
	defer span.End()

	graph, generatedAt := d.revenue(input.Refresh)
	if input.Refresh {
		logger.Debug(ctx, "revenue graph regenerated")
	}

	out = OutOverview{
		Overview: Overview{
			Metrics:      todayMetrics,
			Cards:        MetricCards(todayMetrics),
			TotalRevenue: totalRevenue,
			RevenueGraph: graph,
			GeoData:      append([]GeoPoint{}, geoData...),
			GeneratedAt:  generatedAt,
		},
	}
	return
}

// revenue returns the cached graph, generating it on first use or refresh.
func (d *DefaultService) revenue(refresh bool) ([]RevenuePoint, time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if refresh || d.revenueGraph == nil {
		d.generatedAt = d.cfg.Now().UTC()
		d.revenueGraph = d.generateRevenueGraph(d.generatedAt)
	}

	return append([]RevenuePoint{}, d.revenueGraph...), d.generatedAt
}

// generateRevenueGraph covers the six months ending with the month of now,
// each between 30 and 80 with two decimals.
func (d *DefaultService) generateRevenueGraph(now time.Time) []RevenuePoint {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	out := make([]RevenuePoint, 0, 6)
	for i := 5; i >= 0; i-- {
		month := firstOfMonth.AddDate(0, -i, 0)
		out = append(out, RevenuePoint{
			Month:        month.Format("2006-01"),
			TotalRevenue: metric.NewFloat64(d.cfg.Rand.Float64()*50+30, 2),
		})
	}

	return out
}

// MetricCards lays out the metric row in display order.
func MetricCards(m Metrics) []MetricCard {
	card := func(title, value string, diff metric.Number) MetricCard {
		display, trend := formatDiff(diff)
		return MetricCard{Title: title, Value: value, Diff: display, Trend: trend}
	}

	return []MetricCard{
		card("Today's Revenue", "$"+string(m.TodayRevenue), m.RevenueDiff),
		card("Today's Clicks", string(m.TodayClicks), m.ClicksDiff),
		card("ARPM", string(m.ARPM), m.ARPMDiff),
		card("ARPU", string(m.ARPU), m.ARPUDiff),
		{Title: "Daily Active Users", Value: string(m.TodayDAU), Subtitle: "Active users today", Trend: TrendFlat},
	}
}

// formatDiff renders "12.5" as "+12.5%" and "-2.1" as "-2.1%".
func formatDiff(diff metric.Number) (string, Trend) {
	s := strings.TrimSpace(string(diff))
	if s == "" {
		return "", TrendFlat
	}

	f, err := diff.Float64()
	if err != nil {
		return s + "%", TrendFlat
	}

	switch {
	case f > 0 && !strings.HasPrefix(s, "+"):
		return "+" + s + "%", TrendUp
	case f > 0:
		return s + "%", TrendUp
	case f < 0:
		return s + "%", TrendDown
	}

	return s + "%", TrendFlat
}

func (d *DefaultService) SpendReport(ctx context.Context, input InputSpendReport) (out OutSpendReport, err error) {
	ctx, span := tracer.StartSpan(ctx, "dashsvc.SpendReport")
	defer span.End()

	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	from := truncateDay(input.From)
	to := truncateDay(input.To)

	if to.Before(from) {
		err = fmt.Errorf("%w: %s to %s", ErrInvalidRange, from.Format(dateLayout), to.Format(dateLayout))
		return
	}

	days := int(to.Sub(from).Hours() / 24)
	if days > MaxSpendRangeDays {
		logger.Warn(ctx, "spend report range rejected", logger.KV("days", days))
		err = ErrRangeTooLong
		return
	}

	report := SpendReport{
		From:  from.Format(dateLayout),
		To:    to.Format(dateLayout),
		Graph: make([]SpendPoint, 0, days+1),
	}

	var totalSpend float64
	var lastSpend float64
	var clicks, conversions int
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		r := dayRand(day)
		spend := r.Float64()*4000 + 1000
		point := SpendPoint{
			Date:        day.Format(dateLayout),
			TotalSpend:  metric.NewFloat64(spend, 2),
			Clicks:      r.Intn(2500) + 500,
			Conversions: r.Intn(180) + 20,
		}

		report.Graph = append(report.Graph, point)
		totalSpend += spend
		lastSpend = spend
		clicks += point.Clicks
		conversions += point.Conversions
	}

	report.Cards = SpendCards{
		Spends:      metric.NewFloat64(lastSpend, 2),
		Clicks:      clicks,
		Conversions: conversions,
		TotalSpend:  metric.NewFloat64(totalSpend, 2),
	}

	report.Countries = conversionsByCountry(conversions)

	out = OutSpendReport{
		Report: report,
	}
	return
}

// conversionsByCountry spreads total over countries by their share of active users.
func conversionsByCountry(total int) []CountryConversions {
	users := 0
	for _, g := range geoData {
		users += g.ActiveUsers
	}

	out := make([]CountryConversions, 0, len(geoData))
	for _, g := range geoData {
		out = append(out, CountryConversions{
			CountryCode:      g.CountryCode,
			CountryName:      g.CountryName,
			TotalConversions: total * g.ActiveUsers / users,
		})
	}

	return out
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dayRand gives every day its own stable figures.
func dayRand(day time.Time) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(day.Format(dateLayout)))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

func (d *DefaultService) Campaigns(ctx context.Context) (out OutCampaigns, err error) {
	_, span := tracer.StartSpan(ctx, "dashsvc.Campaigns")
	defer span.End()

	campaigns := make([]Campaign, 0, len(topCampaigns))
	for _, c := range topCampaigns {
		campaigns = append(campaigns, Campaign{
			ID:      c.id,
			Name:    c.name,
			LogoURL: CampaignLogo(c.name, c.logo),
			Status:  CampaignStatusOf(c.status),
			Growth:  c.growth,
		})
	}

	out = OutCampaigns{
		Campaigns: campaigns,
	}
	return
}

func (d *DefaultService) RenderRevenueChart(ctx context.Context, w io.Writer) (err error) {
	ctx, span := tracer.StartSpan(ctx, "dashsvc.RenderRevenueChart")
	defer span.End()

	graph, _ := d.revenue(false)
	err = renderRevenueChart(w, string(totalRevenue), graph)
	if err != nil {
		logger.Error(ctx, "render revenue chart failed", logger.KV("error", err))
	}

	return
}

func (d *DefaultService) RenderGeoChart(ctx context.Context, w io.Writer) (err error) {
	ctx, span := tracer.StartSpan(ctx, "dashsvc.RenderGeoChart")
	defer span.End()

	err = renderGeoChart(w, geoData)
	if err != nil {
		logger.Error(ctx, "render geo chart failed", logger.KV("error", err))
	}

	return
}
