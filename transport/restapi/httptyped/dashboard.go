package httptyped

import (
	"time"

	"github.com/yusufsyaifudin/appkeeper/internal/svc/dashsvc"
	"github.com/yusufsyaifudin/appkeeper/pkg/metric"
)

type MetricsEntity struct {
	TodayRevenue string `json:"todayRevenue"`
	RevenueDiff  string `json:"revenueDiff"`
	TodayClicks  string `json:"todayClicks"`
	ClicksDiff   string `json:"clicksDiff"`
	ARPM         string `json:"arpm"`
	ARPMDiff     string `json:"arpmDiff"`
	ARPU         string `json:"arpu"`
	ARPUDiff     string `json:"arpuDiff"`
	TodayDAU     string `json:"todayDau"`
}

type MetricCardEntity struct {
	Title    string `json:"title"`
	Value    string `json:"value"`
	Diff     string `json:"diff,omitempty"`
	Trend    string `json:"trend"`
	Subtitle string `json:"subtitle,omitempty"`
}

type RevenuePointEntity struct {
	Month        string        `json:"month"`
	TotalRevenue metric.Number `json:"totalRevenue"`
}

type GeoPointEntity struct {
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	ActiveUsers int    `json:"activeUsers"`
}

type OverviewEntity struct {
	Metrics      MetricsEntity        `json:"metrics"`
	Cards        []MetricCardEntity   `json:"cards"`
	TotalRevenue string               `json:"totalRevenue"`
	RevenueGraph []RevenuePointEntity `json:"revenueGraph"`
	GeoData      []GeoPointEntity     `json:"geoData"`
	GeneratedAt  time.Time            `json:"generatedAt"`
}

func OverviewEntityFromSvc(o dashsvc.Overview) OverviewEntity {
	m := o.Metrics
	out := OverviewEntity{
		Metrics: MetricsEntity{
			TodayRevenue: string(m.TodayRevenue),
			RevenueDiff:  string(m.RevenueDiff),
			TodayClicks:  string(m.TodayClicks),
			ClicksDiff:   string(m.ClicksDiff),
			ARPM:         string(m.ARPM),
			ARPMDiff:     string(m.ARPMDiff),
			ARPU:         string(m.ARPU),
			ARPUDiff:     string(m.ARPUDiff),
			TodayDAU:     string(m.TodayDAU),
		},
		Cards:        make([]MetricCardEntity, 0, len(o.Cards)),
		TotalRevenue: string(o.TotalRevenue),
		RevenueGraph: make([]RevenuePointEntity, 0, len(o.RevenueGraph)),
		GeoData:      make([]GeoPointEntity, 0, len(o.GeoData)),
		GeneratedAt:  o.GeneratedAt,
	}

	for _, c := range o.Cards {
		out.Cards = append(out.Cards, MetricCardEntity{
			Title:    c.Title,
			Value:    c.Value,
			Diff:     c.Diff,
			Trend:    string(c.Trend),
			Subtitle: c.Subtitle,
		})
	}

	for _, p := range o.RevenueGraph {
		out.RevenueGraph = append(out.RevenueGraph, RevenuePointEntity{Month: p.Month, TotalRevenue: p.TotalRevenue})
	}

	for _, g := range o.GeoData {
		out.GeoData = append(out.GeoData, GeoPointEntity{
			CountryCode: g.CountryCode,
			CountryName: g.CountryName,
			ActiveUsers: g.ActiveUsers,
		})
	}

	return out
}

type SpendPointEntity struct {
	Date        string        `json:"date"`
	TotalSpend  metric.Number `json:"totalSpend"`
	Clicks      int           `json:"clicks"`
	Conversions int           `json:"conversions"`
}

type SpendCardsEntity struct {
	Spends      metric.Number `json:"spends"`
	Clicks      int           `json:"clicks"`
	Conversions int           `json:"conversions"`
	TotalSpend  metric.Number `json:"totalSpend"`
}

type CountryConversionsEntity struct {
	CountryCode      string `json:"country_code"`
	CountryName      string `json:"country_name"`
	TotalConversions int    `json:"totalConversions"`
}

type SpendReportEntity struct {
	From      string                     `json:"from"`
	To        string                     `json:"to"`
	GraphData []SpendPointEntity         `json:"graphData"`
	CardData  SpendCardsEntity           `json:"cardData"`
	Countries []CountryConversionsEntity `json:"countryData"`
}

func SpendReportEntityFromSvc(r dashsvc.SpendReport) SpendReportEntity {
	out := SpendReportEntity{
		From:      r.From,
		To:        r.To,
		GraphData: make([]SpendPointEntity, 0, len(r.Graph)),
		CardData: SpendCardsEntity{
			Spends:      r.Cards.Spends,
			Clicks:      r.Cards.Clicks,
			Conversions: r.Cards.Conversions,
			TotalSpend:  r.Cards.TotalSpend,
		},
		Countries: make([]CountryConversionsEntity, 0, len(r.Countries)),
	}

	for _, p := range r.Graph {
		out.GraphData = append(out.GraphData, SpendPointEntity{
			Date:        p.Date,
			TotalSpend:  p.TotalSpend,
			Clicks:      p.Clicks,
			Conversions: p.Conversions,
		})
	}

	for _, c := range r.Countries {
		out.Countries = append(out.Countries, CountryConversionsEntity{
			CountryCode:      c.CountryCode,
			CountryName:      c.CountryName,
			TotalConversions: c.TotalConversions,
		})
	}

	return out
}

type CampaignStatusEntity struct {
	Code       int    `json:"code"`
	Text       string `json:"text"`
	Background string `json:"background"`
	Color      string `json:"color"`
}

type CampaignEntity struct {
	ID      int64                `json:"campaign_id"`
	Name    string               `json:"name"`
	LogoURL string               `json:"logo_url"`
	Status  CampaignStatusEntity `json:"status"`
	Growth  string               `json:"growth"`
}

func CampaignEntityFromSvc(c dashsvc.Campaign) CampaignEntity {
	return CampaignEntity{
		ID:      c.ID,
		Name:    c.Name,
		LogoURL: c.LogoURL,
		Status: CampaignStatusEntity{
			Code:       c.Status.Code,
			Text:       c.Status.Text,
			Background: c.Status.Background,
			Color:      c.Status.Color,
		},
		Growth: c.Growth,
	}
}
