package dashsvc

import (
	"time"

	"github.com/yusufsyaifudin/appkeeper/pkg/metric"
)

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Metrics are the raw figures of today, diffs are percentages vs. yesterday.
type Metrics struct {
	TodayRevenue metric.Number
	RevenueDiff  metric.Number
	TodayClicks  metric.Number
	ClicksDiff   metric.Number
	ARPM         metric.Number
	ARPMDiff     metric.Number
	ARPU         metric.Number
	ARPUDiff     metric.Number
	TodayDAU     metric.Number
}

// MetricCard is one rendered metric. Diff is empty when the card shows Subtitle instead.
type MetricCard struct {
	Title    string
	Value    string
	Diff     string
	Trend    Trend
	Subtitle string
}

type RevenuePoint struct {
	Month        string
	TotalRevenue metric.Number
}

type GeoPoint struct {
	CountryCode string
	CountryName string
	ActiveUsers int
}

type Overview struct {
	Metrics      Metrics
	Cards        []MetricCard
	TotalRevenue metric.Number
	RevenueGraph []RevenuePoint
	GeoData      []GeoPoint
	GeneratedAt  time.Time
}

type SpendPoint struct {
	Date        string
	TotalSpend  metric.Number
	Clicks      int
	Conversions int
}

type SpendCards struct {
	Spends      metric.Number
	Clicks      int
	Conversions int
	TotalSpend  metric.Number
}

type CountryConversions struct {
	CountryCode      string
	CountryName      string
	TotalConversions int
}

type SpendReport struct {
	From      string
	To        string
	Graph     []SpendPoint
	Cards     SpendCards
	Countries []CountryConversions
}

type CampaignStatus struct {
	Code       int
	Text       string
	Background string
	Color      string
}

type Campaign struct {
	ID      int64
	Name    string
	LogoURL string
	Status  CampaignStatus
	Growth  string
}
