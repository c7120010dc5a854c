package dashsvc

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const chartHeight = "360px"

func renderRevenueChart(w io.Writer, total string, graph []RevenuePoint) error {
	months := make([]string, 0, len(graph))
	data := make([]opts.LineData, 0, len(graph))
	for _, p := range graph {
		// unparsable values are plotted as zero
		v, _ := p.TotalRevenue.Float64()
		months = append(months, p.Month)
		data = append(data, opts.LineData{Name: p.Month, Value: v})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(globalChartOptions("Revenue", "Total $"+total)...)
	line.SetXAxis(months)
	line.AddSeries("Revenue", data)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line.Render(w)
}

func renderGeoChart(w io.Writer, points []GeoPoint) error {
	countries := make([]string, 0, len(points))
	data := make([]opts.BarData, 0, len(points))
	for _, p := range points {
		countries = append(countries, p.CountryCode)
		data = append(data, opts.BarData{Name: p.CountryName, Value: p.ActiveUsers})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(globalChartOptions("Active Users by Country", "")...)
	bar.SetXAxis(countries)
	bar.AddSeries("Active Users", data)
	return bar.Render(w)
}

func globalChartOptions(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "100%",
			Height: chartHeight,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}
