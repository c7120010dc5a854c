package dashsvc

import (
	"net/url"
)

var campaignStatuses = map[int]CampaignStatus{
	1: {Code: 1, Text: "Active", Background: "green-100", Color: "green-700"},
	2: {Code: 2, Text: "Disabled", Background: "gray-100", Color: "gray-700"},
	3: {Code: 3, Text: "In Draft", Background: "blue-100", Color: "blue-700"},
	4: {Code: 4, Text: "Capped", Background: "yellow-100", Color: "yellow-700"},
	5: {Code: 5, Text: "In Review", Background: "purple-100", Color: "purple-700"},
}

// CampaignStatusOf maps unknown codes to "Unknown".
func CampaignStatusOf(code int) CampaignStatus {
	if s, ok := campaignStatuses[code]; ok {
		return s
	}

	return CampaignStatus{Code: code, Text: "Unknown", Background: "red-100", Color: "red-700"}
}

// CampaignLogo falls back to a generated avatar when the campaign has no logo.
func CampaignLogo(name, logoURL string) string {
	if logoURL != "" {
		return logoURL
	}

	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=FFEDD5&color=C2410C"
}

type campaignRow struct {
	id     int64
	name   string
	logo   string
	status int
	growth string
}

var topCampaigns = []campaignRow{
	{id: 1, name: "Summer Sale 2024", status: 1, growth: "+12.5%"},
	{id: 2, name: "Mobile App Launch", status: 1, growth: "+8.3%"},
	{id: 3, name: "Holiday Special", status: 4, growth: "+15.7%"},
	{id: 4, name: "Brand Awareness", status: 1, growth: "+6.2%"},
	{id: 5, name: "Product Demo", status: 5, growth: "+10.1%"},
}
