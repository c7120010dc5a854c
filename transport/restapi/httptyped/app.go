package httptyped

import (
	"time"

	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
)

type StatusBadgeEntity struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Dot        string `json:"dot"`
}

type PlatformBadgeEntity struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Border     string `json:"border"`
}

type AppEntity struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Category      string              `json:"category"`
	Description   string              `json:"description"`
	Logo          string              `json:"logo"`
	WebsiteURL    string              `json:"websiteUrl"`
	Platform      string              `json:"platform"`
	PackageName   string              `json:"packageName"`
	Status        string              `json:"status"`
	CreatedOn     time.Time           `json:"createdOn"`
	StatusBadge   StatusBadgeEntity   `json:"statusBadge"`
	PlatformBadge PlatformBadgeEntity `json:"platformBadge"`
}

func AppEntityFromSvc(app appsvc.App) AppEntity {
	sb := appsvc.StatusBadgeOf(app.Status)
	pb := appsvc.PlatformBadgeOf(app.Platform)

	return AppEntity{
		ID:          app.ID,
		Name:        app.Name,
		Category:    app.Category,
		Description: app.Description,
		Logo:        app.Logo,
		WebsiteURL:  app.WebsiteURL,
		Platform:    string(app.Platform),
		PackageName: app.PackageName,
		Status:      string(app.Status),
		CreatedOn:   app.CreatedOn,
		StatusBadge: StatusBadgeEntity{
			Background: sb.Background,
			Text:       sb.Text,
			Dot:        sb.Dot,
		},
		PlatformBadge: PlatformBadgeEntity{
			Background: pb.Background,
			Text:       pb.Text,
			Border:     pb.Border,
		},
	}
}

type FilterEntity struct {
	Status   []string `json:"status"`
	Platform []string `json:"platform"`
}

func FilterEntityFromSvc(f appsvc.Filter) FilterEntity {
	out := FilterEntity{
		Status:   make([]string, 0, len(f.Status)),
		Platform: make([]string, 0, len(f.Platform)),
	}

	for _, s := range f.Status {
		out.Status = append(out.Status, string(s))
	}

	for _, p := range f.Platform {
		out.Platform = append(out.Platform, string(p))
	}

	return out
}

// FilterFromRequest is the reverse of FilterEntityFromSvc, values are checked by the service.
func FilterFromRequest(status, platform []string) appsvc.Filter {
	f := appsvc.Filter{}
	for _, s := range status {
		f.Status = append(f.Status, appsvc.Status(s))
	}

	for _, p := range platform {
		f.Platform = append(f.Platform, appsvc.Platform(p))
	}

	return f
}

type PageEntity struct {
	Items      []AppEntity `json:"items"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalItems int         `json:"totalItems"`
	TotalPages int         `json:"totalPages"`
	HasPrev    bool        `json:"hasPrev"`
	HasNext    bool        `json:"hasNext"`
	Caption    string      `json:"caption"`
}

func PageEntityFromSvc(p appsvc.Page) PageEntity {
	items := make([]AppEntity, 0, len(p.Items))
	for _, app := range p.Items {
		items = append(items, AppEntityFromSvc(app))
	}

	return PageEntity{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
		HasPrev:    p.HasPrev,
		HasNext:    p.HasNext,
		Caption:    p.Caption(),
	}
}

type AppListEntity struct {
	Filter  FilterEntity `json:"filter"`
	SortBy  string       `json:"sortBy"`
	Page    PageEntity   `json:"page"`
	Version uint64       `json:"version"`
}

func AppListEntityFromSvc(out appsvc.OutListApp) AppListEntity {
	return AppListEntity{
		Filter:  FilterEntityFromSvc(out.Filter),
		SortBy:  string(out.SortBy),
		Page:    PageEntityFromSvc(out.Page),
		Version: out.Version,
	}
}
