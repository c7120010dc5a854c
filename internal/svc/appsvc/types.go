package appsvc

import (
	"errors"
	"time"

	"github.com/yusufsyaifudin/appkeeper/internal/svc/apprepo"
)

var (
	ErrAppNotFound     = errors.New("app not found")
	ErrUnknownSortKey  = errors.New("unknown sort key")
	ErrUnknownStatus   = errors.New("unknown status")
	ErrUnknownPlatform = errors.New("unknown platform")
)

type Status string

const (
	StatusActive    Status = "Active"
	StatusInReview  Status = "In Review"
	StatusInTesting Status = "In Testing"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusActive, StatusInReview, StatusInTesting}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInReview, StatusInTesting:
		return true
	}

	return false
}

type Platform string

const (
	PlatformAndroid Platform = "Android"
	PlatformIOS     Platform = "iOS"
	PlatformWeb     Platform = "Web"
)

// Platforms lists every known platform in display order.
var Platforms = []Platform{PlatformAndroid, PlatformIOS, PlatformWeb}

func (p Platform) Valid() bool {
	switch p {
	case PlatformAndroid, PlatformIOS, PlatformWeb:
		return true
	}

	return false
}

// RequiresPackageName is true for store distributed platforms:
// Android package name or iOS numeric App Store id.
func (p Platform) RequiresPackageName() bool {
	return p == PlatformAndroid || p == PlatformIOS
}

type SortKey string

const (
	SortNewest SortKey = "newest"
	SortOldest SortKey = "oldest"
)

func (k SortKey) Valid() bool {
	return k == SortNewest || k == SortOldest
}

// App is like apprepo.App but this only use for returning output via external service.
// This must not have any json or yaml tag, any output method (HTTP, gRPC, etc) must define its own entity standard.
type App struct {
	ID          int64
	Name        string
	Category    string
	Description string
	Logo        string
	WebsiteURL  string
	Platform    Platform
	PackageName string
	Status      Status
	CreatedOn   time.Time
}

func AppFromRepo(in apprepo.App) App {
	return App{
		ID:          in.ID,
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Logo:        in.Logo,
		WebsiteURL:  in.WebsiteURL,
		Platform:    Platform(in.Platform),
		PackageName: in.PackageName,
		Status:      Status(in.Status),
		CreatedOn:   time.UnixMicro(in.CreatedOn).UTC(),
	}
}

func appsFromRepo(in []apprepo.App) []App {
	out := make([]App, 0, len(in))
	for _, app := range in {
		out = append(out, AppFromRepo(app))
	}

	return out
}
