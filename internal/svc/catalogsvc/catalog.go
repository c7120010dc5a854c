package catalogsvc

import (
	"context"

	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
)

// Candidate is one store listing that can be imported into the registry.
type Candidate struct {
	Name        string `json:"name"`
	PackageName string `json:"packageName"`
	Category    string `json:"category"`
	Logo        string `json:"logo"`
	WebsiteURL  string `json:"websiteUrl"`
	Description string `json:"description"`
}

// Catalog looks up store listings of one platform.
type Catalog interface {
	Lookup(ctx context.Context, platform appsvc.Platform) ([]Candidate, error)
}

// StaticCatalog serves a fixed set of listings per platform.
type StaticCatalog struct {
	entries map[appsvc.Platform][]Candidate
}

var _ Catalog = (*StaticCatalog)(nil)

func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{
		entries: map[appsvc.Platform][]Candidate{
			appsvc.PlatformAndroid: {
				{
					Name:        "Fitness Tracker Pro",
					PackageName: "com.fitness.tracker",
					Category:    "Health & Fitness",
					Logo:        "https://ui-avatars.com/api/?name=Fitness&background=10B981&color=fff",
					WebsiteURL:  "https://fitnesstracker.com",
					Description: "Track your daily fitness activities",
				},
				{
					Name:        "Recipe Master",
					PackageName: "com.recipe.master",
					Category:    "Food & Drink",
					Logo:        "https://ui-avatars.com/api/?name=Recipe&background=F59E0B&color=fff",
					WebsiteURL:  "https://recipemaster.com",
					Description: "Discover and save delicious recipes",
				},
			},
			appsvc.PlatformIOS: {
				{
					Name:        "Budget Planner",
					PackageName: "987654321",
					Category:    "Finance",
					Logo:        "https://ui-avatars.com/api/?name=Budget&background=3B82F6&color=fff",
					WebsiteURL:  "https://budgetplanner.com",
					Description: "Manage your finances efficiently",
				},
			},
			appsvc.PlatformWeb: {
				{
					Name:        "Task Manager Online",
					PackageName: "",
					Category:    "Productivity",
					Logo:        "https://ui-avatars.com/api/?name=Task&background=8B5CF6&color=fff",
					WebsiteURL:  "https://taskmanager.com",
					Description: "Organize your tasks and projects",
				},
			},
		},
	}
}

// Lookup returns a copy, unknown platform returns an empty list.
func (s *StaticCatalog) Lookup(_ context.Context, platform appsvc.Platform) ([]Candidate, error) {
	entries := s.entries[platform]
	out := make([]Candidate, len(entries))
	copy(out, entries)
	return out, nil
}
