package appsvc_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/apprepo"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
)

func sampleApps() []appsvc.App {
	out := make([]appsvc.App, 0)
	for _, app := range apprepo.SampleApps() {
		out = append(out, appsvc.AppFromRepo(app))
	}

	return out
}

func randomApps(r *rand.Rand, n int) []appsvc.App {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]appsvc.App, n)
	for i := range out {
		out[i] = appsvc.App{
			ID:        int64(i + 1),
			Name:      fmt.Sprintf("app-%d", i),
			Status:    appsvc.Statuses[r.Intn(len(appsvc.Statuses))],
			Platform:  appsvc.Platforms[r.Intn(len(appsvc.Platforms))],
			CreatedOn: base.Add(time.Duration(r.Intn(1000)) * time.Hour),
		}
	}

	return out
}

func TestFilterApps(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	t.Run("empty filter is identity", func(t *testing.T) {
		for n := 0; n < 30; n++ {
			apps := randomApps(r, n)
			assert.Equal(t, apps, appsvc.FilterApps(apps, appsvc.Filter{}))
		}

		apps := sampleApps()
		out := appsvc.FilterApps(apps, appsvc.Filter{Status: []appsvc.Status{}})
		require.Len(t, out, len(apps))

		out[0].Name = "changed"
		assert.NotEqual(t, "changed", apps[0].Name, "result must not share the input array")
	})

	t.Run("is empty", func(t *testing.T) {
		assert.True(t, appsvc.Filter{}.IsEmpty())
		assert.True(t, appsvc.Filter{Status: []appsvc.Status{}}.IsEmpty())
		assert.False(t, appsvc.Filter{Platform: []appsvc.Platform{appsvc.PlatformWeb}}.IsEmpty())
	})

	t.Run("status membership", func(t *testing.T) {
		filters := [][]appsvc.Status{
			{appsvc.StatusActive},
			{appsvc.StatusInReview, appsvc.StatusInTesting},
			appsvc.Statuses,
		}

		for _, statuses := range filters {
			apps := randomApps(r, 50)
			out := appsvc.FilterApps(apps, appsvc.Filter{Status: statuses})

			want := 0
			for _, app := range apps {
				if containsStatus(statuses, app.Status) {
					want++
				}
			}

			assert.Len(t, out, want)
			for _, app := range out {
				assert.Contains(t, statuses, app.Status)
			}
		}
	})

	t.Run("status and platform are combined", func(t *testing.T) {
		out := appsvc.FilterApps(sampleApps(), appsvc.Filter{
			Status:   []appsvc.Status{appsvc.StatusActive},
			Platform: []appsvc.Platform{appsvc.PlatformWeb},
		})

		names := make([]string, 0)
		for _, app := range out {
			names = append(names, app.Name)
		}

		assert.Equal(t, []string{"Recipe Finder", "Shopping Plus", "Yoga Daily", "Task Manager Pro"}, names)
	})

	t.Run("keeps input order", func(t *testing.T) {
		apps := randomApps(r, 40)
		out := appsvc.FilterApps(apps, appsvc.Filter{Platform: []appsvc.Platform{appsvc.PlatformIOS}})
		for i := 1; i < len(out); i++ {
			assert.Less(t, out[i-1].ID, out[i].ID)
		}
	})
}

func containsStatus(in []appsvc.Status, s appsvc.Status) bool {
	for _, v := range in {
		if v == s {
			return true
		}
	}

	return false
}

func TestFilter_Toggle(t *testing.T) {
	f := appsvc.Filter{}
	f = f.ToggleStatus(appsvc.StatusActive)
	f = f.TogglePlatform(appsvc.PlatformIOS)
	assert.Equal(t, []appsvc.Status{appsvc.StatusActive}, f.Status)
	assert.Equal(t, []appsvc.Platform{appsvc.PlatformIOS}, f.Platform)

	g := f.ToggleStatus(appsvc.StatusActive)
	assert.Empty(t, g.Status)
	assert.Equal(t, []appsvc.Status{appsvc.StatusActive}, f.Status, "toggle must not mutate the receiver")
}

func TestFilter_Validate(t *testing.T) {
	assert.NoError(t, appsvc.Filter{Status: appsvc.Statuses, Platform: appsvc.Platforms}.Validate())
	assert.ErrorIs(t, appsvc.Filter{Status: []appsvc.Status{"Deleted"}}.Validate(), appsvc.ErrUnknownStatus)
	assert.ErrorIs(t, appsvc.Filter{Platform: []appsvc.Platform{"Linux"}}.Validate(), appsvc.ErrUnknownPlatform)
}

func TestSortApps(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	t.Run("newest", func(t *testing.T) {
		for n := 0; n < 30; n++ {
			out := appsvc.SortApps(randomApps(r, n), appsvc.SortNewest)
			for i := 1; i < len(out); i++ {
				assert.False(t, out[i-1].CreatedOn.Before(out[i].CreatedOn))
			}
		}
	})

	t.Run("oldest", func(t *testing.T) {
		out := appsvc.SortApps(sampleApps(), appsvc.SortOldest)
		require.Len(t, out, 12)
		assert.Equal(t, "MyFitness Pro", out[0].Name)
		assert.Equal(t, "Task Manager Pro", out[11].Name)
	})

	t.Run("unknown key passes through", func(t *testing.T) {
		apps := randomApps(r, 10)
		assert.Equal(t, apps, appsvc.SortApps(apps, "popular"))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		apps := sampleApps()
		_ = appsvc.SortApps(apps, appsvc.SortNewest)
		assert.Equal(t, "MyFitness Pro", apps[0].Name)
	})
}

func TestPaginate(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	t.Run("partition", func(t *testing.T) {
		for n := 0; n <= 45; n++ {
			apps := randomApps(r, n)
			first := appsvc.Paginate(apps, 1, appsvc.PageSize)

			wantPages := (n + 9) / 10
			assert.Equal(t, wantPages, first.TotalPages)

			got := make([]appsvc.App, 0, n)
			for p := 1; p <= first.TotalPages; p++ {
				page := appsvc.Paginate(apps, p, appsvc.PageSize)
				assert.Equal(t, p, page.Page)
				got = append(got, page.Items...)
			}

			assert.Equal(t, apps, append([]appsvc.App{}, got...))
		}
	})

	t.Run("clamp", func(t *testing.T) {
		apps := randomApps(r, 25)

		testCases := map[int]int{-3: 1, 0: 1, 1: 1, 3: 3, 4: 3, 100: 3}
		for req, want := range testCases {
			assert.Equal(t, want, appsvc.Paginate(apps, req, 10).Page, "requested page %d", req)
		}
	})

	t.Run("empty", func(t *testing.T) {
		page := appsvc.Paginate(nil, 5, 10)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 0, page.TotalPages)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasPrev)
		assert.False(t, page.HasNext)
		assert.Equal(t, "Showing 0 to 0 of 0", page.Caption())
	})

	t.Run("caption and navigation", func(t *testing.T) {
		apps := randomApps(r, 12)

		first := appsvc.Paginate(apps, 1, 10)
		assert.Equal(t, "Showing 1 to 10 of 12", first.Caption())
		assert.False(t, first.HasPrev)
		assert.True(t, first.HasNext)

		second := appsvc.Paginate(apps, 2, 10)
		assert.Equal(t, "Showing 11 to 12 of 12", second.Caption())
		assert.True(t, second.HasPrev)
		assert.False(t, second.HasNext)
	})

	t.Run("default size", func(t *testing.T) {
		assert.Equal(t, appsvc.PageSize, appsvc.Paginate(randomApps(r, 3), 1, 0).PageSize)
	})
}

func TestBadges(t *testing.T) {
	assert.Equal(t, appsvc.StatusBadge{Background: "yellow-50", Text: "yellow-700", Dot: "yellow-500"},
		appsvc.StatusBadgeOf(appsvc.StatusInReview))
	assert.Equal(t, appsvc.StatusBadgeOf(appsvc.StatusActive), appsvc.StatusBadgeOf("Archived"))

	assert.Equal(t, appsvc.PlatformBadge{Background: "gray-50", Text: "gray-700", Border: "gray-200"},
		appsvc.PlatformBadgeOf(appsvc.PlatformIOS))
	assert.Equal(t, appsvc.PlatformBadgeOf(appsvc.PlatformWeb), appsvc.PlatformBadgeOf("Desktop"))
}
