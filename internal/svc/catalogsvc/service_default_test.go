package catalogsvc_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/catalogsvc"
	"github.com/yusufsyaifudin/appkeeper/pkg/cache"
)

func newInMemoryCache(t *testing.T) cache.Cache {
	t.Helper()

	c, err := cache.NewInMemory(32 * 1024 * 1024)
	require.NoError(t, err)
	return c
}

func newService(t *testing.T, c cache.Cache, delay time.Duration) *catalogsvc.DefaultService {
	t.Helper()

	svc, err := catalogsvc.New(catalogsvc.DefaultServiceConfig{
		Catalog:        catalogsvc.NewStaticCatalog(),
		Cache:          c,
		CacheExpiry:    time.Minute,
		CachePrefixKey: "catalog",
		Delay:          delay,
	})
	require.NoError(t, err)
	return svc
}

func names(candidates []catalogsvc.Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Name)
	}

	return out
}

func TestNew(t *testing.T) {
	svc, err := catalogsvc.New(catalogsvc.DefaultServiceConfig{})
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestDefaultService_Search(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name      string
		platforms []appsvc.Platform
		query     string
		want      []string
	}{
		{
			name:      "by name",
			platforms: []appsvc.Platform{appsvc.PlatformAndroid},
			query:     "FITNESS",
			want:      []string{"Fitness Tracker Pro"},
		},
		{
			name:      "store url holding package name",
			platforms: []appsvc.Platform{appsvc.PlatformAndroid},
			query:     "https://play.google.com/store/apps/details?id=com.recipe.master",
			want:      []string{"Recipe Master"},
		},
		{
			name:      "ios app id",
			platforms: []appsvc.Platform{appsvc.PlatformIOS},
			query:     "987654321",
			want:      []string{"Budget Planner"},
		},
		{
			name:      "website url with path",
			platforms: []appsvc.Platform{appsvc.PlatformWeb},
			query:     "https://taskmanager.com/pricing",
			want:      []string{"Task Manager Online"},
		},
		{
			name:      "selection order",
			platforms: []appsvc.Platform{appsvc.PlatformWeb, appsvc.PlatformAndroid},
			query:     ".com",
			want:      []string{"Task Manager Online", "Fitness Tracker Pro", "Recipe Master"},
		},
		{
			name:      "no match",
			platforms: []appsvc.Platform{appsvc.PlatformIOS, appsvc.PlatformWeb},
			query:     "zzz",
			want:      []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newService(t, newInMemoryCache(t), 0)

			out, err := svc.Search(ctx, catalogsvc.InputSearch{Platforms: tc.platforms, Query: tc.query})
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(out.Candidates))
		})
	}
}

func TestDefaultService_Search_Rejects(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, newInMemoryCache(t), 0)

	_, err := svc.Search(ctx, catalogsvc.InputSearch{Query: "fitness"})
	assert.ErrorIs(t, err, catalogsvc.ErrNoPlatform)

	_, err = svc.Search(ctx, catalogsvc.InputSearch{Platforms: []appsvc.Platform{appsvc.PlatformWeb}, Query: "   "})
	assert.ErrorIs(t, err, catalogsvc.ErrEmptyQuery)

	_, err = svc.Search(ctx, catalogsvc.InputSearch{Platforms: []appsvc.Platform{"Linux"}, Query: "x"})
	assert.Error(t, err)
}

func TestDefaultService_Search_Cancelled(t *testing.T) {
	svc := newService(t, newInMemoryCache(t), time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	t0 := time.Now()
	_, err := svc.Search(ctx, catalogsvc.InputSearch{Platforms: []appsvc.Platform{appsvc.PlatformWeb}, Query: "task"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(t0), 5*time.Second)
}

func TestDefaultService_Search_Cached(t *testing.T) {
	ctx := context.Background()

	t.Run("in memory", func(t *testing.T) {
		svc := newService(t, newInMemoryCache(t), 0)
		assertCached(t, ctx, svc)
	})

	t.Run("redis", func(t *testing.T) {
		s := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: s.Addr()})

		c, err := cache.NewRedis(cache.RedisConfig{DB: client})
		require.NoError(t, err)

		svc := newService(t, c, 0)
		assertCached(t, ctx, svc)
		assert.True(t, s.Exists("catalog:Android:fitness"))
	})
}

func TestDefaultService_Search_CachedWaitsDelay(t *testing.T) {
	ctx := context.Background()
	delay := 30 * time.Millisecond
	svc := newService(t, newInMemoryCache(t), delay)

	in := catalogsvc.InputSearch{Platforms: []appsvc.Platform{appsvc.PlatformAndroid}, Query: "fitness"}

	_, err := svc.Search(ctx, in)
	require.NoError(t, err)

	t0 := time.Now()
	out, err := svc.Search(ctx, in)
	require.NoError(t, err)
	assert.True(t, out.Cached)
	assert.GreaterOrEqual(t, time.Since(t0), delay)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	_, err = svc.Search(cancelled, in)
	assert.ErrorIs(t, err, context.Canceled, "a cancelled search does not serve the cache")
}

func assertCached(t *testing.T, ctx context.Context, svc *catalogsvc.DefaultService) {
	t.Helper()

	in := catalogsvc.InputSearch{Platforms: []appsvc.Platform{appsvc.PlatformAndroid}, Query: "Fitness"}

	first, err := svc.Search(ctx, in)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	in.Query = "fitness "
	second, err := svc.Search(ctx, in)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Candidates, second.Candidates)
}

func TestDefaultService_Import(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, newInMemoryCache(t), 0)

	candidate := catalogsvc.Candidate{
		Name:        "Budget Planner",
		PackageName: "987654321",
		Category:    "Finance",
		Logo:        "logo",
		WebsiteURL:  "https://budgetplanner.com",
		Description: "desc",
	}

	out, err := svc.Import(ctx, catalogsvc.InputImport{
		Platforms: []appsvc.Platform{appsvc.PlatformIOS, appsvc.PlatformAndroid},
		Candidate: candidate,
	})
	require.NoError(t, err)
	assert.Equal(t, appsvc.FormFields{
		Name:        "Budget Planner",
		Category:    "Finance",
		Logo:        "logo",
		WebsiteURL:  "https://budgetplanner.com",
		Platform:    appsvc.PlatformIOS,
		PackageName: "987654321",
		Description: "desc",
	}, out.Fields)

	_, err = svc.Import(ctx, catalogsvc.InputImport{Candidate: candidate})
	assert.ErrorIs(t, err, catalogsvc.ErrNoPlatform)
}
