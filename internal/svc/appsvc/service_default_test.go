package appsvc_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/apprepo"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
)

func newService(t *testing.T, now time.Time) (*appsvc.DefaultService, *apprepo.InMemory) {
	t.Helper()

	repo := apprepo.NewInMemory()
	require.NoError(t, repo.Seed(apprepo.SampleApps()...))

	svc, err := appsvc.New(appsvc.DefaultServiceConfig{
		AppRepo: repo,
		Now: func() time.Time {
			return now
		},
	})
	require.NoError(t, err)

	return svc, repo
}

func TestNew(t *testing.T) {
	svc, err := appsvc.New(appsvc.DefaultServiceConfig{})
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestDefaultService_ListApp(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, time.Now())

	t.Run("active newest first", func(t *testing.T) {
		out, err := svc.ListApp(ctx, appsvc.InputListApp{
			Filter: appsvc.Filter{Status: []appsvc.Status{appsvc.StatusActive}},
			SortBy: appsvc.SortNewest,
			Page:   1,
		})
		require.NoError(t, err)

		ids := make([]int64, 0)
		for _, app := range out.Page.Items {
			assert.Equal(t, appsvc.StatusActive, app.Status)
			ids = append(ids, app.ID)
		}

		assert.Equal(t, []int64{12, 11, 9, 7, 6, 5, 3, 1}, ids)
		assert.Equal(t, 1, out.Page.TotalPages)
		assert.Equal(t, "Showing 1 to 8 of 8", out.Page.Caption())
	})

	t.Run("page past the end is clamped", func(t *testing.T) {
		out, err := svc.ListApp(ctx, appsvc.InputListApp{
			Filter: appsvc.Filter{Status: []appsvc.Status{appsvc.StatusActive}},
			Page:   2,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Page.Page)
		assert.Len(t, out.Page.Items, 8)
	})

	t.Run("default sort is newest", func(t *testing.T) {
		out, err := svc.ListApp(ctx, appsvc.InputListApp{Page: 2})
		require.NoError(t, err)
		assert.Equal(t, appsvc.SortNewest, out.SortBy)
		require.Len(t, out.Page.Items, 2)
		assert.Equal(t, "Travel Buddy", out.Page.Items[0].Name)
		assert.Equal(t, "MyFitness Pro", out.Page.Items[1].Name)
	})

	t.Run("unknown sort key", func(t *testing.T) {
		_, err := svc.ListApp(ctx, appsvc.InputListApp{SortBy: "popular"})
		assert.ErrorIs(t, err, appsvc.ErrUnknownSortKey)
	})

	t.Run("unknown filter value", func(t *testing.T) {
		_, err := svc.ListApp(ctx, appsvc.InputListApp{
			Filter: appsvc.Filter{Platform: []appsvc.Platform{"Linux"}},
		})
		assert.ErrorIs(t, err, appsvc.ErrUnknownPlatform)
	})

	t.Run("no match", func(t *testing.T) {
		out, err := svc.ListApp(ctx, appsvc.InputListApp{
			Filter: appsvc.Filter{
				Status:   []appsvc.Status{appsvc.StatusInTesting},
				Platform: []appsvc.Platform{appsvc.PlatformWeb},
			},
		})
		require.NoError(t, err)
		assert.Empty(t, out.Page.Items)
		assert.Equal(t, 1, out.Page.Page)
	})
}

func TestDefaultService_CreateApp(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC)

	t.Run("web without package name", func(t *testing.T) {
		svc, _ := newService(t, now)

		out, err := svc.CreateApp(ctx, appsvc.InputCreateApp{Fields: appsvc.FormFields{
			Name:     "  Notes  ",
			Category: "Productivity",
			Platform: appsvc.PlatformWeb,
		}})
		require.NoError(t, err)
		assert.Equal(t, "Notes", out.App.Name)
		assert.Equal(t, appsvc.StatusInReview, out.App.Status)
		assert.Equal(t, now, out.App.CreatedOn)

		list, err := svc.ListApp(ctx, appsvc.InputListApp{})
		require.NoError(t, err)
		assert.Equal(t, 13, list.Page.TotalItems)
		assert.Equal(t, out.App.ID, list.Page.Items[0].ID)
	})

	t.Run("android without package name", func(t *testing.T) {
		svc, _ := newService(t, now)

		_, err := svc.CreateApp(ctx, appsvc.InputCreateApp{Fields: appsvc.FormFields{
			Name:     "Notes",
			Category: "Productivity",
			Platform: appsvc.PlatformAndroid,
		}})
		require.ErrorIs(t, err, appsvc.ErrFormInvalid)

		var fieldErrs appsvc.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, appsvc.FieldErrors{appsvc.FieldPackageName: appsvc.MsgPackageNameRequired}, fieldErrs)
	})

	t.Run("ids are never reused", func(t *testing.T) {
		svc, _ := newService(t, now)

		fields := appsvc.FormFields{Name: "A", Category: "B", Platform: appsvc.PlatformWeb}
		first, err := svc.CreateApp(ctx, appsvc.InputCreateApp{Fields: fields})
		require.NoError(t, err)

		second, err := svc.CreateApp(ctx, appsvc.InputCreateApp{Fields: fields})
		require.NoError(t, err)
		assert.Greater(t, second.App.ID, first.App.ID)
	})
}

func TestDefaultService_PutApp(t *testing.T) {
	ctx := context.Background()

	t.Run("rename keeps id created and status", func(t *testing.T) {
		svc, _ := newService(t, time.Now())

		before, err := svc.GetApp(ctx, appsvc.InputGetApp{ID: 2})
		require.NoError(t, err)

		fields := appsvc.FieldsFromApp(before.App)
		fields.Name = "Travel Buddy 2"

		out, err := svc.PutApp(ctx, appsvc.InputPutApp{ID: 2, Fields: fields})
		require.NoError(t, err)

		want := before.App
		want.Name = "Travel Buddy 2"
		assert.Equal(t, want, out.App)
	})

	t.Run("status change", func(t *testing.T) {
		svc, _ := newService(t, time.Now())

		before, err := svc.GetApp(ctx, appsvc.InputGetApp{ID: 2})
		require.NoError(t, err)

		out, err := svc.PutApp(ctx, appsvc.InputPutApp{
			ID:     2,
			Fields: appsvc.FieldsFromApp(before.App),
			Status: appsvc.StatusActive,
		})
		require.NoError(t, err)
		assert.Equal(t, appsvc.StatusActive, out.App.Status)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _ := newService(t, time.Now())

		_, err := svc.PutApp(ctx, appsvc.InputPutApp{
			ID:     999,
			Fields: appsvc.FormFields{Name: "A", Category: "B", Platform: appsvc.PlatformWeb},
		})
		assert.ErrorIs(t, err, appsvc.ErrAppNotFound)
	})

	t.Run("invalid fields", func(t *testing.T) {
		svc, _ := newService(t, time.Now())

		_, err := svc.PutApp(ctx, appsvc.InputPutApp{ID: 1, Fields: appsvc.FormFields{}})
		assert.ErrorIs(t, err, appsvc.ErrFormInvalid)
	})

	t.Run("missing id", func(t *testing.T) {
		svc, _ := newService(t, time.Now())

		_, err := svc.PutApp(ctx, appsvc.InputPutApp{})
		assert.Error(t, err)
	})
}

func TestDefaultService_GetApp(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, time.Now())

	out, err := svc.GetApp(ctx, appsvc.InputGetApp{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "MyFitness Pro", out.App.Name)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), out.App.CreatedOn)

	_, err = svc.GetApp(ctx, appsvc.InputGetApp{ID: 404})
	assert.ErrorIs(t, err, appsvc.ErrAppNotFound)
}

func TestDefaultService_ValidateApp(t *testing.T) {
	svc, _ := newService(t, time.Now())

	out, err := svc.ValidateApp(context.Background(), appsvc.InputValidateApp{
		Fields: appsvc.FormFields{Name: "A", Platform: appsvc.PlatformIOS, PackageName: "1"},
	})
	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.Equal(t, appsvc.FieldErrors{appsvc.FieldCategory: appsvc.MsgCategoryRequired}, out.Errors)
}
