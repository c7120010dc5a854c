package apprepo_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/apprepo"
)

func seeded(t *testing.T) *apprepo.InMemory {
	repo := apprepo.NewInMemory()
	require.NoError(t, repo.Seed(apprepo.SampleApps()...))
	return repo
}

func TestInMemory_Seed(t *testing.T) {
	t.Run("sample apps", func(t *testing.T) {
		repo := seeded(t)

		out, err := repo.List(context.Background(), apprepo.InputList{})
		require.NoError(t, err)
		require.Len(t, out.Apps, 12)
		assert.Equal(t, "MyFitness Pro", out.Apps[0].Name)
		assert.Equal(t, "Task Manager Pro", out.Apps[11].Name)
	})

	t.Run("duplicate id", func(t *testing.T) {
		repo := seeded(t)
		err := repo.Seed(apprepo.App{ID: 3, Name: "dup"})
		assert.ErrorIs(t, err, apprepo.ErrDuplicateID)
	})

	t.Run("missing id", func(t *testing.T) {
		err := apprepo.NewInMemory().Seed(apprepo.App{Name: "no id"})
		assert.ErrorIs(t, err, apprepo.ErrValidation)
	})
}

func TestInMemory_Create(t *testing.T) {
	t.Run("id continues after seed", func(t *testing.T) {
		repo := seeded(t)

		out, err := repo.Create(context.Background(), apprepo.InputCreate{App: apprepo.App{ID: 1, Name: "New"}})
		require.NoError(t, err)
		assert.EqualValues(t, 13, out.App.ID)
		assert.NotZero(t, out.App.CreatedOn)
	})

	t.Run("concurrent create never reuses id", func(t *testing.T) {
		repo := apprepo.NewInMemory()

		wg := sync.WaitGroup{}
		ids := sync.Map{}
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				out, err := repo.Create(context.Background(), apprepo.InputCreate{App: apprepo.App{Name: "x"}})
				assert.NoError(t, err)
				_, dup := ids.LoadOrStore(out.App.ID, true)
				assert.False(t, dup)
			}()
		}

		wg.Wait()

		list, err := repo.List(context.Background(), apprepo.InputList{})
		require.NoError(t, err)
		assert.Len(t, list.Apps, 100)
	})
}

func TestInMemory_Update(t *testing.T) {
	t.Run("keeps id and created on", func(t *testing.T) {
		repo := seeded(t)
		before, err := repo.GetByID(context.Background(), apprepo.InputGetByID{ID: 2})
		require.NoError(t, err)

		in := before.App
		in.ID = 99
		in.CreatedOn = 1
		in.Name = "Travel Buddy 2"

		out, err := repo.Update(context.Background(), apprepo.InputUpdate{ID: 2, App: in})
		require.NoError(t, err)
		assert.EqualValues(t, 2, out.App.ID)
		assert.Equal(t, before.App.CreatedOn, out.App.CreatedOn)
		assert.Equal(t, "Travel Buddy 2", out.App.Name)

		list, err := repo.List(context.Background(), apprepo.InputList{})
		require.NoError(t, err)
		assert.Equal(t, "Travel Buddy 2", list.Apps[1].Name)
	})

	t.Run("not found", func(t *testing.T) {
		repo := seeded(t)
		_, err := repo.Update(context.Background(), apprepo.InputUpdate{ID: 404})
		assert.ErrorIs(t, err, apprepo.ErrNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		repo := seeded(t)
		_, err := repo.Update(context.Background(), apprepo.InputUpdate{ID: 0})
		assert.ErrorIs(t, err, apprepo.ErrValidation)
	})
}

func TestInMemory_List(t *testing.T) {
	t.Run("version changes on mutation", func(t *testing.T) {
		repo := seeded(t)

		first, err := repo.List(context.Background(), apprepo.InputList{})
		require.NoError(t, err)

		again, err := repo.List(context.Background(), apprepo.InputList{})
		require.NoError(t, err)
		assert.Equal(t, first.Version, again.Version)

		_, err = repo.Create(context.Background(), apprepo.InputCreate{App: apprepo.App{Name: "x"}})
		require.NoError(t, err)

		after, err := repo.List(context.Background(), apprepo.InputList{})
		require.NoError(t, err)
		assert.NotEqual(t, first.Version, after.Version)
	})

	t.Run("returns a copy", func(t *testing.T) {
		repo := seeded(t)

		out, err := repo.List(context.Background(), apprepo.InputList{})
		require.NoError(t, err)
		out.Apps[0].Name = "changed"

		got, err := repo.GetByID(context.Background(), apprepo.InputGetByID{ID: 1})
		require.NoError(t, err)
		assert.Equal(t, "MyFitness Pro", got.App.Name)
	})
}
