// ABOUTME: Tests for the profile service against a temp-dir SQLite store.
// ABOUTME: Covers submission validation, retakes replacing profiles, and email lookups.
package profiles

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/brewmatch/internal/models"
	"github.com/2389-research/brewmatch/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc, err := NewService(store)
	require.NoError(t, err)
	return svc
}

func v60Answers() Answers {
	return Answers{
		Chocolate: models.ChocolateDark85,
		Fruit:     models.FruitCitrus,
		Drink:     models.DrinkWineLight,
		Texture:   models.TextureTeaLike,
		Adventure: models.AdventureWild,
		Method:    models.MethodV60,
	}
}

func TestNewServiceRequiresStore(t *testing.T) {
	_, err := NewService(nil)
	assert.Error(t, err)
}

func TestSubmitAndLookup(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, p, err := svc.Submit(ctx, "  Ana@Example.com ", v60Answers())
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, user.ID, p.UserID)
	assert.False(t, p.HasGrinder)

	gotUser, gotProfile, err := svc.ForEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotUser.ID)
	assert.Equal(t, models.MethodV60, gotProfile.BrewingMethod)
	assert.Equal(t, models.ChocolateDark85, gotProfile.ChocolatePreference)
}

func TestSubmitRetakeReplacesProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, first, err := svc.Submit(ctx, "bruno@example.com", v60Answers())
	require.NoError(t, err)

	retake := v60Answers()
	retake.Method = models.MethodFrenchPress
	retake.HasGrinder = true
	_, second, err := svc.Submit(ctx, "bruno@example.com", retake)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, got, err := svc.ForEmail(ctx, "bruno@example.com")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, models.MethodFrenchPress, got.BrewingMethod)
	assert.True(t, got.HasGrinder)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSubmitRejectsInvalidAnswers(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := v60Answers()
	a.Texture = ""
	a.Method = "aeropress"
	_, _, err := svc.Submit(ctx, "carla@example.com", a)

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.HasField("texture_preference"))
	assert.True(t, verr.HasField("brewing_method"))

	_, _, err = svc.ForEmail(ctx, "carla@example.com")
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestSubmitRejectsBadEmail(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.Submit(context.Background(), "not-an-email", v60Answers())

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.HasField("email"))
}

func TestForEmailMissing(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.ForEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNoProfile)

	_, _, err = svc.ForEmail(context.Background(), "")
	var verr *models.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestAnswersEmpty(t *testing.T) {
	assert.True(t, Answers{HasGrinder: true}.Empty())
	assert.False(t, Answers{Method: models.MethodMoka}.Empty())
}
