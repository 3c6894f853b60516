package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"linkoff-engine/core/domain"
	coreerrors "linkoff-engine/core/errors"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, keys []string) (map[string]any, error) {
	args := m.Called(ctx, keys)
	values, _ := args.Get(0).(map[string]any)
	return values, args.Error(1)
}

func (m *mockStore) Set(ctx context.Context, values map[string]any) error {
	args := m.Called(ctx, values)
	return args.Error(0)
}

func TestLoader_LoadMergesDefaults(t *testing.T) {
	store := &mockStore{}
	store.On("Get", mock.Anything, domain.DefaultKeys()).
		Return(map[string]any{domain.KeyHidePolls: false}, nil)

	snap, err := NewLoader(store, nil).Load(context.Background())

	require.NoError(t, err)
	assert.False(t, snap.Bool(domain.KeyHidePolls))
	assert.True(t, snap.Bool(domain.KeyMainToggle))
	store.AssertExpectations(t)
}

func TestLoader_LoadPropagatesStoreError(t *testing.T) {
	store := &mockStore{}
	cause := &coreerrors.StoreError{Backend: "redis", Op: "get", Err: errors.New("down")}
	store.On("Get", mock.Anything, mock.Anything).Return(nil, cause)

	_, err := NewLoader(store, nil).Load(context.Background())

	require.Error(t, err)
	assert.True(t, coreerrors.IsStore(err))
}

func TestLoader_SaveValidates(t *testing.T) {
	store := &mockStore{}
	loader := NewLoader(store, nil)

	err := loader.Save(context.Background(), map[string]any{"nope": true})
	assert.True(t, coreerrors.IsValidation(err))

	err = loader.Save(context.Background(), map[string]any{domain.KeyHidePolls: "yes"})
	assert.True(t, coreerrors.IsValidation(err))

	err = loader.Save(context.Background(), map[string]any{domain.KeyHideByAge: "decade"})
	assert.True(t, coreerrors.IsValidation(err))

	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestLoader_SaveWrites(t *testing.T) {
	store := &mockStore{}
	values := map[string]any{domain.KeyHidePolls: false, domain.KeyHideByAge: "disabled"}
	store.On("Set", mock.Anything, values).Return(nil)

	require.NoError(t, NewLoader(store, nil).Save(context.Background(), values))
	store.AssertExpectations(t)
}

func TestLoader_SavePropagatesStoreError(t *testing.T) {
	store := &mockStore{}
	store.On("Set", mock.Anything, mock.Anything).Return(errors.New("read only"))

	err := NewLoader(store, nil).Save(context.Background(), map[string]any{domain.KeyDarkMode: true})

	assert.EqualError(t, err, "save settings: read only")
}
