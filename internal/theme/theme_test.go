package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/users-table/internal/lib/logger"
	"github.com/magabrotheeeer/users-table/internal/models"
	"github.com/magabrotheeeer/users-table/internal/preference"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStore) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func prefers(dark bool) PlatformPreference {
	return func() bool { return dark }
}

func TestController_InitResolution(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		hasValue bool
		platform PlatformPreference
		want     models.Theme
	}{
		{name: "stored dark wins over platform light", stored: "dark", hasValue: true, platform: prefers(false), want: models.ThemeDark},
		{name: "stored light wins over platform dark", stored: "light", hasValue: true, platform: prefers(true), want: models.ThemeLight},
		{name: "platform dark when unset", platform: prefers(true), want: models.ThemeDark},
		{name: "light when unset and platform light", platform: prefers(false), want: models.ThemeLight},
		{name: "light when nothing known", platform: nil, want: models.ThemeLight},
		{name: "unknown stored value falls through", stored: "solarized", hasValue: true, platform: prefers(true), want: models.ThemeDark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := preference.NewMemory()
			if tt.hasValue {
				require.NoError(t, store.Set(context.Background(), DefaultKey, tt.stored))
			}
			attr := &Attribute{}
			c := New(store, DefaultKey, attr, nil, logger.Discard())

			got, err := c.Init(context.Background(), tt.platform)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, c.Current())
			assert.Equal(t, string(tt.want), attr.Value())

			v, ok, err := store.Get(context.Background(), DefaultKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, string(tt.want), v)
		})
	}
}

func TestController_ToggleWritesLiteral(t *testing.T) {
	store := preference.NewMemory()
	attr := &Attribute{}
	c := New(store, "ui-theme", attr, nil, logger.Discard())
	_, err := c.Init(context.Background(), prefers(false))
	require.NoError(t, err)

	got, err := c.Toggle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, got)
	v, _, _ := store.Get(context.Background(), "ui-theme")
	assert.Equal(t, "dark", v)
	assert.Equal(t, "dark", attr.Value())

	got, err = c.Toggle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, got)
	v, _, _ = store.Get(context.Background(), "ui-theme")
	assert.Equal(t, "light", v)
	assert.Equal(t, "light", attr.Value())
}

func TestController_PersistenceRoundTrip(t *testing.T) {
	for _, want := range []models.Theme{models.ThemeDark, models.ThemeLight} {
		t.Run(string(want), func(t *testing.T) {
			store := preference.NewMemory()
			first := New(store, DefaultKey, &Attribute{}, nil, logger.Discard())
			_, err := first.Init(context.Background(), prefers(want == models.ThemeLight))
			require.NoError(t, err)
			if first.Current() != want {
				_, err = first.Toggle(context.Background())
				require.NoError(t, err)
			}

			// a fresh controller with the opposite platform preference still sees the stored choice
			second := New(store, DefaultKey, &Attribute{}, nil, logger.Discard())
			got, err := second.Init(context.Background(), prefers(want == models.ThemeLight))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestController_InitStoreError(t *testing.T) {
	store := new(MockStore)
	store.On("Get", mock.Anything, DefaultKey).Return("", false, errors.New("redis down"))

	c := New(store, "", &Attribute{}, nil, logger.Discard())
	_, err := c.Init(context.Background(), prefers(true))
	assert.ErrorContains(t, err, "redis down")
	assert.Equal(t, models.ThemeLight, c.Current())
	store.AssertExpectations(t)
}

func TestController_ToggleStoreErrorKeepsTheme(t *testing.T) {
	store := new(MockStore)
	store.On("Get", mock.Anything, DefaultKey).Return("", false, nil)
	store.On("Set", mock.Anything, DefaultKey, "light").Return(nil).Once()
	store.On("Set", mock.Anything, DefaultKey, "dark").Return(errors.New("read only replica")).Once()

	attr := &Attribute{}
	c := New(store, DefaultKey, attr, nil, logger.Discard())
	_, err := c.Init(context.Background(), prefers(false))
	require.NoError(t, err)

	_, err = c.Toggle(context.Background())
	assert.Error(t, err)
	assert.Equal(t, models.ThemeLight, c.Current())
	assert.Equal(t, "light", attr.Value())
	store.AssertExpectations(t)
}

func TestAttribute_DefaultValue(t *testing.T) {
	assert.Equal(t, "light", (&Attribute{}).Value())
}
