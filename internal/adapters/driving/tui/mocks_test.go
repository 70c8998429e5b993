package tui

import (
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// mockSettingsService records playback interval updates.
type mockSettingsService struct {
	mu        sync.Mutex
	intervals []time.Duration
	err       error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := domain.DefaultAppSettings()
	return &s, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return m.err }

func (m *mockSettingsService) SetSegmentation(o *domain.SettingsOverride) (domain.SegmentationSettings, error) {
	return domain.NormalizeSettings(o), m.err
}

func (m *mockSettingsService) SetPlaybackInterval(d time.Duration) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	d = domain.ClampInterval(d)
	m.intervals = append(m.intervals, d)
	return d, nil
}

func (m *mockSettingsService) SetDictionary(_ domain.Dictionary) error { return m.err }

func (m *mockSettingsService) SetPostProcessors(_ []string) error { return m.err }

func (m *mockSettingsService) Reset() error { return m.err }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

var errReadOnly = errors.New("config is read-only")
