package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driven"
	"github.com/custodia-labs/datalex/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyPageSize    = "pagination.page_size"
	KeyPolicy      = "selection.policy"
	KeyMode        = "fragmentation.mode"
	KeyTarget      = "fragmentation.target"
	KeyTolerance   = "fragmentation.tolerance"
	KeyWorkers     = "engine.workers"
	KeyEngineInbox = "engine.inbox"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Pagination: domain.PaginationSettings{
			PageSize: s.getInt(KeyPageSize, defaults.Pagination.PageSize),
		},
		Selection: domain.SelectionSettings{
			Policy: s.getPolicy(defaults.Selection.Policy),
		},
		Fragmentation: domain.FragmentationSettings{
			Mode:      s.getMode(defaults.Fragmentation.Mode),
			Target:    s.getInt(KeyTarget, defaults.Fragmentation.Target),
			Tolerance: s.getTolerance(defaults.Fragmentation.Tolerance),
		},
		Engine: domain.EngineSettings{
			Workers: s.getInt(KeyWorkers, defaults.Engine.Workers),
			Inbox:   s.getString(KeyEngineInbox, defaults.Engine.Inbox),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	if err := s.configStore.Set(KeyPageSize, settings.Pagination.PageSize); err != nil {
		return fmt.Errorf("save page size: %w", err)
	}
	if err := s.configStore.Set(KeyPolicy, settings.Selection.Policy.String()); err != nil {
		return fmt.Errorf("save selection policy: %w", err)
	}
	if err := s.configStore.Set(KeyMode, settings.Fragmentation.Mode.String()); err != nil {
		return fmt.Errorf("save fragmentation mode: %w", err)
	}
	if err := s.configStore.Set(KeyTarget, settings.Fragmentation.Target); err != nil {
		return fmt.Errorf("save fragmentation target: %w", err)
	}
	if err := s.configStore.Set(KeyTolerance, settings.Fragmentation.Tolerance); err != nil {
		return fmt.Errorf("save fragmentation tolerance: %w", err)
	}
	if err := s.configStore.Set(KeyWorkers, settings.Engine.Workers); err != nil {
		return fmt.Errorf("save engine workers: %w", err)
	}
	if settings.Engine.Inbox != "" {
		if err := s.configStore.Set(KeyEngineInbox, settings.Engine.Inbox); err != nil {
			return fmt.Errorf("save engine inbox: %w", err)
		}
	}

	return nil
}

// Set updates a single setting by key, validating the value.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case KeyPageSize, KeyTarget, KeyWorkers:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidInput, key, value)
		}
		return s.configStore.Set(key, n)
	case KeyTolerance:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer, got %q", domain.ErrInvalidInput, key, value)
		}
		return s.configStore.Set(key, n)
	case KeyPolicy:
		policy := domain.SelectionPolicy(value)
		if !policy.IsValid() {
			return fmt.Errorf("%w: %s must be %s or %s, got %q", domain.ErrInvalidInput, key,
				domain.SelectionClearOnPageChange, domain.SelectionPersistAcrossPages, value)
		}
		return s.configStore.Set(key, policy.String())
	case KeyMode:
		mode, err := domain.ParseFragmentationMode(value)
		if err != nil {
			return err
		}
		return s.configStore.Set(key, mode.String())
	case KeyEngineInbox:
		if value == "" {
			return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Keys lists the settable keys.
func (s *SettingsService) Keys() []string {
	return []string{
		KeyPageSize,
		KeyPolicy,
		KeyMode,
		KeyTarget,
		KeyTolerance,
		KeyWorkers,
		KeyEngineInbox,
	}
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

// getTolerance keeps a stored zero, which is a valid tolerance.
func (s *SettingsService) getTolerance(defaultVal int) int {
	if _, exists := s.configStore.Get(KeyTolerance); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(KeyTolerance)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPolicy(defaultVal domain.SelectionPolicy) domain.SelectionPolicy {
	policy := domain.SelectionPolicy(s.configStore.GetString(KeyPolicy))
	if !policy.IsValid() {
		return defaultVal
	}
	return policy
}

func (s *SettingsService) getMode(defaultVal domain.FragmentationMode) domain.FragmentationMode {
	mode := domain.FragmentationMode(s.configStore.GetString(KeyMode))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}
