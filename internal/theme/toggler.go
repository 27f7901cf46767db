package theme

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/matheus3301/notilog/internal/bus"
	"github.com/matheus3301/notilog/internal/config"
)

// Toggler owns the current mode and persists it to the config file.
type Toggler struct {
	mu         sync.Mutex
	configPath string
	mode       Mode
	bus        *bus.Bus
	log        *zap.Logger
}

// NewToggler reads the stored mode from the config at configPath. A missing,
// empty or invalid value yields Default.
func NewToggler(configPath string, b *bus.Bus, log *zap.Logger) (*Toggler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := &config.Config{}
	if configPath != "" {
		var err error
		if cfg, err = config.LoadOrEmpty(configPath); err != nil {
			return nil, err
		}
	}
	return &Toggler{
		configPath: configPath,
		mode:       ParseMode(cfg.Theme),
		bus:        b,
		log:        log,
	}, nil
}

// Mode returns the active mode.
func (t *Toggler) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// Toggle flips the mode, stores it and publishes a theme change.
func (t *Toggler) Toggle() (Mode, error) {
	t.mu.Lock()
	next := t.mode.Toggle()
	t.mode = next
	err := t.persist(next)
	t.mu.Unlock()
	return next, t.changed(next, err)
}

// Set switches to m. The new mode takes effect even if saving fails.
func (t *Toggler) Set(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("invalid theme %q (want light or dark)", m)
	}
	t.mu.Lock()
	t.mode = m
	err := t.persist(m)
	t.mu.Unlock()
	return t.changed(m, err)
}

func (t *Toggler) changed(m Mode, err error) error {
	t.bus.Emit(bus.KindThemeChanged, changeFor(m))
	if err != nil {
		t.log.Warn("failed to persist theme", zap.String("theme", string(m)), zap.Error(err))
		return fmt.Errorf("save theme: %w", err)
	}
	t.log.Debug("theme changed", zap.String("theme", string(m)), zap.String("reference", m.Reference()))
	return nil
}

func (t *Toggler) persist(m Mode) error {
	if t.configPath == "" {
		return nil
	}
	cfg, err := config.LoadOrEmpty(t.configPath)
	if err != nil {
		return err
	}
	cfg.Theme = string(m)
	return config.Save(t.configPath, cfg)
}
