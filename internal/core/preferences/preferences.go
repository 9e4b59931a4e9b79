// Package preferences stores presentation settings that outlive one run.
package preferences

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"weatherview.app/internal/models"
	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

const (
	WindowBoundsKey = "window.bounds"
	ForecastSiteKey = "forecast.site"
)

// MaxWindowDimension bounds restored window sizes; larger stored values are ignored.
const MaxWindowDimension = 5000

// WindowBounds is the last window position and size
type WindowBounds struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (b WindowBounds) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", b.X, b.Y, b.Width, b.Height)
}

// ParseWindowBounds parses "x,y,width,height"
func ParseWindowBounds(s string) (WindowBounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return WindowBounds{}, errors.NewValidationError(fmt.Sprintf("window bounds %q must have four parts", s))
	}

	values := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return WindowBounds{}, errors.NewValidationError(fmt.Sprintf("window bounds %q: %q is not an integer", s, part))
		}
		values[i] = v
	}

	b := WindowBounds{X: values[0], Y: values[1], Width: values[2], Height: values[3]}
	if b.Width <= 0 || b.Height <= 0 {
		return WindowBounds{}, errors.NewValidationError(fmt.Sprintf("window bounds %q has an empty size", s))
	}
	if b.Width > MaxWindowDimension || b.Height > MaxWindowDimension {
		return WindowBounds{}, errors.NewValidationError(fmt.Sprintf("window bounds %q exceed %d", s, MaxWindowDimension))
	}
	return b, nil
}

// Preferences reads and writes settings best-effort: failures are logged, never returned.
type Preferences struct {
	store  ports.PreferenceStore
	logger ports.Logger
}

func New(store ports.PreferenceStore, logger ports.Logger) *Preferences {
	return &Preferences{store: store, logger: logger}
}

// LoadWindowBounds returns the stored bounds. The boolean is false when nothing usable is stored.
func (p *Preferences) LoadWindowBounds(ctx context.Context) (WindowBounds, bool) {
	raw, ok := p.get(ctx, WindowBoundsKey)
	if !ok {
		return WindowBounds{}, false
	}

	b, err := ParseWindowBounds(raw)
	if err != nil {
		p.logger.Warn("Ignoring stored window bounds", ports.F("error", err.Error()))
		return WindowBounds{}, false
	}
	return b, true
}

func (p *Preferences) SaveWindowBounds(ctx context.Context, b WindowBounds) {
	p.put(ctx, WindowBoundsKey, b.String())
}

// LoadForecastSite returns the last selected forecast provider
func (p *Preferences) LoadForecastSite(ctx context.Context) (models.ForecastSite, bool) {
	raw, ok := p.get(ctx, ForecastSiteKey)
	if !ok {
		return "", false
	}

	site, err := models.ParseForecastSite(raw)
	if err != nil {
		p.logger.Warn("Ignoring stored forecast site", ports.F("error", err.Error()))
		return "", false
	}
	return site, true
}

func (p *Preferences) SaveForecastSite(ctx context.Context, site models.ForecastSite) {
	p.put(ctx, ForecastSiteKey, site.String())
}

func (p *Preferences) get(ctx context.Context, key string) (string, bool) {
	raw, found, err := p.store.Get(ctx, key)
	if err != nil {
		p.logger.Warn("Failed to read preference", ports.F("key", key), ports.F("error", err.Error()))
		return "", false
	}
	return raw, found
}

func (p *Preferences) put(ctx context.Context, key, value string) {
	if err := p.store.Put(ctx, key, value); err != nil {
		p.logger.Warn("Failed to write preference", ports.F("key", key), ports.F("error", err.Error()))
	}
}
