// Package theme persists the light/dark preference of the UI shell.
package theme

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dailypuzzles/internal/kv"
)

// Key is the KV key holding the preference.
const Key = "theme-preference"

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	Default = Dark
)

// Parse accepts exactly "light" or "dark".
func Parse(s string) (Theme, error) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("theme: unknown theme %q", s)
}

// Other returns the opposite theme.
func (t Theme) Other() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// Prefs reads and writes the stored theme.
type Prefs struct {
	kv kv.Store
}

func NewPrefs(store kv.Store) *Prefs { return &Prefs{kv: store} }

// Get returns the stored theme, or Default when absent or unrecognized.
func (p *Prefs) Get(ctx context.Context) (Theme, error) {
	raw, ok, err := p.kv.Get(ctx, Key)
	if err != nil {
		return Default, fmt.Errorf("theme: load: %w", err)
	}
	if !ok {
		return Default, nil
	}
	t, err := Parse(raw)
	if err != nil {
		log.Warn().Str("raw", raw).Msg("ignoring unknown theme preference")
		return Default, nil
	}
	return t, nil
}

// Set stores t.
func (p *Prefs) Set(ctx context.Context, t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}
	if err := p.kv.Set(ctx, Key, string(t)); err != nil {
		return fmt.Errorf("theme: save: %w", err)
	}
	return nil
}

// Toggle flips the stored theme and returns the new one.
func (p *Prefs) Toggle(ctx context.Context) (Theme, error) {
	cur, err := p.Get(ctx)
	if err != nil {
		return cur, err
	}
	next := cur.Other()
	return next, p.Set(ctx, next)
}
