package cache

import (
	"github.com/mhorvat/vjezbajmo-api/internal/domain"
)

// DefaultTheme is the key segment used when a request carries no theme.
const DefaultTheme = "default"

// Key builds the deterministic cache key for one pool of interchangeable
// exercise sets. Theme text is case-preserving and never normalized; a nil
// theme maps to DefaultTheme, so Key(t, l, nil) == Key(t, l, "default").
func Key(exerciseType domain.ExerciseType, cefrLevel domain.CefrLevel, theme *string) string {
	t := DefaultTheme
	if theme != nil && *theme != "" {
		t = *theme
	}
	return string(exerciseType) + ":" + string(cefrLevel) + ":" + t
}
