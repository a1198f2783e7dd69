// Package roster holds the known-player index and the name resolution
// policy that maps free-text input to exactly one roster entry.
package roster

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/veiga/killer/internal/domain/model"
	"github.com/veiga/killer/pkg/metrics"
)

// stripMarks removes combining diacritical marks after NFD decomposition,
// so "Léa" and "Lea" normalize to the same form for any locale.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize returns the fuzzy-match form of a name: case-folded,
// accent-stripped, internal whitespace collapsed, ends trimmed.
func Normalize(s string) string {
	s = strings.ToLower(s)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	return strings.Join(strings.Fields(s), " ")
}

// Index provides exact and normalized lookups over the loaded roster.
// Load replaces the whole index atomically; lookups between loads see
// either the old roster or the new one, never a mix.
type Index struct {
	mu       sync.RWMutex
	players  []model.Player
	byExact  map[string]model.Player
	byNormal map[string][]model.Player
}

// New creates an empty index. Resolve against an empty index always fails.
func New() *Index {
	return &Index{
		byExact:  make(map[string]model.Player),
		byNormal: make(map[string][]model.Player),
	}
}

// Load rebuilds both lookup tables from the given players and swaps them in.
func (i *Index) Load(players []model.Player) {
	list := make([]model.Player, 0, len(players))
	exact := make(map[string]model.Player, len(players))
	normal := make(map[string][]model.Player, len(players))

	for _, p := range players {
		if p.Display == "" {
			continue
		}
		list = append(list, p)
		exact[p.Display] = p
		n := Normalize(p.Display)
		normal[n] = append(normal[n], p)
	}

	i.mu.Lock()
	i.players = list
	i.byExact = exact
	i.byNormal = normal
	i.mu.Unlock()

	metrics.UpdateRosterSize(len(list))
}

// Players returns a copy of the loaded roster.
func (i *Index) Players() []model.Player {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]model.Player, len(i.players))
	copy(out, i.players)
	return out
}

// Len returns the number of loaded players.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.players)
}

// LookupExact returns the player whose Display equals text byte-for-byte.
func (i *Index) LookupExact(text string) (model.Player, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	p, ok := i.byExact[text]
	return p, ok
}

// LookupNormalized returns a player only when exactly one roster entry
// normalizes to the same form as text. Zero or multiple candidates
// report no match; ambiguity is never silently resolved.
func (i *Index) LookupNormalized(text string) (model.Player, bool) {
	n := Normalize(text)
	if n == "" {
		return model.Player{}, false
	}
	i.mu.RLock()
	defer i.mu.RUnlock()
	candidates := i.byNormal[n]
	if len(candidates) != 1 {
		return model.Player{}, false
	}
	return candidates[0], true
}

// Resolve maps free-text input to exactly one roster entry.
// Policy, in order: trim (empty fails), exact match, unique normalized
// match. Free-text input is never accepted as a fuzzy best guess;
// ambiguous normalized input fails with ErrAmbiguous.
func (i *Index) Resolve(input string) (model.Player, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		metrics.RecordResolution("empty")
		return model.Player{}, ErrNoMatch
	}

	if p, ok := i.LookupExact(raw); ok {
		metrics.RecordResolution("exact")
		return p, nil
	}

	n := Normalize(raw)
	i.mu.RLock()
	candidates := i.byNormal[n]
	i.mu.RUnlock()

	switch len(candidates) {
	case 1:
		metrics.RecordResolution("normalized")
		return candidates[0], nil
	case 0:
		metrics.RecordResolution("miss")
		return model.Player{}, ErrNoMatch
	default:
		metrics.RecordResolution("ambiguous")
		return model.Player{}, ErrAmbiguous
	}
}
