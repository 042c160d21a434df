// entitlement.go - Gating collaborator consulted before activation

package main

// EntitlementChecker answers whether a preset may be played. Supplied by an
// external entitlement service; the engine only calls the predicate and
// refuses activation with ErrNotEntitled when it returns false.
type EntitlementChecker interface {
	CanPlay(p *Preset) bool
}

// EntitlementFunc adapts a plain predicate to EntitlementChecker.
type EntitlementFunc func(*Preset) bool

func (f EntitlementFunc) CanPlay(p *Preset) bool { return f(p) }

// AllowAll plays everything. The engine's default.
var AllowAll = EntitlementFunc(func(*Preset) bool { return true })

// FreeTier plays everything not marked gated.
var FreeTier = EntitlementFunc(func(p *Preset) bool { return !p.IsGated })
