// Package terminal owns the tcell screen and turns its event stream into
// per-frame input samples.
//
// Terminals report key presses and auto-repeats but no releases, so a key
// counts as held for a short window after its last event. Mouse motion is
// accumulated between polls and reported as a delta.
package terminal
