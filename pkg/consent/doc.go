// Package consent implements the capability-style consent gate evaluated
// before every inference call.
//
// The gate is a single-operation interface: IsGranted(purpose, subject).
// A false answer is a normal denial; an error is an infrastructure failure
// of the store itself. The serving layer maps both to the same NoConsent
// outcome and never runs routing or engines after either.
//
// Three implementations cover the closed set of deployments: AllowAll (the
// default), StaticStore (in-memory grants for tests and embedding), and
// FileStore (YAML rules with optional fsnotify hot-reload).
package consent
