// Package session intercepts external commands for the duration of a test.
//
// A Session owns a private directory of launchers, one per mocked command
// name. Each launcher re-enters the dispatch entrypoint in record or replay
// mode against the session's fixture file, with the original search path
// restored so that recording can reach the real program.
//
// The host process environment is never modified. Children spawned through
// Environment, Executor or Command see the augmented search path; code that
// resolves commands through the process-wide PATH can opt in by exporting
// Environ itself (commandeertest does this with t.Setenv).
package session
