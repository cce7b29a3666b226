// Package engine records and replays command invocations against a fixture file.
//
// Record spawns the real program, captures its output and exit status, and
// appends the result to the fixture. Replay looks the invocation up by exact
// binary name and arguments and never spawns anything. Dispatch is the front
// door used by the commandeer binary: it runs one of the two and reproduces
// the captured output and exit code.
//
// Every operation loads the fixture fresh from disk; nothing is cached between
// calls.
package engine
