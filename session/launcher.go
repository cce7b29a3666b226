package session

import (
	"fmt"
	"strings"

	"github.com/ruffel/commandeer"
)

// launcher holds everything a redirection artifact needs to re-enter the
// dispatch entrypoint.
type launcher struct {
	name       string
	mode       commandeer.Mode
	fixture    string
	searchPath string
	dispatcher Dispatcher
}

// fileName is the artifact's name inside the session directory.
func (l launcher) fileName(target commandeer.TargetOS) string {
	if target == commandeer.OSWindows {
		return l.name + ".cmd"
	}

	return l.name
}

func (l launcher) render(target commandeer.TargetOS) []byte {
	if target == commandeer.OSWindows {
		return l.renderCmd()
	}

	return l.renderPOSIX()
}

// renderPOSIX writes a sh script. PATH is reset before anything else runs
// so that neither the dispatcher nor the real program resolves back here.
func (l launcher) renderPOSIX() []byte {
	var b strings.Builder

	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "PATH=%s; export PATH\n", shellQuote(l.searchPath))

	for _, kv := range l.dispatcher.Env {
		k, v, _ := strings.Cut(kv, "=")
		fmt.Fprintf(&b, "%s=%s; export %s\n", k, shellQuote(v), k)
	}

	fmt.Fprintf(&b, "exec %s %s --file %s --command %s -- \"$@\"\n",
		shellQuote(l.dispatcher.Path), l.mode, shellQuote(l.fixture), shellQuote(l.name))

	return []byte(b.String())
}

// renderCmd writes a batch file for cmd.exe.
func (l launcher) renderCmd() []byte {
	var b strings.Builder

	b.WriteString("@echo off\r\n")
	b.WriteString("setlocal\r\n")
	fmt.Fprintf(&b, "set \"PATH=%s\"\r\n", batchEscape(l.searchPath))

	for _, kv := range l.dispatcher.Env {
		fmt.Fprintf(&b, "set \"%s\"\r\n", batchEscape(kv))
	}

	fmt.Fprintf(&b, "\"%s\" %s --file \"%s\" --command \"%s\" -- %%*\r\n",
		batchEscape(l.dispatcher.Path), l.mode, batchEscape(l.fixture), batchEscape(l.name))
	b.WriteString("exit /b %ERRORLEVEL%\r\n")

	return []byte(b.String())
}

// shellQuote wraps s in single quotes for sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// batchEscape doubles percent signs, which cmd.exe expands even inside quotes.
func batchEscape(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
