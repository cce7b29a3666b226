// Package local implements commandeer.Environment for the local operating system.
//
// It wraps os/exec and adds one thing the standard library does not offer: a
// search path that applies only to the children it spawns. Command names are
// resolved against that path and the same value is exported as PATH to the
// child, so the parent process environment is never modified.
//
// Usage:
//
//	env, _ := local.New(local.WithSearchPath(dir + ":" + os.Getenv("PATH")))
//	res, _ := commandeer.NewExecutor(env).RunBuffered(ctx, commandeer.NewCommand("git", "status"))
package local
