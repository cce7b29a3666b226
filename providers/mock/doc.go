// Package mock provides a testify/mock implementation of commandeer.Environment.
//
// It lets code built on the Executor, such as the recorder, be tested without
// spawning processes:
//
//	env := mock.New()
//	env.OnRun("git", []string{"status"}, 0, "On branch main\n", "")
//	// pass env to the code under test
package mock
