package commandeer

// Builder assembles a Command step by step.
//
//	cmd := commandeer.Cmd("git").Args("status", "--short").Build()
type Builder struct {
	cmd *Command
}

// Cmd starts a Builder for the named program.
func Cmd(binary string) *Builder {
	return &Builder{cmd: &Command{Cmd: binary}}
}

// Args appends arguments verbatim, in order.
func (b *Builder) Args(args ...string) *Builder {
	b.cmd.Args = append(b.cmd.Args, args...)

	return b
}

// Build returns the assembled Command.
func (b *Builder) Build() *Command {
	return b.cmd
}
