package shell

// Command is the parsed form of one input line. Exactly one of Empty,
// NotFound, External or BuiltIn.
type Command interface {
	isCommand()
}

// Empty is a blank line or a line that does nothing.
type Empty struct{}

// NotFound is a command name that matched no built-in and no executable.
type NotFound struct {
	Name string
}

// External is an executable resolved on the search path.
type External struct {
	Name string
	Path string
	Args []string
}

// BuiltIn wraps a command implemented by the shell itself.
type BuiltIn struct {
	Cmd BuiltInCommand
}

func (Empty) isCommand()    {}
func (NotFound) isCommand() {}
func (External) isCommand() {}
func (BuiltIn) isCommand()  {}

// BuiltInCommand is one of Exit, Echo or Type.
type BuiltInCommand interface {
	isBuiltIn()
}

type Exit struct {
	Code int
}

type Echo struct {
	Content string
}

// Type answers "what would run for Name".
type Type struct {
	Name string
	Kind CommandType
}

func (Exit) isBuiltIn() {}
func (Echo) isBuiltIn() {}
func (Type) isBuiltIn() {}

// CommandType is the resolution reported by the type built-in.
type CommandType interface {
	isCommandType()
}

type TypeBuiltIn struct{}

type TypeOther struct {
	Path string
}

type TypeInvalid struct{}

func (TypeBuiltIn) isCommandType() {}
func (TypeOther) isCommandType()   {}
func (TypeInvalid) isCommandType() {}

// builtin names, checked before any search path lookup
const (
	nameExit = "exit"
	nameEcho = "echo"
	nameType = "type"
)

var builtinNames = []string{nameExit, nameEcho, nameType}

// IsBuiltin reports whether name is handled by the shell itself.
func IsBuiltin(name string) bool {
	for _, b := range builtinNames {
		if b == name {
			return true
		}
	}
	return false
}

// ExitCode returns the status requested by an exit command, or 0.
func ExitCode(cmd Command) int {
	if b, ok := cmd.(BuiltIn); ok {
		if e, ok := b.Cmd.(Exit); ok {
			return e.Code
		}
	}
	return 0
}
