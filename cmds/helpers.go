package cmds

// Var defines name <value> and name. (reset to zero).
func Var[T any](name string, desc ...string) *T {
	var value T
	Define(name, describe(Func(func(v T) {
		value = v
	}), desc))
	Define(name+".", Func(func() {
		var zero T
		value = zero
	}))
	return &value
}

// Switch defines name (on) and !name (off).
func Switch(name string, desc ...string) *bool {
	var value bool
	Define(name, describe(Func(func() {
		value = true
	}), desc))
	Define("!"+name, Func(func() {
		value = false
	}))
	return &value
}

// Collect defines name <value>, appending on each use.
func Collect[T any](name string, desc ...string) *[]T {
	var values []T
	Define(name, describe(Func(func(v T) {
		values = append(values, v)
	}), desc))
	return &values
}

func describe(command *Command, desc []string) *Command {
	if len(desc) > 0 {
		command.Desc(desc[0])
	}
	return command
}
