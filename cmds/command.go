package cmds

import (
	"fmt"
	"reflect"
	"strings"
)

// Command is a word on the command line. It consumes one following word per parameter of Func.
// Pointer parameters are optional.
type Command struct {
	Func        reflect.Value
	Description string
	Aliases     []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

// Params describes the consumed words for usage, like "<string> [int]".
func (c *Command) Params() string {
	t := c.Func.Type()
	parts := make([]string, 0, t.NumIn())
	for i := range t.NumIn() {
		in := t.In(i)
		if in.Kind() == reflect.Pointer {
			parts = append(parts, "["+in.Elem().Kind().String()+"]")
		} else {
			parts = append(parts, "<"+in.Kind().String()+">")
		}
	}
	return strings.Join(parts, " ")
}

var errorType = reflect.TypeFor[error]()

func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)

	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}

	fnType := fnValue.Type()
	if fnType.NumOut() >= 2 {
		panic(fmt.Errorf("must return 0 or 1 value"))
	}
	if fnType.NumOut() == 1 && fnType.Out(0) != errorType {
		panic(fmt.Errorf("must return error"))
	}
	for i := range fnType.NumIn() {
		in := fnType.In(i)
		if in.Kind() == reflect.Pointer {
			in = in.Elem()
		}
		if !supportedKinds[in.Kind()] {
			panic(fmt.Errorf("unsupported parameter type: %v", in))
		}
	}

	return &Command{
		Func: fnValue,
	}
}
