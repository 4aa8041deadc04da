package otb

import (
	"strconv"
)

// Command describes one invocation of an OTB application: the application
// name plus an ordered mapping from flag name to string-formatted value.
// The flag vocabulary is the toolbox's own contract, so values are always
// carried in the exact textual form the launcher expects.
type Command struct {
	// App is the OTB application name, e.g. "Segmentation".
	App string
	// WorkDir is the working directory the application is run from.
	// Intermediate artifacts the toolbox drops land here.
	WorkDir string

	args []Arg
}

// Arg is a single flag/value pair.
type Arg struct {
	Key   string
	Value string
}

// NewCommand returns an empty command for the given application.
func NewCommand(app string) *Command {
	return &Command{App: app}
}

// Set assigns value to the flag named key. Setting an existing key
// replaces its value in place, preserving the original flag order.
func (c *Command) Set(key, value string) {
	for i := range c.args {
		if c.args[i].Key == key {
			c.args[i].Value = value
			return
		}
	}
	c.args = append(c.args, Arg{Key: key, Value: value})
}

// SetInt assigns an integer-valued flag.
func (c *Command) SetInt(key string, value int) {
	c.Set(key, strconv.Itoa(value))
}

// SetFloat assigns a float-valued flag using the shortest exact decimal form.
func (c *Command) SetFloat(key string, value float64) {
	c.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// SetBool assigns a boolean flag as the lowercase string "true" or "false",
// which is the form the toolbox launchers parse.
func (c *Command) SetBool(key string, value bool) {
	c.Set(key, strconv.FormatBool(value))
}

// Lookup returns the value assigned to key and whether it is present.
func (c *Command) Lookup(key string) (string, bool) {
	for _, a := range c.args {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Keys returns the flag names in assignment order.
func (c *Command) Keys() []string {
	keys := make([]string, len(c.args))
	for i, a := range c.args {
		keys[i] = a.Key
	}
	return keys
}

// Args returns a copy of the flag/value pairs in assignment order.
func (c *Command) Args() []Arg {
	out := make([]Arg, len(c.args))
	copy(out, c.args)
	return out
}

// CLIArgs renders the command as launcher arguments: each flag name
// prefixed with "-" followed by its value.
func (c *Command) CLIArgs() []string {
	out := make([]string, 0, len(c.args)*2)
	for _, a := range c.args {
		out = append(out, "-"+a.Key, a.Value)
	}
	return out
}
