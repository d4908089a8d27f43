package dispatch

// Captures holds the bindings extracted from one routing pass: a mapping
// from capture name to the matched path segment, plus the wildcard
// remainder when the matched pattern ended in a wildcard.
//
// A Context stacks one Captures per routing pass, so a nested dispatcher's
// bindings shadow the outer dispatcher's bindings of the same name.
type Captures struct {
	params      map[string]string
	wildcard    string
	hasWildcard bool
}

// Get returns the value bound to name, if any.
func (c Captures) Get(name string) (string, bool) {
	v, ok := c.params[name]
	return v, ok
}

// Wildcard returns the remainder matched by a trailing wildcard segment.
// The remainder is empty, but present, when the wildcard matched zero
// segments. It is absent when the matched pattern had no wildcard.
func (c Captures) Wildcard() (string, bool) {
	return c.wildcard, c.hasWildcard
}

func (c *Captures) bind(name, value string) {
	if c.params == nil {
		c.params = make(map[string]string)
	}
	c.params[name] = value
}
