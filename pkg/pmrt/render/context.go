package render

// Context carries the registries and counters of one conversion. It must
// not be shared between conversions.
type Context struct {
	// Images is document-scoped and never reset.
	Images *ImageRegistry

	// scopes is the stack of open link-block scopes, innermost last.
	scopes []*LinkRegistry

	LinksReferenced int
	LinksInlined    int
	MissingTargets  int
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{Images: &ImageRegistry{}}
}

func (c *Context) push() *LinkRegistry {
	r := &LinkRegistry{}
	c.scopes = append(c.scopes, r)
	return r
}

func (c *Context) pop() {
	c.scopes[len(c.scopes)-1].Reset()
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// Links returns the registry of the innermost open scope, or nil outside
// any scope.
func (c *Context) Links() *LinkRegistry {
	if len(c.scopes) == 0 {
		return nil
	}
	return c.scopes[len(c.scopes)-1]
}
