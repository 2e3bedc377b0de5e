package tenant

// Context is the per-request tenant binding. It is created by the resolver
// middleware, threaded through the request context, and never persisted.
// Principal fields are set only when the request carried a valid credential.
type Context struct {
	Slug          string
	SchemaName    string
	CompanyName   string
	Currency      string
	Locale        string
	IsActive      bool
	PrincipalID   string
	PrincipalRole string
}

// Authenticated reports whether the request carried a valid credential for
// this tenant.
func (c *Context) Authenticated() bool {
	return c != nil && c.PrincipalID != ""
}
