package flatkey

// DefaultSeparator joins field steps in flat keys unless WithSeparator says
// otherwise.
const DefaultSeparator = "."

type options struct {
	sep string
}

type Option func(*options)

// WithSeparator sets the literal string joining field steps. It must be
// non-empty and must not contain the bracket and marker characters reserved
// by the key grammar.
func WithSeparator(sep string) Option {
	return func(o *options) { o.sep = sep }
}

func getOpts(opts ...Option) *options {
	o := &options{sep: DefaultSeparator}
	for _, f := range opts {
		f(o)
	}
	return o
}
