package funcopt

type (
	// O is the interface implemented by functional options.
	O interface {
		apply(t interface{}) error
	}

	// F wraps a function so it can be used as a functional option.
	F func(interface{}) error
)

func (f F) apply(t interface{}) error {
	return f(t)
}

// Apply loops over the functional options and executes them on the
// configurable object. The first error stops the loop.
func Apply(t interface{}, opts ...O) error {
	for _, opt := range opts {
		if err := opt.apply(t); err != nil {
			return err
		}
	}
	return nil
}
