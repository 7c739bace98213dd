package dedupe

type options struct {
	capacityHint int
}

// Option configures a Deduper.
type Option func(*options)

// WithCapacityHint preallocates room for n keys. Values <= 0 are ignored.
func WithCapacityHint(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacityHint = n
		}
	}
}
