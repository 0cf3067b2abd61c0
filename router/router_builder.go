package router

// RouterOption is a functional option for configuring a Router.
type RouterOption func(*routerImpl)

// WithInitialScreen sets the screen shown before any navigation. Unknown screens are ignored.
//
// Parameters:
//   - s: the first screen
//
// Returns:
//   - RouterOption: functional option to set the initial screen
func WithInitialScreen(s Screen) RouterOption {
	return func(r *routerImpl) {
		if s.Valid() {
			r.current = s
		}
	}
}

// WithMaxHistory caps the back stack; the oldest entries are dropped first.
//
// Parameters:
//   - n: maximum history length, raised to 1 if smaller
//
// Returns:
//   - RouterOption: functional option to set the history cap
func WithMaxHistory(n int) RouterOption {
	return func(r *routerImpl) {
		r.maxHistory = max(n, 1)
	}
}
