package raster

// RasterizerOption is a functional option for configuring a rasterizerImpl.
type RasterizerOption func(r *rasterizerImpl)

// WithWorkers sets how many bands are rendered concurrently. Values below 1 are treated as 1.
//
// Parameters:
//   - n: number of band workers
//
// Returns:
//   - RasterizerOption: option function to apply
func WithWorkers(n int) RasterizerOption {
	return func(r *rasterizerImpl) {
		r.workers = max(n, 1)
	}
}
