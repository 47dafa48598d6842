package propagator

import "runtime"

//Options contains the options for the Hagedorn propagator.
type Options struct {
	cpus             int
	checkFinite      bool
	skipZeroCoupling bool
}

//DefaultOptions returns reasonable options: all logical CPUs for the
//assembly of the coupling matrix, and a check for non-finite values after
//every coupling step.
func DefaultOptions() *Options {
	r := new(Options)
	r.cpus = runtime.NumCPU()
	r.checkFinite = true
	r.skipZeroCoupling = false //so every step follows the same path.
	return r
}

//Returns the number of gorutines used to assemble the coupling
//matrix, and sets it to a new value, if given.
func (O *Options) Cpus(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.cpus = n[0]
	}
	return O.cpus
}

//Returns whether the coupling matrix and the coefficients are checked
//for NaN and Inf after each coupling step, and sets it to a new value, if given.
func (O *Options) CheckFinite(check ...bool) bool {
	if len(check) > 0 {
		O.checkFinite = check[0]
	}
	return O.checkFinite
}

//Returns whether the matrix exponential is skipped when the coupling
//matrix is exactly zero, and sets it to a new value, if given.
//The result is the same either way, up to rounding.
func (O *Options) SkipZeroCoupling(skip ...bool) bool {
	if len(skip) > 0 {
		O.skipZeroCoupling = skip[0]
	}
	return O.skipZeroCoupling
}
