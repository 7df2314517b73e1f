// Package dist implements the normal, gamma, and noncentral chi-squared
// distributions: densities, cumulative distributions, raw or central
// moments, and random sampling where a standard generator exists.
package dist

import (
	"sync"

	"golang.org/x/exp/rand"
)

// rngPool hands out independent generator instances so concurrent samplers
// never share a source.
var rngPool = sync.Pool{
	New: func() interface{} {
		return rand.New(rand.NewSource(uint64(rand.Int63())))
	},
}
