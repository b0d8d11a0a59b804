// Package bloom tracks visited pages during chapter walks using Bloom filters.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Visited is a probabilistic set of page URLs already walked.
// False positives are possible; false negatives are not. A false
// positive ends a walk one page early rather than revisiting a page,
// which is the safe direction for politeness.
type Visited struct {
	f *bloom.BloomFilter
}

// NewVisited creates a visited set sized for n expected pages
// with the given false positive rate.
func NewVisited(n uint, fpRate float64) *Visited {
	return &Visited{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Mark records a page URL as visited.
// The fragment is stripped first - URLs differing only by fragment
// are the same page.
func (v *Visited) Mark(url string) {
	v.f.AddString(stripFragment(url))
}

// Seen returns true if the page URL might have been visited.
func (v *Visited) Seen(url string) bool {
	return v.f.TestString(stripFragment(url))
}

// EstimatedCount returns the approximate number of visited pages.
func (v *Visited) EstimatedCount() uint {
	return uint(v.f.ApproximatedSize())
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
