//go:build !intervaldebug

package intervalset

// debug enables the invariant checks of the canonical store. Build with
// -tags intervaldebug to turn them on.
const debug = false
