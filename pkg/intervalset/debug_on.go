//go:build intervaldebug

package intervalset

const debug = true
