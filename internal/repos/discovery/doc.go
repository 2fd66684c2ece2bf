// Package discovery walks directory trees looking for repository markers.
package discovery
