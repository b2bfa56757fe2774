// Package showcase picks the pair of cat images shown at /cats.
package showcase
