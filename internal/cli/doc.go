// Package cli implements the mathd command line: serve, tools and call.
package cli
