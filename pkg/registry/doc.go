// Package registry provides a generic, type-safe registry that keeps
// items in registration order. It backs the renderer registry, where the
// registration order of the output formats is the canonical rendering order.
package registry
