// Package store holds the durable key-value backends a preference controller can
// persist to: an in-process map, the visitor's cookies, Redis and PostgreSQL. All
// of them report an absent key as sentinel.ErrNotFound.
package store
