// Package types defines the cart item entities, the KVStore interface that
// cart persistence writes through, configuration, and the standard error
// values shared by the Basket packages.
package types
