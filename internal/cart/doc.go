// Package cart holds the shopping cart for one application session.
//
// A Store keeps the ordered list of cart items in memory and mirrors the
// whole list to a types.KVStore under ProductsKey after every mutation.
// Mutations return as soon as the in-memory list is updated; a background
// writer owned by the Store performs the write, logs failures, and reports
// them from Flush and Close.
//
// Callers reach the Store through a context installed by WithStore or
// Provider.Mount. Using the package helpers on a context without a store
// returns types.ErrNoProvider.
package cart
