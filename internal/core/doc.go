// Package core provides the business logic layer for cardvault.
//
// This package contains all card operations separated from UI concerns.
// Functions in this package validate input, resolve photos through the
// image normalizer and orchestrate the record store and archive codec.
//
// # Design Principles
//
//   - Functions return errors instead of printing to stdout/stderr
//   - All persistence goes through a [store.Store]
//   - UI-specific logic belongs in the cli and cmd packages, not here
//
// # Searching
//
// [SearchCards] is a pure function over a slice of cards. It filters by a
// case-folded substring of the name or any tag, restricts to an exact tag
// and orders by creation time or by locale-aware collation of the name.
// [Repository.Search] loads the cards from the store and delegates to it.
package core
