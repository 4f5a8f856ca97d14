// Package models defines the core domain models for the receipt splitter.
//
// # Models
//
//   - Receipt: one shared expense event (a bill) with people, items, tax and tip
//   - Person: someone on the receipt, identified by ID (names may repeat)
//   - Item: a purchased line with a price and zero or more responsible people
//
// # Design Principles
//
//  1. **IDs, not pointers**: an Item refers to people through a set of Person
//     IDs. Names are looked up on the Receipt when needed and never cached.
//  2. **Cascade on removal**: removing a Person also removes its ID from every
//     Item, so a Receipt never carries dangling references after a mutation.
//  3. **Lenient numeric input**: amounts typed as text that fail to parse
//     become 0 instead of surfacing an error.
//  4. **Snapshots**: Clone produces a deep copy; stores hand out clones so a
//     computation never sees a half-applied mutation.
package models
