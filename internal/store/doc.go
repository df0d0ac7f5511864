// Package store provides the card persistence layer for cardvault.
//
// The package defines the [Store] interface: durable CRUD for
// [model.CharacterCard] values keyed by ID. Every backend gives
// read-your-writes within a process and reports failures as
// [*PersistenceError], which matches [ErrPersistence] with errors.Is.
//
// # Backends
//
//   - [Memory]: synchronous map-backed store, nothing survives the process
//   - [File]: all cards as one JSON blob under a fixed key, rewritten atomically
//   - [Bolt]: a bbolt bucket keyed by card ID (default)
//   - [SQLite]: a SQLite table keyed by (collection, ID)
//
// Use [Open] to build the backend named by the configuration:
//
//	s, err := store.Open(cfg)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
// The storage key (bucket, blob key or collection) always comes from the
// configuration; nothing in this package holds process-wide state.
package store
