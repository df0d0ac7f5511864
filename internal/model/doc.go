// Package model defines the data structures used throughout cardvault.
//
// # CharacterCard
//
// The [CharacterCard] struct is the only persisted entity:
//
//	type CharacterCard struct {
//	    ID        string   // Unique identifier (UUID), storage key
//	    Name      string   // Required display label
//	    Photo     string   // Empty, remote URL or data URI
//	    Tags      []string // Free-form labels
//	    CreatedAt int64    // Epoch milliseconds, immutable
//	    ...                // Optional free-form attributes and notes
//	}
//
// [Fields] is the mutable subset used by create and update flows.
//
// # Config
//
// The [Config] struct holds application configuration:
//
//	type Config struct {
//	    DataDir    string // Directory holding the database file
//	    Backend    string // bolt, sqlite, json or memory
//	    StorageKey string // Bucket, table or blob key holding the cards
//	    ...
//	}
package model
