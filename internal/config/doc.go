// Package config resolves the effective cardvault configuration.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. [model.DefaultConfig]
//  2. the INI file (default <DataDir>/cardvault.ini), sections [vault] and [image]
//  3. CARDVAULT_* environment variables
//
// Command-line flags are applied on top by the cmd package.
package config
