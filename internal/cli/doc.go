// Package cli provides the terminal user interface components for cardvault.
//
// The package uses [Bubbletea] for building interactive terminal UIs and
// [Lipgloss] for styling. All UI components follow the standard Bubbletea
// Model-View-Update (MVU) architecture.
//
// # Components
//
//   - CardList: filterable list of cards; "v" switches between the
//     name-only and name-photo views, enter selects a card
//   - CardForm: form for creating or editing a card
//
// Components never touch the store. They receive cards and return the
// user's choice; the cmd package performs the operation through
// core.Repository.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
