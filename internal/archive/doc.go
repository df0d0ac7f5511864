// Package archive implements the card import/export format: a UTF-8 JSON
// array of cards, pretty-printed with two-space indentation.
//
// Import defaults to merge semantics ([ModeMerge]): cards are written by
// ID, overwriting matches and adding new IDs, never deleting cards missing
// from the file. [ModeReplace] is the explicit alternative that also deletes
// stored cards absent from the file.
package archive
