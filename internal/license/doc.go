// Package license assembles per-language license content.
//
// An Assembler resolves the languages of every body and label entry in a
// Specification, loads and encodes each body once for all of its languages,
// packs a label resource per language (explicit or predefined), merges
// languages whose content is byte-identical and picks the default language.
// Independent loads run concurrently; failures are collected and reported
// together once every load has finished.
package license
