// Package main hosts the dmg-license CLI entrypoint and command graph.
//
// The Cobra command tree loads a license specification, assembles the
// per-language license resources, and either prints the resulting resource
// plist or merges it into a disk image through hdiutil. Configuration
// resolution, logging setup, and exit-code mapping live here so subcommands
// only deal with their own flags and output.
//
// Keep this package thin: assembly, encoding, and tool invocation belong in
// the internal packages.
package main
