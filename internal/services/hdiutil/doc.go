// Package hdiutil mediates access to macOS hdiutil for writing license
// resources into UDIF disk images.
//
// The resource plist is streamed to `hdiutil udifrez` on file descriptor 3
// so nothing is staged on disk. Invocations are bounded by a timeout and
// failures are tagged with the services error markers.
package hdiutil
