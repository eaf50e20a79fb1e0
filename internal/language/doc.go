// Package language holds the catalog of classic installer localizations.
//
// Each entry carries the region ID the installer keys its LPic mapping on,
// the tags users write in license specifications, the legacy charsets the
// installer decodes resources with, and an optional predefined label set.
package language
