// Package naming derives archive file names from saved web pages.
//
// Sanitize maps an arbitrary page base name onto a conservative ASCII
// alphabet so the archive name is portable across filesystems. OutputPath
// places the archive next to its HTML file, and CollisionResolver keeps two
// pages that sanitize to the same name from sharing one archive within a
// run.
package naming
