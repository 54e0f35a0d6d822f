package naming

import (
	"path/filepath"
	"strings"
)

// BaseName returns the file name of htmlPath without its extension.
func BaseName(htmlPath string) string {
	name := filepath.Base(htmlPath)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// OutputPath builds the archive path for a saved page:
//
//	<dir of html>/<Sanitize(base)>_web_archive.7z
func OutputPath(htmlPath string) string {
	return filepath.Join(filepath.Dir(htmlPath), ArchiveName(BaseName(htmlPath)))
}
