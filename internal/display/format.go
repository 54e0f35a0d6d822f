package display

import (
	"fmt"
)

// FormatBytes returns a human-readable size with two decimals
// (e.g. "10.00 KB", "1.50 MB"). Units step by 1024.
func FormatBytes(bytes int64) string {
	size := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if size < 1024 && size > -1024 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.2f PB", size)
}

// FormatBytesWithSign prefixes with + or - for delta display (e.g. "- 1.20 MB").
func FormatBytesWithSign(bytes int64) string {
	sign := ""
	if bytes > 0 {
		sign = "+ "
	} else if bytes < 0 {
		sign = "- "
		bytes = -bytes
	}
	return sign + FormatBytes(bytes)
}

// FormatCRC renders a CRC32 as eight upper-case hex digits, the way 7z
// prints it in technical listings.
func FormatCRC(crc uint32) string {
	return fmt.Sprintf("%08X", crc)
}

// FormatRatio returns the archive size as a percentage of the source size
// (e.g. "42.5%"). A zero source size yields "n/a".
func FormatRatio(archive, source int64) string {
	if source <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(archive)*100/float64(source))
}
