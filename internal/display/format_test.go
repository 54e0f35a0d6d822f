package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0.00 B"},
		{"small bytes", 512, "512.00 B"},
		{"exactly 1 KB", 1024, "1.00 KB"},
		{"1.5 KB", 1536, "1.50 KB"},
		{"ten KB", 10240, "10.00 KB"},
		{"1 MB", 1024 * 1024, "1.00 MB"},
		{"1 GB", 1024 * 1024 * 1024, "1.00 GB"},
		{"700 MB", 734003200, "700.00 MB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.bytes))
		})
	}
}

func TestFormatBytesWithSign(t *testing.T) {
	assert.Equal(t, "+ 1.00 MB", FormatBytesWithSign(1024*1024))
	assert.Equal(t, "- 1.00 MB", FormatBytesWithSign(-1024*1024))
	assert.Equal(t, "0.00 B", FormatBytesWithSign(0))
}

func TestFormatCRC(t *testing.T) {
	assert.Equal(t, "0000ABCD", FormatCRC(0xABCD))
	assert.Equal(t, "CBF43926", FormatCRC(0xCBF43926))
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "50.0%", FormatRatio(50, 100))
	assert.Equal(t, "n/a", FormatRatio(10, 0))
}
