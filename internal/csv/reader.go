package csv

import (
	"bytes"
	"strings"
)

// utf8BOM is added by some Windows editors and spreadsheet exports.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalize drops a leading BOM and replaces invalid UTF-8 sequences with '?'.
func normalize(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	return strings.ToValidUTF8(string(data), "?")
}
