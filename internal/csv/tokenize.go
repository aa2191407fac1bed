package csv

import "strings"

// Quote toggles literal-separator mode inside a line.
const Quote = '"'

// DefaultSeparator is used when no separator is configured.
const DefaultSeparator byte = ','

// Tokenize splits one line into cells on sep.
//
// A separator between an odd and an even quote is cell content. Quotes are
// kept in the output and there is no doubled-quote escape. An unbalanced
// quote makes every later separator on the line literal. A line with N
// separators outside quotes always yields N+1 cells, the last one possibly
// empty.
func Tokenize(line string, sep byte) []string {
	cells := make([]string, 0, strings.Count(line, string(sep))+1)

	quoted := false
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case Quote:
			quoted = !quoted
		case sep:
			if quoted {
				continue
			}
			cells = append(cells, line[start:i])
			start = i + 1
		}
	}

	return append(cells, line[start:])
}

// splitHeader splits the header line on sep without quote handling.
func splitHeader(line string, sep byte) []string {
	return strings.Split(line, string(sep))
}
