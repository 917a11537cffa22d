// Package frontmatter splits a leading delimited metadata block from a
// Markdown document.
package frontmatter

import "bytes"

// DefaultDelimiter marks presentation front matter.
const DefaultDelimiter = "%%%"

// Split separates a leading front matter block from src. The block starts
// on the first line when that line consists of exactly delimiter, and runs
// to the next line that does so again. Split returns the block body and the
// remaining document. Without an opening delimiter, or with an unterminated
// block, meta is nil and body is src unchanged.
func Split(src []byte, delimiter string) (meta, body []byte) {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	delim := []byte(delimiter)

	line, next, ok := nextLine(src, 0)
	if !ok || !bytes.Equal(bytes.TrimSpace(trimBOM(line)), delim) {
		return nil, src
	}
	start := next
	for pos := start; pos <= len(src); {
		line, next, ok = nextLine(src, pos)
		if !ok {
			break
		}
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return src[start:pos], src[next:]
		}
		pos = next
	}
	return nil, src
}

// nextLine returns the line starting at offset start without its
// terminator, and the offset of the following line.
func nextLine(src []byte, start int) (line []byte, next int, ok bool) {
	if start >= len(src) {
		return nil, 0, false
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src), true
	}
	end := start + i
	return trimCR(src[start:end]), end + 1, true
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
