package format

import "bytes"

const FrontmatterDelim = "---"

// SplitFrontmatter splits src into the frontmatter between the leading pair
// of "---" lines and the rest of the document. fm keeps its trailing newline.
// ok is false when src does not start with a complete frontmatter block.
func SplitFrontmatter(src []byte) (fm, body []byte, ok bool) {
	start := 0
	switch {
	case bytes.HasPrefix(src, []byte(FrontmatterDelim+"\n")):
		start = len(FrontmatterDelim) + 1
	case bytes.HasPrefix(src, []byte(FrontmatterDelim+"\r\n")):
		start = len(FrontmatterDelim) + 2
	default:
		return nil, src, false
	}

	for pos := start; pos <= len(src); {
		next := len(src)
		line := src[pos:]
		nl := bytes.IndexByte(line, '\n')
		if nl >= 0 {
			line = line[:nl]
			next = pos + nl + 1
		}
		if string(bytes.TrimRight(line, "\r")) == FrontmatterDelim {
			return src[start:pos], src[next:], true
		}
		if nl < 0 {
			break
		}
		pos = next
	}
	return nil, src, false
}
