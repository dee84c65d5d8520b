package query

import "strings"

// Placeholder is the token in a query template that stands for the data file.
const Placeholder = "CURRENT"

// BindTemplate replaces every standalone CURRENT token in template with
// reference and reports how many were replaced. Tokens inside string literals,
// quoted identifiers, comments, or longer identifiers (CURRENT_DATE) are left
// alone. A template without the token is returned verbatim.
func BindTemplate(template, reference string) (string, int) {
	var out strings.Builder
	out.Grow(len(template) + len(reference))

	replaced := 0
	i := 0
	for i < len(template) {
		c := template[i]
		switch {
		case c == '\'' || c == '"':
			end := quotedEnd(template, i, c, false)
			out.WriteString(template[i:end])
			i = end
		case c == '-' && strings.HasPrefix(template[i:], "--"):
			end := strings.IndexByte(template[i:], '\n')
			if end < 0 {
				end = len(template) - i
			}
			out.WriteString(template[i : i+end])
			i += end
		case c == '/' && strings.HasPrefix(template[i:], "/*"):
			end := strings.Index(template[i+2:], "*/")
			if end < 0 {
				end = len(template)
			} else {
				end = i + 2 + end + 2
			}
			out.WriteString(template[i:end])
			i = end
		case isIdentByte(c):
			start := i
			for i < len(template) && isIdentByte(template[i]) {
				i++
			}
			word := template[start:i]
			if (word == "E" || word == "e") && i < len(template) && template[i] == '\'' {
				end := quotedEnd(template, i, '\'', true)
				out.WriteString(template[start:end])
				i = end
				continue
			}
			if word == Placeholder && (start == 0 || template[start-1] != '.') {
				out.WriteString(reference)
				replaced++
				continue
			}
			out.WriteString(word)
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String(), replaced
}

// quotedEnd returns the index just past the quoted run starting at start.
// Doubled quote characters are escapes, and so are backslashes in E'...'
// strings.
func quotedEnd(s string, start int, quote byte, backslash bool) int {
	i := start + 1
	for i < len(s) {
		if backslash && s[i] == '\\' {
			i += 2
			continue
		}
		if s[i] == quote {
			if i+1 < len(s) && s[i+1] == quote {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return len(s)
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
