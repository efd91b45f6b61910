package naming

import "unicode/utf8"

// ScaledName inserts token into name after the first width characters:
//
//	ScaledName("0001.png", "x2", 4) == "0001x2.png"
//
// Names shorter than width get the token appended ("ab" -> "abx2"); names
// between width and the extension are split mid-extension ("ab.png" ->
// "ab.px2ng"). Neither case is an error; see [HasPrefix] for callers that
// want to reject them.
//
// Width counts code points; each byte of an invalid UTF-8 sequence counts as
// one, and the bytes of name are never altered.
func ScaledName(name, token string, width int) string {
	i := 0
	for n := 0; n < width && i < len(name); n++ {
		_, size := utf8.DecodeRuneInString(name[i:])
		i += size
	}
	return name[:i] + token + name[i:]
}

// HasPrefix reports whether name has at least width characters before its
// first dot, i.e. whether [ScaledName] lands the token after a complete id.
func HasPrefix(name string, width int) bool {
	n := 0
	for _, c := range name {
		if c == '.' {
			break
		}
		n++
	}
	return n >= width
}
