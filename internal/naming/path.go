package naming

import "strings"

// Join appends elems to root with "/" separators. Trailing slashes on root
// are dropped; elems are used verbatim.
//
//	Join("/data/DIV2K/", "DIV2K_train_HR", "0001.png") == "/data/DIV2K/DIV2K_train_HR/0001.png"
//	Join("s3://bucket/sr", "Set5", "original")        == "s3://bucket/sr/Set5/original"
func Join(root string, elems ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(root, "/"))
	for _, e := range elems {
		b.WriteByte('/')
		b.WriteString(e)
	}
	return b.String()
}
