package strbuf

import "unsafe"

// asString views s as a string. s must not be written afterwards.
func asString(s []byte) string {
	if len(s) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(s), len(s))
}
