package jsonobj

import "github.com/vizee/urlparts/encoding/strbuf"

const hexDigits = "0123456789abcdef"

// AppendQuoted writes s to b as a JSON string literal.
func AppendQuoted(b *strbuf.Builder, s []byte) {
	appendQuoted(b, bytesView(s))
}

func AppendQuotedString(b *strbuf.Builder, s string) {
	appendQuoted(b, s)
}

func appendQuoted(b *strbuf.Builder, s string) {
	b.AppendByte('"')
	done := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		b.AppendString(s[done:i])
		switch c {
		case '"':
			b.AppendString(`\"`)
		case '\\':
			b.AppendString(`\\`)
		case '\b':
			b.AppendString(`\b`)
		case '\f':
			b.AppendString(`\f`)
		case '\n':
			b.AppendString(`\n`)
		case '\r':
			b.AppendString(`\r`)
		case '\t':
			b.AppendString(`\t`)
		default:
			b.AppendString(`\u00`)
			b.AppendByte(hexDigits[c>>4])
			b.AppendByte(hexDigits[c&0xf])
		}
		done = i + 1
	}
	b.AppendString(s[done:])
	b.AppendByte('"')
}
