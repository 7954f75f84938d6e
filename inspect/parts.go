package inspect

import (
	"io"
	"net/url"
	"strings"

	"github.com/vizee/urlparts/encoding/jsonobj"
	"github.com/vizee/urlparts/encoding/strbuf"
	"github.com/vizee/urlparts/log"
)

const decodedSuffix = "_decoded"

// Part is one component of a parsed URL. Raw and Decoded are nil when the
// URL has no such component.
type Part struct {
	Name       string
	Label      string
	Raw        *string
	Decoded    *string
	HasDecoded bool
	DecodeErr  error
}

type Result struct {
	URL *url.URL

	// userinfo as written in the input, before any unescaping.
	userinfo string
}

// schemes whose userinfo carries login options after a ';'.
var optionSchemes = map[string]bool{
	"imap":  true,
	"imaps": true,
	"pop3":  true,
	"pop3s": true,
	"smtp":  true,
	"smtps": true,
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// splitZone separates an IPv6 zone from a hostname as returned by
// url.URL.Hostname.
func splitZone(hostname string) (host string, zone string, ok bool) {
	if !strings.Contains(hostname, ":") {
		return hostname, "", false
	}
	i := strings.IndexByte(hostname, '%')
	if i < 0 {
		return hostname, "", false
	}
	return hostname[:i], hostname[i+1:], true
}

func newPart(name string, label string, raw *string, decode bool) Part {
	p := Part{
		Name:       name,
		Label:      label,
		Raw:        raw,
		HasDecoded: decode,
	}
	if decode && raw != nil {
		d, err := url.PathUnescape(*raw)
		if err != nil {
			p.DecodeErr = err
		} else {
			p.Decoded = &d
		}
	}
	return p
}

// Parts returns the components of the URL in reporting order: href,
// scheme, user, password, options, host, port, path, query, fragment and
// zone_id.
func (r *Result) Parts() []Part {
	u := r.URL

	var user, password, options *string
	if u.User != nil {
		userinfo := r.userinfo
		if userinfo == "" {
			userinfo = u.User.String()
		}
		// Separators are only recognized unescaped, so an encoded ';' or ':'
		// stays part of the user.
		name, pw, hasPassword := strings.Cut(userinfo, ":")
		if optionSchemes[strings.ToLower(u.Scheme)] {
			if before, after, ok := strings.Cut(name, ";"); ok {
				name = before
				options = &after
			}
		}
		user = &name
		if hasPassword {
			password = &pw
		}
	}

	var host, zone *string
	if hostname := u.Hostname(); hostname != "" {
		h, z, ok := splitZone(hostname)
		if strings.Contains(h, ":") {
			h = "[" + h + "]"
		}
		host = &h
		if ok {
			zone = &z
		}
	}

	path := u.Opaque
	if path == "" {
		path = u.EscapedPath()
	}

	var query *string
	if u.RawQuery != "" || u.ForceQuery {
		q := u.RawQuery
		query = &q
	}

	var fragment *string
	if u.Fragment != "" {
		fragment = optional(u.EscapedFragment())
	}

	href := u.String()
	return []Part{
		newPart("href", "roundtripped", &href, false),
		newPart("scheme", "scheme", optional(u.Scheme), false),
		newPart("user", "user", user, true),
		newPart("password", "password", password, true),
		newPart("options", "options", options, true),
		newPart("host", "host", host, true),
		newPart("port", "port", optional(u.Port()), false),
		newPart("path", "path", &path, true),
		newPart("query", "query", query, true),
		newPart("fragment", "fragment", fragment, true),
		newPart("zone_id", "zone id", zone, true),
	}
}

func (r *Result) JSON() string {
	return EncodeJSON(r.Parts())
}

func decodedKey(name string) string {
	b := strbuf.New(len(name) + len(decodedSuffix) + 1)
	b.AppendString(name)
	b.AppendString(decodedSuffix)
	return b.ReleaseString()
}

// EncodeJSON renders parts as a flat JSON object. Every part is followed by
// its "<name>_decoded" counterpart when it has one; a counterpart that failed
// to decode is logged and left out.
func EncodeJSON(parts []Part) string {
	o := jsonobj.New()
	for i := range parts {
		p := &parts[i]
		o.AddOptional(p.Name, p.Raw)
		if !p.HasDecoded {
			continue
		}
		if p.DecodeErr != nil {
			log.Errorf("Failed to get %s: %v", p.Label, p.DecodeErr)
			continue
		}
		o.AddOptional(decodedKey(p.Name), p.Decoded)
	}
	return o.Finalize()
}

func appendValue(b *strbuf.Builder, s *string) {
	if s == nil {
		b.AppendString("(null)")
		return
	}
	b.AppendByte('"')
	b.AppendString(*s)
	b.AppendByte('"')
}

// WriteText writes one `label: "raw" (decoded: "decoded")` line per part.
// Values are quoted but not escaped and missing ones print as (null).
func WriteText(w io.Writer, parts []Part) error {
	var b strbuf.Builder
	for i := range parts {
		p := &parts[i]
		b.AppendString(p.Label)
		b.AppendString(": ")
		appendValue(&b, p.Raw)
		if p.HasDecoded {
			if p.DecodeErr != nil {
				log.Errorf("Failed to get %s: %v", p.Label, p.DecodeErr)
			} else {
				b.AppendString(" (decoded: ")
				appendValue(&b, p.Decoded)
				b.AppendByte(')')
			}
		}
		b.AppendByte('\n')
	}
	_, err := w.Write(b.Bytes())
	return err
}
