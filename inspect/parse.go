// Package inspect decomposes URLs into the named components reported by
// urlparts, using net/url as the parsing engine.
package inspect

import (
	"net/url"
	"runtime"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/vizee/urlparts/encoding/strbuf"
	"github.com/vizee/urlparts/log"
	"golang.org/x/net/idna"
)

type Options struct {
	// Base is resolved against before the input when non-empty.
	Base string
	// Encode percent-encodes spaces, control bytes and non-ASCII bytes of
	// the inputs before parsing.
	Encode bool
	// IDNA converts internationalized hostnames to their ASCII form.
	IDNA bool
}

// EngineVersion is the version of the URL parser in use, which is the Go
// release the binary was built with.
func EngineVersion() string {
	return strings.TrimPrefix(runtime.Version(), "go")
}

type Parser struct {
	opts         Options
	base         *url.URL
	baseUserinfo string
}

func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// parse also returns the userinfo of s as written, since url.URL only keeps
// it decoded.
func (p *Parser) parse(s string) (*url.URL, string, error) {
	if p.opts.Encode {
		s = encodeInput(s)
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, "", err
	}
	return u, rawUserinfo(s, u), nil
}

// SetBase parses s as the URL later inputs are resolved against.
func (p *Parser) SetBase(s string) error {
	u, userinfo, err := p.parse(s)
	if err != nil {
		return errors.Wrap(err, "parse base URL")
	}
	log.Debugf("base %q parsed as %q", s, u.String())
	p.base = u
	p.baseUserinfo = userinfo
	return nil
}

func (p *Parser) Parse(s string) (*Result, error) {
	u, userinfo, err := p.parse(s)
	if err != nil {
		return nil, errors.Wrap(err, "parse URL")
	}
	if p.base != nil {
		// The authority comes from the base unless the reference has its own.
		if u.Scheme == "" && u.Host == "" && u.User == nil {
			userinfo = p.baseUserinfo
		}
		u = p.base.ResolveReference(u)
		log.Debugf("resolved %q against %q", u.String(), p.base.String())
	}
	if p.opts.IDNA {
		err = toASCIIHost(u)
		if err != nil {
			log.Warnf("IDNA conversion of %q: %v", u.Hostname(), err)
		}
	}
	return &Result{URL: u, userinfo: userinfo}, nil
}

// Parse is NewParser(opts) with opts.Base applied, parsing a single input.
func Parse(s string, opts Options) (*Result, error) {
	p := NewParser(opts)
	if opts.Base != "" {
		err := p.SetBase(opts.Base)
		if err != nil {
			return nil, err
		}
	}
	return p.Parse(s)
}

// rawUserinfo extracts the userinfo of s, which url.Parse produced u from,
// following the same scheme, query and authority splits.
func rawUserinfo(s string, u *url.URL) string {
	if u.User == nil {
		return ""
	}
	s, _, _ = strings.Cut(s, "#")
	if u.Scheme != "" {
		s = s[len(u.Scheme)+1:]
	}
	s, _, _ = strings.Cut(s, "?")
	if !strings.HasPrefix(s, "//") {
		return ""
	}
	authority, _, _ := strings.Cut(s[2:], "/")
	i := strings.LastIndexByte(authority, '@')
	if i < 0 {
		return ""
	}
	return authority[:i]
}

const upperhex = "0123456789ABCDEF"

func needsEncoding(c byte) bool {
	return c <= ' ' || c >= 0x7f
}

func encodeInput(s string) string {
	i := 0
	for i < len(s) && !needsEncoding(s[i]) {
		i++
	}
	if i == len(s) {
		return s
	}

	b := strbuf.New(len(s) + 8)
	b.AppendString(s[:i])
	for ; i < len(s); i++ {
		c := s[i]
		if needsEncoding(c) {
			b.AppendByte('%')
			b.AppendByte(upperhex[c>>4])
			b.AppendByte(upperhex[c&0xf])
		} else {
			b.AppendByte(c)
		}
	}
	return b.ReleaseString()
}

// toASCIIHost rewrites the hostname of u the way net/http does before
// dialing, keeping the port.
func toASCIIHost(u *url.URL) error {
	host := u.Hostname()
	if isASCII(host) {
		return nil
	}
	v, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return err
	}
	colon := strings.LastIndexByte(u.Host, ':')
	if colon == -1 {
		u.Host = v
	} else {
		u.Host = v + u.Host[colon:]
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
