package ioutil

import (
	"io"

	"github.com/cockroachdb/errors"
)

var ErrTooLarge = errors.New("input too large")

// ReadToEnd reads r until EOF, or until expected bytes when expected >= 0.
func ReadToEnd(r io.Reader, expected int64) ([]byte, error) {
	n := expected
	if n < 0 {
		n = 512
	}

	buf := make([]byte, n)
	i := int64(0)
	for expected < 0 || i < expected {
		if i >= n {
			buf = append(buf, 0)
			n = int64(cap(buf))
			buf = buf[:n]
		}

		nn, err := r.Read(buf[i:n])
		i += int64(nn)
		if err != nil {
			if err == io.EOF {
				err = nil
			}
			return buf[:i], err
		}
	}
	return buf[:i], nil
}

// ReadLimited is ReadToEnd refusing more than limit bytes. A negative
// expected size means unknown, as with http.Request.ContentLength.
func ReadLimited(r io.Reader, expected int64, limit int64) ([]byte, error) {
	if expected > limit {
		return nil, errors.Wrapf(ErrTooLarge, "%d bytes, limit %d", expected, limit)
	}
	if expected >= 0 {
		return ReadToEnd(r, expected)
	}
	data, err := ReadToEnd(io.LimitReader(r, limit+1), -1)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrTooLarge, "limit %d", limit)
	}
	return data, nil
}
