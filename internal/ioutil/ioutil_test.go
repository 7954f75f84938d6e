package ioutil

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestReadToEnd(t *testing.T) {
	type args struct {
		r        io.Reader
		expected int64
	}
	tests := []struct {
		name    string
		args    args
		want    []byte
		wantErr bool
	}{
		{name: "empty", args: args{}, want: []byte(``)},
		{name: "limited", args: args{r: strings.NewReader(`abc`), expected: 1}, want: []byte(`a`)},
		{name: "no_alloc", args: args{r: strings.NewReader(`abc`), expected: 3}, want: []byte(`abc`)},
		{name: "oversize", args: args{r: strings.NewReader(`abc`), expected: 5}, want: []byte(`abc`)},
		{name: "unlimited", args: args{r: strings.NewReader(strings.Repeat("a", 1024)), expected: -1}, want: []byte(bytes.Repeat([]byte("a"), 1024))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadToEnd(tt.args.r, tt.args.expected)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadToEnd() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("ReadToEnd() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadLimited(t *testing.T) {
	type args struct {
		r        io.Reader
		expected int64
		limit    int64
	}
	tests := []struct {
		name    string
		args    args
		want    []byte
		wantErr bool
	}{
		{name: "known_size", args: args{r: strings.NewReader(`http://a/`), expected: 9, limit: 16}, want: []byte(`http://a/`)},
		{name: "unknown_size", args: args{r: strings.NewReader(`http://a/`), expected: -1, limit: 16}, want: []byte(`http://a/`)},
		{name: "exact_limit", args: args{r: strings.NewReader(`abcd`), expected: -1, limit: 4}, want: []byte(`abcd`)},
		{name: "declared_too_large", args: args{r: strings.NewReader(`abcd`), expected: 4, limit: 3}, wantErr: true},
		{name: "read_too_large", args: args{r: strings.NewReader(`abcd`), expected: -1, limit: 3}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLimited(tt.args.r, tt.args.expected, tt.args.limit)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadLimited() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrTooLarge) {
					t.Errorf("ReadLimited() error = %v, want ErrTooLarge", err)
				}
				return
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("ReadLimited() = %v, want %v", got, tt.want)
			}
		})
	}
}
