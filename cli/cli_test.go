package cli

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/swaggest/assertjson"
	"github.com/vizee/urlparts/inspect"
	"github.com/vizee/urlparts/log"
)

func runCLI(t *testing.T, stdin string, args ...string) (stdout string, stderr string, err error) {
	t.Helper()
	defer log.SetLogger(nil)
	var outBuf, errBuf bytes.Buffer
	err = Run(args, strings.NewReader(stdin), &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), err
}

func header() string {
	return "VERSION:" + inspect.EngineVersion() + "\n" +
		"using " + runtime.Version() + " " + runtime.GOOS + "/" + runtime.GOARCH + "\n\n"
}

const resolvedJSON = `{"href":"http://example.com/a/x?y","scheme":"http","user":null,"user_decoded":null,` +
	`"password":null,"password_decoded":null,"options":null,"options_decoded":null,` +
	`"host":"example.com","host_decoded":"example.com","port":null,"path":"/a/x","path_decoded":"/a/x",` +
	`"query":"y","query_decoded":"y","fragment":null,"fragment_decoded":null,"zone_id":null,"zone_id_decoded":null}`

func TestRun_base(t *testing.T) {
	want := header() +
		`parsing base "http://example.com/a/b"

parsing "x?y"
roundtripped: "http://example.com/a/x?y"
scheme: "http"
user: (null) (decoded: (null))
password: (null) (decoded: (null))
options: (null) (decoded: (null))
host: "example.com" (decoded: "example.com")
port: (null)
path: "/a/x" (decoded: "/a/x")
query: "y" (decoded: "y")
fragment: (null) (decoded: (null))
zone id: (null) (decoded: (null))
JSON:` + resolvedJSON + "\n"

	stdout, stderr, err := runCLI(t, "", "-b", "http://example.com/a/b", "x?y")
	require.NoError(t, err)
	require.Empty(t, stderr)
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_jsonOnly(t *testing.T) {
	stdout, _, err := runCLI(t, "", "--json-only", "--base=http://example.com/a/b", "x?y")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, "JSON:"))
	require.True(t, strings.HasSuffix(stdout, "}\n"))
	assertjson.Equal(t, []byte(resolvedJSON), []byte(strings.TrimSuffix(strings.TrimPrefix(stdout, "JSON:"), "\n")))
}

func TestRun_stdin(t *testing.T) {
	stdout, _, err := runCLI(t, "http://example.com/a/x?y\n", "--json-only", "-")
	require.NoError(t, err)
	require.Equal(t, "JSON:"+resolvedJSON+"\n", stdout)
}

func TestRun_encode(t *testing.T) {
	stdout, _, err := runCLI(t, "", "--json-only", "-e", "http://example.com/a\x01b")
	require.NoError(t, err)
	require.Contains(t, stdout, `"path":"/a%01b","path_decoded":"/a\u0001b"`)
}

func TestRun_errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantStdout string
		wantStderr string
		usage      bool
	}{
		{
			name:       "no_url",
			args:       nil,
			wantStderr: "No URL found\nUsage:",
			usage:      true,
		},
		{
			name:       "bad_base",
			args:       []string{"-b", "http://[::1", "/x"},
			wantStdout: header() + "parsing base \"http://[::1\"\n",
			wantStderr: "Failed to parse base URL: missing ']' in host\n",
		},
		{
			name:       "bad_url",
			args:       []string{"http://example.com:port/"},
			wantStdout: header() + "parsing \"http://example.com:port/\"\n",
			wantStderr: "Failed to parse URL: invalid port \":port\" after host\n",
		},
		{
			name:       "bad_flag",
			args:       []string{"--nope", "http://example.com/"},
			wantStderr: "Error: unknown flag: --nope\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, "", tt.args...)
			require.Error(t, err)
			require.Equal(t, tt.wantStdout, stdout)
			if tt.usage {
				require.True(t, strings.HasPrefix(stderr, tt.wantStderr), "stderr: %q", stderr)
			} else {
				require.Equal(t, tt.wantStderr, stderr)
			}
		})
	}
}

func TestRun_help(t *testing.T) {
	stdout, _, err := runCLI(t, "", "-h")
	require.NoError(t, err)
	require.Contains(t, stdout, "--base")
	require.Contains(t, stdout, "--encode")
	require.Contains(t, stdout, "serve")
}

func TestRun_version(t *testing.T) {
	stdout, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	require.Equal(t, "VERSION:"+inspect.EngineVersion()+"\n", stdout)
}
