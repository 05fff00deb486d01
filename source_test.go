package tokenlist_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tokenlists/tokenlist"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		input string
		want  tokenlist.Source
	}{
		{"https://tokens.example.org/list.json", tokenlist.RemoteSource{URL: "https://tokens.example.org/list.json"}},
		{"http://localhost:8080/list.json", tokenlist.RemoteSource{URL: "http://localhost:8080/list.json"}},
		{"./fixtures/valid-list.json", tokenlist.LocalSource{Path: "./fixtures/valid-list.json"}},
		{"/etc/lists/list.json", tokenlist.LocalSource{Path: "/etc/lists/list.json"}},
		{"ftp://example.com/list.json", tokenlist.LocalSource{Path: "ftp://example.com/list.json"}},
		{"HTTPS://example.com/list.json", tokenlist.LocalSource{Path: "HTTPS://example.com/list.json"}},
		{"httpsfoo", tokenlist.LocalSource{Path: "httpsfoo"}},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, tokenlist.Resolve(test.input), test.input)
	}
}

func TestResolveFileURL(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	assert.Equal(t, tokenlist.LocalSource{Path: "/tmp/list.json"}, tokenlist.Resolve("file:///tmp/list.json"))
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "https://example.com/a.json", tokenlist.RemoteSource{URL: "https://example.com/a.json"}.String())
	assert.Equal(t, "a.json", tokenlist.LocalSource{Path: "a.json"}.String())
}
