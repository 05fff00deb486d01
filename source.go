package tokenlist

import (
	gourl "net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// Source identifies where a token list is loaded from.
// It is either a [RemoteSource] or a [LocalSource].
type Source interface {
	String() string
	source()
}

// RemoteSource is an http or https url.
type RemoteSource struct {
	URL string
}

func (s RemoteSource) String() string { return s.URL }
func (RemoteSource) source()          {}

// LocalSource is a filesystem path. Relative paths are
// resolved against the loader's base directory.
type LocalSource struct {
	Path string
}

func (s LocalSource) String() string { return s.Path }
func (LocalSource) source()          {}

// Resolve classifies s by its prefix only; nothing is probed.
func Resolve(s string) Source {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return RemoteSource{URL: s}
	}
	if strings.HasPrefix(s, "file://") {
		if path, ok := fileURLPath(s); ok {
			return LocalSource{Path: path}
		}
	}
	return LocalSource{Path: s}
}

func fileURLPath(url string) (string, bool) {
	u, err := gourl.Parse(url)
	if err != nil || u.Path == "" {
		return "", false
	}
	path := u.Path
	if runtime.GOOS == "windows" {
		path = strings.TrimPrefix(path, "/")
		path = filepath.FromSlash(path)
	}
	return path, true
}
