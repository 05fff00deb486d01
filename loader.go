package tokenlist

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Loader retrieves a document from a [Source] and parses it.
type Loader struct {
	File FileLoader
	HTTP *HTTPLoader

	// Timeout bounds a single Load. Zero means no timeout.
	Timeout time.Duration
}

// NewLoader returns a Loader configured from cfg.
func NewLoader(cfg Config) (*Loader, error) {
	httpLoader, err := NewHTTPLoader(cfg.HTTP)
	if err != nil {
		return nil, err
	}
	return &Loader{
		File:    FileLoader{FS: DirFS(cfg.BaseDir)},
		HTTP:    httpLoader,
		Timeout: cfg.Timeout,
	}, nil
}

// Load returns the parsed document behind src.
//
// The returned error is one of [*FetchError], [*ReadError],
// [*ParseError] or [*TimeoutError].
func (l *Loader) Load(ctx context.Context, src Source) (any, error) {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	var doc any
	var err error
	switch src := src.(type) {
	case RemoteSource:
		doc, err = l.HTTP.Load(ctx, src.URL)
	case LocalSource:
		doc, err = l.File.Load(ctx, src.Path)
	default:
		return nil, fmt.Errorf("tokenlist: unsupported source %T", src)
	}
	if err != nil {
		var pe *ParseError
		if !errors.As(err, &pe) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &TimeoutError{Source: src.String(), Timeout: l.Timeout, Err: err}
		}
		return nil, err
	}
	return doc, nil
}

// --

// ReadFileFS is the filesystem local sources are read from.
// [testing/fstest.MapFS] satisfies it.
type ReadFileFS interface {
	ReadFile(name string) ([]byte, error)
}

// DirFS reads files relative to the directory it names.
// Absolute names are read as is.
type DirFS string

func (dir DirFS) ReadFile(name string) ([]byte, error) {
	if !filepath.IsAbs(name) {
		name = filepath.Join(string(dir), name)
	}
	return os.ReadFile(name)
}

// FileLoader loads documents from a [ReadFileFS].
type FileLoader struct {
	FS ReadFileFS
}

func (l FileLoader) Load(ctx context.Context, path string) (any, error) {
	name := path
	if !filepath.IsAbs(name) {
		name = filepath.ToSlash(filepath.Clean(name))
	}

	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := l.FS.ReadFile(name)
		ch <- result{data, err}
	}()

	var r result
	select {
	case <-ctx.Done():
		return nil, &ReadError{Path: path, Err: ctx.Err()}
	case r = <-ch:
	}
	if r.err != nil {
		return nil, &ReadError{Path: path, Err: r.err}
	}
	doc, err := UnmarshalDocument(r.data, isYAMLPath(path))
	if err != nil {
		return nil, &ParseError{Source: path, Err: err}
	}
	return doc, nil
}

// --

// HTTPLoader loads documents with a single GET request.
type HTTPLoader http.Client

// NewHTTPLoader returns an HTTPLoader honoring the redirect
// and TLS settings in cfg. The client itself has no timeout;
// [Loader.Timeout] bounds the whole request.
func NewHTTPLoader(cfg HTTPConfig) (*HTTPLoader, error) {
	maxRedirects := cfg.MaxRedirects
	httpLoader := HTTPLoader(http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if maxRedirects <= 0 {
				return http.ErrUseLastResponse
			}
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	})
	if cfg.Insecure || cfg.CACert != "" {
		tlsConfig := &tls.Config{InsecureSkipVerify: cfg.Insecure}
		if cfg.CACert != "" {
			pem, err := os.ReadFile(cfg.CACert)
			if err != nil {
				return nil, fmt.Errorf("reading cacert: %w", err)
			}
			pool, err := x509.SystemCertPool()
			if err != nil {
				pool = x509.NewCertPool()
			}
			if !pool.AppendCertsFromPEM(pem) {
				return nil, fmt.Errorf("no certificates found in %s", cfg.CACert)
			}
			tlsConfig.RootCAs = pool
		}
		httpLoader.Transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: tlsConfig,
		}
	}
	return &httpLoader, nil
}

func (l *HTTPLoader) Load(ctx context.Context, url string) (any, error) {
	client := (*http.Client)(l)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}

	isYAML := isYAMLPath(req.URL.Path)
	if !isYAML {
		ctype := resp.Header.Get("Content-Type")
		if i := strings.IndexByte(ctype, ';'); i != -1 {
			ctype = ctype[:i]
		}
		ctype = strings.TrimSpace(ctype)
		isYAML = strings.HasSuffix(ctype, "/yaml") || strings.HasSuffix(ctype, "-yaml")
	}
	doc, err := UnmarshalDocument(body, isYAML)
	if err != nil {
		return nil, &ParseError{Source: url, Err: err}
	}
	return doc, nil
}

// --

// UnmarshalDocument parses data as YAML when isYAML is set and as
// strict JSON otherwise. JSON numbers are kept as [encoding/json.Number].
// YAML timestamps are returned as RFC 3339 strings.
func UnmarshalDocument(data []byte, isYAML bool) (any, error) {
	if isYAML {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return jsonValue(v), nil
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

// jsonValue rewrites yaml-only value types into their json equivalents.
func jsonValue(v any) any {
	switch v := v.(type) {
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case map[string]any:
		for k, e := range v {
			v[k] = jsonValue(e)
		}
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[fmt.Sprint(k)] = jsonValue(e)
		}
		return m
	case []any:
		for i, e := range v {
			v[i] = jsonValue(e)
		}
	}
	return v
}

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
