package closure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// JarProperty overrides the compiler jar location.
	JarProperty = "closure-compiler-jar"
	// URLProperty overrides the download location of the compiler jar.
	URLProperty = "closure-compiler-url"
	// DefaultJarURL is where the compiler jar is fetched from when it is missing.
	DefaultJarURL = "https://repo1.maven.org/maven2/com/google/javascript/closure-compiler/v20240317/closure-compiler-v20240317.jar"
)

// JarLocator finds the compiler jar, downloading it when missing.
// The first resolved path is reused for the lifetime of the locator.
type JarLocator struct {
	mu       sync.Mutex
	resolved string
	client   *http.Client
	logger   ports.Logger
}

// NewJarLocator creates a JarLocator. A nil client uses http.DefaultClient.
func NewJarLocator(client *http.Client, logger ports.Logger) *JarLocator {
	if client == nil {
		client = http.DefaultClient
	}
	return &JarLocator{client: client, logger: logger}
}

// JarPath returns the configured jar path for props.
func JarPath(props *domain.Properties) string {
	if jar := props.GetOr(JarProperty, ""); jar != "" {
		return jar
	}
	vendor := props.GetOr(domain.VendorDirProperty, domain.DefaultVendorDir)
	return filepath.Join(vendor, "google-closure-compiler", "compiler.jar")
}

// Locate returns the jar path, downloading the jar on first use if needed.
func (l *JarLocator) Locate(ctx context.Context, props *domain.Properties) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.resolved != "" {
		return l.resolved, nil
	}

	path := JarPath(props)
	_, err := os.Stat(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		url := props.GetOr(URLProperty, DefaultJarURL)
		if l.logger != nil {
			l.logger.Info(fmt.Sprintf("downloading closure compiler to %s", path))
		}
		if err := l.download(ctx, url, path); err != nil {
			return "", zerr.With(zerr.With(zerr.Wrap(err, domain.ErrToolDownloadFailed.Error()), "url", url), "path", path)
		}
	default:
		return "", zerr.With(zerr.Wrap(err, domain.ErrStatFailed.Error()), "path", path)
	}

	l.resolved = path
	return path, nil
}

func (l *JarLocator) download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return zerr.With(zerr.New("unexpected response status"), "status", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".compiler-*.jar")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
