// Package fetch downloads and unpacks the prebuilt distribution archive.
//
// The archive is never written to disk: the HTTP response body is piped
// through the matching decompressor straight into archive/tar, and entries
// are materialised under the destination directory. There is a single
// attempt and no resume; any network or archive error aborts the run.
package fetch

import (
	"archive/tar"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// Download performs a single HTTP GET for url and stream-extracts the tar
// archive it returns into dest.
func Download(url, dest string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: unexpected status %s", url, resp.Status)
	}

	return Extract(resp.Body, dest, url)
}

// Extract unpacks the tar stream r into dest. name is used only to pick the
// decompressor from its suffix.
func Extract(r io.Reader, dest, name string) error {
	dr, err := decompressor(r, name)
	if err != nil {
		return err
	}

	tr := tar.NewReader(dr)

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read archive: %w", err)
		}

		target, err := securePath(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(hdr.Mode)); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("failed to create parent directory for %s: %w", target, err)
			}

			if err := os.Symlink(hdr.Linkname, target); err != nil && !os.IsExist(err) {
				return fmt.Errorf("failed to create symlink %s: %w", target, err)
			}
		}
	}

	return nil
}

// Supported archive suffixes, matched in order.
var decompressors = []struct {
	suffix string
	open   func(io.Reader) (io.Reader, error)
}{
	{".tar.xz", openXz},
	{".txz", openXz},
	{".tar.gz", openGzip},
	{".tgz", openGzip},
	{".tar.bz2", openBzip2},
	{".tar", openPlain},
}

// decompressor wraps r according to the archive name suffix.
func decompressor(r io.Reader, name string) (io.Reader, error) {
	for _, d := range decompressors {
		if strings.HasSuffix(name, d.suffix) {
			return d.open(r)
		}
	}

	return nil, fmt.Errorf("unsupported archive type: %s", name)
}

func openXz(r io.Reader) (io.Reader, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xz stream: %w", err)
	}

	return xr, nil
}

func openGzip(r io.Reader) (io.Reader, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}

	return gr, nil
}

func openBzip2(r io.Reader) (io.Reader, error) {
	return bzip2.NewReader(r), nil
}

func openPlain(r io.Reader) (io.Reader, error) {
	return r, nil
}

// securePath joins an archive entry name onto dest, rejecting entries that
// would land outside it.
func securePath(dest, name string) (string, error) {
	clean := filepath.Clean(dest)

	target := filepath.Join(dest, name)
	if target != clean && !strings.HasPrefix(target, clean+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes destination: %s", name)
	}

	return target, nil
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", target, err)
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", target, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file %s: %w", target, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write file %s: %w", target, err)
	}

	// OpenFile modes pass through the umask, archive modes must not
	if err := os.Chmod(target, mode); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", target, err)
	}

	return nil
}
