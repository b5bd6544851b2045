package archivetool

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/grafana/svgsizecheck/pkg/logme"
)

var ErrNotFound = errors.New("archive not found")

// ResolveTarget turns the target given on the command line into a local
// directory. Directories are used as they are; zip files and http(s) urls
// are extracted into a temporary directory. The returned cleanup function
// is never nil.
func ResolveTarget(target string) (string, func(), error) {
	noop := func() {}

	if !isURL(target) {
		fi, err := os.Stat(target)
		if err != nil {
			return "", noop, err
		}
		if fi.IsDir() {
			return target, noop, nil
		}
	}

	logme.DebugFln("extracting archive %s", target)

	dir, cleanup, err := ArchiveToLocalPath(target)
	if err != nil {
		return "", noop, err
	}
	return dir, cleanup, nil
}

func ArchiveToLocalPath(uri string) (string, func(), error) {
	b, err := ReadArchive(uri)
	if err != nil {
		return "", nil, err
	}

	// Extract the ZIP archive in a temporary directory.
	archiveDir, cleanup, err := ExtractArchive(bytes.NewReader(b))
	if err != nil {
		if cleanup != nil {
			cleanup()
		}
		return "", nil, err
	}
	return archiveDir, cleanup, nil
}

func isURL(target string) bool {
	return strings.HasPrefix(target, "https://") || strings.HasPrefix(target, "http://")
}

// ReadArchive reads an archive from a URL or a local file
func ReadArchive(archiveURL string) ([]byte, error) {
	if isURL(archiveURL) {
		resp, err := http.Get(archiveURL)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if resp.StatusCode == http.StatusNotFound {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("unexpected status: %s", resp.Status)
		}

		return io.ReadAll(resp.Body)
	}

	return os.ReadFile(archiveURL)
}

func ExtractArchive(body io.Reader) (string, func(), error) {
	// Create a file for the zipball.
	zipball, err := os.CreateTemp("", "svgsizecheck-*.zip")
	if err != nil {
		return "", nil, err
	}
	defer zipball.Close()
	defer os.Remove(zipball.Name())

	if _, err := io.Copy(zipball, body); err != nil {
		return "", nil, err
	}

	// Create a directory where we'll extract the archive.
	output, err := os.MkdirTemp("", "svgsizecheck-")
	if err != nil {
		return "", nil, err
	}

	cleanup := func() {
		os.RemoveAll(output)
	}

	if _, err := Unzip(zipball.Name(), output); err != nil {
		cleanup()
		return "", nil, err
	}

	return output, cleanup, nil
}

func Unzip(src string, dest string) ([]string, error) {
	var filenames []string

	r, err := zip.OpenReader(src)
	if err != nil {
		return filenames, err
	}
	defer r.Close()

	for _, f := range r.File {
		// Store filename/path for returning and using later on
		fpath := filepath.Join(dest, f.Name)

		// Check for ZipSlip. More Info: http://bit.ly/2MsjAWE
		if !strings.HasPrefix(fpath, filepath.Clean(dest)+string(os.PathSeparator)) {
			return filenames, fmt.Errorf("%s: illegal file path", fpath)
		}

		filenames = append(filenames, fpath)

		if f.FileInfo().IsDir() {
			if err = os.MkdirAll(fpath, os.ModePerm); err != nil {
				return nil, err
			}
			continue
		}

		if err = os.MkdirAll(filepath.Dir(fpath), os.ModePerm); err != nil {
			return filenames, err
		}

		if err := extractFile(f, fpath); err != nil {
			return filenames, err
		}
	}
	return filenames, nil
}

func extractFile(f *zip.File, fpath string) error {
	outFile, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	defer outFile.Close()

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(outFile, rc)
	return err
}
