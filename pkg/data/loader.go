package data

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// Fetch downloads url to cachePath unless the file is already there. The
// cache directory is created on first use. A network or HTTP failure is
// returned as-is; there is no retry.
func Fetch(url, cachePath string) error {
	if _, err := os.Stat(cachePath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat cache %s: %w", cachePath, err)
	}

	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	// Download to a temp name first so a partial file never looks cached.
	tmp := cachePath + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("download %s: %w", url, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	return os.Rename(tmp, cachePath)
}

// LoadCSV parses a header-first CSV file into a Frame.
func LoadCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %s: no header row", path)
	}
	return NewFrame(records[0], records[1:])
}

// FetchCSV is Fetch followed by LoadCSV on the cached file.
func FetchCSV(url, cachePath string) (*Frame, error) {
	if err := Fetch(url, cachePath); err != nil {
		return nil, err
	}
	return LoadCSV(cachePath)
}
