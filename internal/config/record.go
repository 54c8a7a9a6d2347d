package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/example/markshot/internal/imageio"
)

// ErrMalformed is returned when the save record cannot be fully read.
var ErrMalformed = errors.New("malformed save record")

// Record is the persisted save location and export format.
type Record struct {
	SavePath string
	Format   imageio.Format
}

// DefaultRecord saves PNGs into the pictures directory.
func DefaultRecord() Record {
	return Record{SavePath: DefaultPicturesDir(), Format: imageio.Png}
}

// ParseRecord reads "{save_path}\n{format}". A readable path with a missing
// or unknown format keeps the path, uses Png and reports ErrMalformed. An
// empty record yields the default record and ErrMalformed.
func ParseRecord(r io.Reader) (Record, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() && len(lines) < 2 {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return DefaultRecord(), fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return DefaultRecord(), ErrMalformed
	}
	rec := Record{SavePath: lines[0], Format: imageio.Png}
	if len(lines) < 2 {
		return rec, fmt.Errorf("%w: missing format", ErrMalformed)
	}
	f, err := imageio.ParseFormat(lines[1])
	if err != nil {
		return rec, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	rec.Format = f
	return rec, nil
}

// WriteTo writes the record in the format read by ParseRecord.
func (r Record) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "%s\n%s", r.SavePath, r.Format)
	return int64(n), err
}

// DefaultPicturesDir returns the user's pictures directory for this OS.
func DefaultPicturesDir() string {
	return PicturesDir(runtime.GOOS, os.Getenv)
}

// PicturesDir resolves the pictures directory. On Linux it reads
// XDG_PICTURES_DIR from user-dirs.dirs and falls back to HOME.
func PicturesDir(goos string, getenv func(string) string) string {
	home := getenv("HOME")
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		base := getenv("XDG_CONFIG_HOME")
		if base == "" {
			base = filepath.Join(home, ".config")
		}
		if dir := readUserDir(filepath.Join(base, "user-dirs.dirs"), "XDG_PICTURES_DIR", home); dir != "" {
			return dir
		}
		return home
	default:
		return filepath.Join(home, "Pictures")
	}
}

func readUserDir(path, key, home string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		name, value, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(name) != key {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		value = strings.ReplaceAll(value, "$HOME", home)
		return value
	}
	return ""
}

// CutPath shortens long paths for display: more than 21 characters become
// the first 18 followed by "...".
func CutPath(s string) string {
	r := []rune(s)
	if len(r) > 21 {
		return string(r[:18]) + "..."
	}
	return s
}
