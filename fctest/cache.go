package fctest

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sailfishos-mirror/fontconfig/errors"
)

// CacheFiles lists the cache files in the current cache dir.
func (h *Harness) CacheFiles() ([]string, error) {
	return CacheFilesIn(h.cacheDir)
}

// CacheFilesIn lists files in dir whose name contains "cache", sorted.
func CacheFilesIn(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*cache*"))
	if err != nil {
		return nil, errors.Wrapf(err, "list caches in %s", dir)
	}
	sort.Strings(matches)
	return matches, nil
}

// CacheStat is the part of a cache file's state that tells whether
// fc-cache rewrote it. Access time is left out.
type CacheStat struct {
	Name    string
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
	Digest  string
}

// CacheSnapshot records the state of every cache file in the current
// cache dir.
func (h *Harness) CacheSnapshot() ([]CacheStat, error) {
	return SnapshotCaches(h.cacheDir)
}

// SnapshotCaches records the state of every cache file in dir.
func SnapshotCaches(dir string) ([]CacheStat, error) {
	files, err := CacheFilesIn(dir)
	if err != nil {
		return nil, err
	}
	out := make([]CacheStat, 0, len(files))
	for _, f := range files {
		st, err := statCache(f)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func statCache(path string) (CacheStat, error) {
	f, err := os.Open(path)
	if err != nil {
		return CacheStat{}, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return CacheStat{}, errors.Wrapf(err, "stat %s", path)
	}
	sum := sha256.New()
	if _, err := io.Copy(sum, f); err != nil {
		return CacheStat{}, errors.Wrapf(err, "read %s", path)
	}
	return CacheStat{
		Name:    info.Name(),
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
		Digest:  hex.EncodeToString(sum.Sum(nil)),
	}, nil
}

// CacheHash is the prefix fc-cache gives the cache file of dir: the MD5 of
// the directory path as passed in the config, in hex.
func CacheHash(dir string) string {
	sum := md5.Sum([]byte(dir))
	return hex.EncodeToString(sum[:])
}
