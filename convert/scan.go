package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"spritegen/sprite"
)

var imageExts = []string{".bmp", ".gif", ".jpeg", ".jpg", ".png", ".tif", ".tiff", ".webp"}

// IsImage reports whether name has an extension of a decodable image format.
func IsImage(name string) bool {
	return slices.Contains(imageExts, strings.ToLower(filepath.Ext(name)))
}

// ListImages returns the image files directly inside dir, sorted by name.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read folder %q: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// Job is one image conversion. Each job is only touched by the worker that
// runs it until the pool has been drained.
type Job struct {
	Source string
	Dest   string
	Status sprite.Status
	Err    error
}

// Name is the base name of the source without its extension.
func (j *Job) Name() string {
	base := filepath.Base(j.Source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (j *Job) fail(err error) {
	j.Status = sprite.Error
	j.Err = err
}

// Scan builds a job for every path. Folders contribute the images directly
// inside them, files are taken as given. A relative dest is resolved against
// the folder of each source.
func Scan(paths []string, dest string) ([]*Job, error) {
	var jobs []*Job
	add := func(file string) {
		dir := dest
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(filepath.Dir(file), dest)
		}
		jobs = append(jobs, &Job{Source: file, Dest: dir})
	}

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		var info os.FileInfo
		if err == nil {
			info, err = os.Stat(abs)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid source path %q: %w", path, err)
		}

		if !info.IsDir() {
			add(abs)
			continue
		}

		files, err := ListImages(abs)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			add(file)
		}
	}
	return jobs, nil
}
