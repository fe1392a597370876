/*
Copyright The Dataprep Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package catalog manages the catalog.yaml file: the named dataset
// descriptors that the dataprep commands operate on.
package catalog

import (
	"bytes"
	"os"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/dataprep/dataprep/internal/fileutil"
	"github.com/dataprep/dataprep/pkg/dataset"
)

// APIVersionV1 is the v1 API version for the catalog file.
const APIVersionV1 = "v1"

// File represents the catalog.yaml file.
type File struct {
	APIVersion string    `json:"apiVersion"`
	Generated  time.Time `json:"generated"`
	Datasets   []*Entry  `json:"datasets"`
}

// Entry describes one dataset in the catalog. Name, URL and Checksum are
// required; the rest default from the URL.
type Entry struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Checksum     string `json:"checksum"`
	ArchiveName  string `json:"archiveName,omitempty"`
	ExtractedDir string `json:"extractedDir,omitempty"`
	// Root overrides the preparation root directory for this dataset.
	Root string `json:"root,omitempty"`
}

// Descriptor converts the entry into the immutable descriptor the preparer
// consumes. An empty archive name defaults to the URL's base name; an empty
// extracted dir defaults to the archive name with its .tgz / .tar.gz suffix
// stripped.
func (e *Entry) Descriptor() dataset.Descriptor {
	archive := e.ArchiveName
	if archive == "" {
		archive = path.Base(e.URL)
	}

	dir := e.ExtractedDir
	if dir == "" {
		dir = strings.TrimSuffix(strings.TrimSuffix(archive, ".tgz"), ".tar.gz")
	}

	return dataset.Descriptor{
		Name:         e.Name,
		SourceURL:    e.URL,
		Checksum:     e.Checksum,
		ArchiveName:  archive,
		ExtractedDir: dir,
	}
}

// NewFile generates an empty catalog file.
//
// Generated and APIVersion are automatically set.
func NewFile() *File {
	return &File{
		APIVersion: APIVersionV1,
		Generated:  time.Now(),
		Datasets:   []*Entry{},
	}
}

// LoadFile takes a file at the given path and returns a File object.
func LoadFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("couldn't load catalog file (%s).\nYou might need to run `dataprep catalog add`", path)
		}
		return nil, err
	}

	f := &File{}
	if err := yaml.Unmarshal(b, f); err != nil {
		return nil, errors.Wrapf(err, "couldn't parse catalog file (%s)", path)
	}
	return f, nil
}

// Add adds one or more dataset entries to the catalog.
func (f *File) Add(e ...*Entry) {
	f.Datasets = append(f.Datasets, e...)
}

// Update attempts to replace one or more entries in the catalog. If an entry
// with the same name doesn't exist it is added.
func (f *File) Update(e ...*Entry) {
	for _, target := range e {
		found := false
		for j, entry := range f.Datasets {
			if entry.Name == target.Name {
				f.Datasets[j] = target
				found = true
				break
			}
		}
		if !found {
			f.Add(target)
		}
	}
}

// Has returns true if the given name is already a catalog entry.
func (f *File) Has(name string) bool {
	return f.Get(name) != nil
}

// Get returns the entry with the given name, or nil.
func (f *File) Get(name string) *Entry {
	for _, entry := range f.Datasets {
		if entry.Name == name {
			return entry
		}
	}
	return nil
}

// Remove removes the entry from the catalog and reports whether it existed.
func (f *File) Remove(name string) bool {
	cp := []*Entry{}
	found := false
	for _, entry := range f.Datasets {
		if entry.Name == name {
			found = true
			continue
		}
		cp = append(cp, entry)
	}
	f.Datasets = cp
	return found
}

// WriteFile writes the catalog to the given path. The write is atomic.
func (f *File) WriteFile(path string, perm os.FileMode) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(path, bytes.NewReader(data), perm)
}
