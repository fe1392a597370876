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

// Package manifest reads and writes the durable record of a prepared dataset.
//
// A manifest's existence next to the extracted directory is the commit marker
// for the whole preparation: it is written once, atomically, after download,
// verification and extraction have all succeeded. Its schema must stay stable
// across releases because older manifests are trusted on sight.
package manifest

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/dataprep/dataprep/internal/fileutil"
)

// Suffix is appended to the derived file name of every manifest.
const Suffix = ".manifest.json"

// Manifest records the identity and preparation state of one dataset.
type Manifest struct {
	Name        string `json:"name"`
	SourceURL   string `json:"source_url"`
	ArchiveName string `json:"archive_name"`
	Checksum    string `json:"checksum"`
	PreparedAt  string `json:"prepared_at"`
	DatasetPath string `json:"dataset_path"`
	ArchivePath string `json:"archive_path"`
}

// FileName derives the manifest file name for a dataset name: lower-cased,
// spaces replaced with underscores, with the manifest suffix appended.
func FileName(datasetName string) string {
	return strings.ReplaceAll(strings.ToLower(datasetName), " ", "_") + Suffix
}

// Load reads a manifest from the given path.
func Load(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := json.Unmarshal(b, m); err != nil {
		return nil, errors.Wrapf(err, "failed to parse manifest %s", path)
	}
	return m, nil
}

// Write serializes the manifest to the given path as pretty-printed JSON.
// The write is atomic: a concurrent reader never observes a partial record.
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return fileutil.AtomicWriteFile(path, bytes.NewReader(data), 0644)
}
