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

package dataset

import "github.com/pkg/errors"

// Descriptor identifies one dataset and the archive it is prepared from.
//
// A Descriptor is a plain immutable value: the same descriptor always refers
// to the same archive bytes, so a prepared dataset never needs re-checking
// beyond the existence of its manifest.
type Descriptor struct {
	// Name is the human-readable dataset identifier. It also derives the
	// manifest file name.
	Name string
	// SourceURL is the location the archive is fetched from. http, https and
	// file schemes are supported; a bare path is treated as a local file.
	SourceURL string
	// Checksum is the hex MD5 digest the downloaded archive must match.
	Checksum string
	// ArchiveName is the local file name for the downloaded archive.
	ArchiveName string
	// ExtractedDir is the directory name the archive unpacks into, as a
	// top-level entry of the archive itself.
	ExtractedDir string
}

// Validate returns an error if any descriptor field is empty.
func (d Descriptor) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"name", d.Name},
		{"source URL", d.SourceURL},
		{"checksum", d.Checksum},
		{"archive name", d.ArchiveName},
		{"extracted dir", d.ExtractedDir},
	} {
		if f.value == "" {
			return errors.Errorf("dataset descriptor is missing its %s", f.name)
		}
	}
	return nil
}
