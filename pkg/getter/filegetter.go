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

package getter

import (
	"net/url"
	"os"
	"strings"
)

// FileGetter serves archives from the local filesystem. It handles bare
// paths as well as file:// URLs, which is mainly useful for tests and for
// preparing datasets from mirrored archives.
type FileGetter struct{}

// Get opens the file at the given location and returns it as a streamed
// response. The declared length is the file's size.
func (g *FileGetter) Get(location string, _ ...Option) (*Response, error) {
	path := location
	if strings.HasPrefix(location, "file://") {
		u, err := url.Parse(location)
		if err != nil {
			return nil, err
		}
		path = u.Path
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Response{Body: f, ContentLength: fi.Size()}, nil
}

// NewFileGetter constructs a local filesystem Getter.
func NewFileGetter(options ...Option) (Getter, error) {
	return &FileGetter{}, nil
}
