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

import (
	stderrors "errors"
	"fmt"
)

// IntegrityError reports that the archive's computed digest does not match
// the descriptor's expected digest. The corrupt archive has already been
// removed as a recovery action; calling Prepare again re-downloads it.
type IntegrityError struct {
	Dataset string
	Want    string
	Got     string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s archive checksum mismatch: expected %s, computed %s", e.Dataset, e.Want, e.Got)
}

// TransportError reports a failure while fetching the remote archive.
type TransportError struct {
	Source string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %s", e.Source, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ExtractionError reports a failure while unpacking the archive.
type ExtractionError struct {
	Archive string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s: %s", e.Archive, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// FilesystemError reports a failure creating, writing or probing local state.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to %s %s: %s", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// IsIntegrity reports whether err is an integrity violation.
func IsIntegrity(err error) bool {
	var e *IntegrityError
	return stderrors.As(err, &e)
}

// IsTransport reports whether err is a fetch failure.
func IsTransport(err error) bool {
	var e *TransportError
	return stderrors.As(err, &e)
}

// IsExtraction reports whether err is an unpacking failure.
func IsExtraction(err error) bool {
	var e *ExtractionError
	return stderrors.As(err, &e)
}

// IsFilesystem reports whether err is a local filesystem failure.
func IsFilesystem(err error) bool {
	var e *FilesystemError
	return stderrors.As(err, &e)
}
