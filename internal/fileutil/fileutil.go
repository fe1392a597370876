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

package fileutil

import (
	"io"
	"os"
	"path/filepath"
)

// AtomicWriteFile atomically (as atomic as os.Rename allows) writes a file to
// disk. A concurrent reader of the path sees either the old content or the new
// content, never a partial write.
func AtomicWriteFile(filename string, reader io.Reader, mode os.FileMode) error {
	tempFile, err := os.CreateTemp(filepath.Split(filename))
	if err != nil {
		return err
	}
	tempName := tempFile.Name()

	if _, err := io.Copy(tempFile, reader); err != nil {
		tempFile.Close() // return value is ignored as we are already on error path
		os.Remove(tempName)
		return err
	}

	if err := tempFile.Close(); err != nil {
		os.Remove(tempName)
		return err
	}

	if err := os.Chmod(tempName, mode); err != nil {
		os.Remove(tempName)
		return err
	}

	return os.Rename(tempName, filename)
}
