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

// Package checksum computes content digests of dataset archives.
//
// Dataprep uses MD5 as its archive integrity digest. The digest guards
// against truncated or corrupted downloads, not against adversarial
// tampering.
package checksum

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"strings"
)

// chunkSize bounds the memory used while hashing; archives are never loaded
// into memory whole.
const chunkSize = 8192

// Digest hashes a reader and returns the hex-encoded MD5 digest.
func Digest(in io.Reader) (string, error) {
	hash := md5.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(hash, in, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// DigestFile hashes a file and returns the hex-encoded MD5 digest.
func DigestFile(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return Digest(f)
}

// Equal reports whether two hex digests refer to the same content. Hex case
// is not significant.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}
