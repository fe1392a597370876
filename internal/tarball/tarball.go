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

// Package tarball reads and writes gzip-compressed tar archives.
package tarball

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// Extract unpacks a gzip-compressed tar stream into targetDir. Entries are
// written in archive order; existing files are overwritten.
func Extract(r io.Reader, targetDir string) error {
	uncompressedStream, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer uncompressedStream.Close()

	tarReader := tar.NewReader(uncompressedStream)

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return err
	}

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		path, err := cleanJoin(targetDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			outFile, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return err
			}
			if _, err := io.Copy(outFile, tarReader); err != nil {
				outFile.Close()
				return err
			}
			if err := outFile.Close(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown type: %b in %s", header.Typeflag, header.Name)
		}
	}

	return nil
}

// ExtractFile unpacks the archive at src into targetDir.
func ExtractFile(src, targetDir string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	return Extract(f, targetDir)
}

// Create writes a gzip-compressed tar archive of the directory src to w. The
// archive's entry names are relative to src's parent, so unpacking recreates
// a top-level directory named after src.
func Create(src string, w io.Writer) error {
	zr := gzip.NewWriter(w)
	tw := tar.NewWriter(zr)

	base := filepath.Dir(filepath.Clean(src))

	walkErr := filepath.Walk(src, func(file string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(base, file)
		if err != nil {
			return err
		}

		header, err := tar.FileInfoHeader(fi, "")
		if err != nil {
			return err
		}
		// must provide the real name
		// (see https://golang.org/src/archive/tar/common.go?#L626)
		header.Name = filepath.ToSlash(rel)

		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if fi.IsDir() {
			return nil
		}

		data, err := os.Open(file)
		if err != nil {
			return err
		}
		defer data.Close()
		_, err = io.Copy(tw, data)
		return err
	})
	if walkErr != nil {
		return walkErr
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return zr.Close()
}

// CreateFile writes a gzip-compressed tar archive of the directory src to the
// file at dest.
func CreateFile(src, dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if err := Create(src, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// cleanJoin resolves dest as a subpath of root.
//
// This function runs several security checks on the path, generating an error
// if the supplied dest looks suspicious or would result in dubious behavior
// on the filesystem.
//
//   - The character `:` is considered illegal because it is a separator on
//     UNIX and a drive designator on Windows.
//   - The path component `..` is considered suspicious, and therefore illegal.
//   - The character \ (backslash) is treated as a path separator and is
//     converted to /.
//   - Beginning a path with a path separator is illegal.
//   - Rudimentary symlink protections are offered by SecureJoin.
func cleanJoin(root, dest string) (string, error) {
	// On Windows, this is a drive separator. On UNIX-like, this is the path
	// list separator. In neither case do we want to trust a TAR that contains
	// these.
	if strings.Contains(dest, ":") {
		return "", errors.New("path contains ':', which is illegal")
	}

	// The Go tar library does not convert separators for us.
	// We assume here, as we do elsewhere, that `\\` means a Windows path.
	dest = strings.ReplaceAll(dest, "\\", "/")

	for _, part := range strings.Split(dest, "/") {
		if part == ".." {
			return "", errors.New("path contains '..', which is illegal")
		}
	}

	// If a path is absolute, the creator of the TAR is doing something shady.
	if path.IsAbs(dest) {
		return "", errors.New("path is absolute, which is illegal")
	}

	newpath, err := securejoin.SecureJoin(root, dest)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(newpath), nil
}
