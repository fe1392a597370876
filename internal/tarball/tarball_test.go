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

package tarball

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func buildFixtureDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "sample")
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "a.txt"), []byte("alpha"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "sub", "b.txt"), []byte("beta"), 0644); err != nil {
		t.Fatal(err)
	}
	return src
}

func TestCreateExtractRoundTrip(t *testing.T) {
	src := buildFixtureDir(t)

	buf := &bytes.Buffer{}
	if err := Create(src, buf); err != nil {
		t.Fatal(err)
	}

	dest := t.TempDir()
	if err := Extract(buf, dest); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "sample", "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "alpha" {
		t.Errorf("expected alpha, got %q", string(got))
	}

	got, err = os.ReadFile(filepath.Join(dest, "sample", "sub", "b.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "beta" {
		t.Errorf("expected beta, got %q", string(got))
	}
}

func TestExtractFile(t *testing.T) {
	src := buildFixtureDir(t)
	archive := filepath.Join(t.TempDir(), "sample.tgz")
	if err := CreateFile(src, archive); err != nil {
		t.Fatal(err)
	}

	dest := t.TempDir()
	if err := ExtractFile(archive, dest); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dest, "sample", "a.txt")); err != nil {
		t.Errorf("expected extracted file: %s", err)
	}
}

func TestExtractRejectsMalformedInput(t *testing.T) {
	err := Extract(bytes.NewReader([]byte("not a gzip stream")), t.TempDir())
	if err == nil {
		t.Error("expected error for malformed archive")
	}
}

// A tar entry must not be able to escape the target directory.
func TestExtractRejectsPathTraversal(t *testing.T) {
	buf := &bytes.Buffer{}
	zr := gzip.NewWriter(buf)
	tw := tar.NewWriter(zr)
	content := []byte("evil")
	if err := tw.WriteHeader(&tar.Header{
		Name:     "../escape.txt",
		Mode:     0644,
		Size:     int64(len(content)),
		Typeflag: tar.TypeReg,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatal(err)
	}
	tw.Close()
	zr.Close()

	if err := Extract(buf, t.TempDir()); err == nil {
		t.Error("expected error for path traversal entry")
	}
}

func TestCleanJoin(t *testing.T) {
	for _, bad := range []string{"a:b", "../up", "a/../../b", "/abs"} {
		if _, err := cleanJoin("/tmp/root", bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
	got, err := cleanJoin("/tmp/root", "sub/ok.txt")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.ToSlash(filepath.Join("/tmp/root", "sub", "ok.txt"))
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
