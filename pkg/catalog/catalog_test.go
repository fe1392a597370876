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

package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

const testCatalog = `apiVersion: v1
generated: "2026-08-27T10:00:00Z"
datasets:
- name: iris
  url: https://example.com/datasets/iris.tgz
  checksum: 0123456789abcdef0123456789abcdef
- name: mnist
  url: https://example.com/datasets/mnist-v2.tar.gz
  checksum: fedcba9876543210fedcba9876543210
  archiveName: mnist.tar.gz
  extractedDir: mnist
  root: /srv/data/mnist
`

func TestNewFile(t *testing.T) {
	f := NewFile()
	if f.APIVersion != APIVersionV1 {
		t.Errorf("expected apiVersion %q, got %q", APIVersionV1, f.APIVersion)
	}
	if len(f.Datasets) != 0 {
		t.Errorf("expected empty catalog, got %d entries", len(f.Datasets))
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(testCatalog), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Datasets) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(f.Datasets))
	}
	if !f.Has("iris") || !f.Has("mnist") {
		t.Error("expected catalog to have iris and mnist")
	}
	if f.Get("mnist").Root != "/srv/data/mnist" {
		t.Errorf("unexpected root: %q", f.Get("mnist").Root)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing catalog")
	}
}

func TestAddUpdateRemove(t *testing.T) {
	f := NewFile()
	f.Add(&Entry{Name: "iris", URL: "https://example.com/iris.tgz", Checksum: "aa"})

	if !f.Has("iris") {
		t.Error("expected iris after Add")
	}

	f.Update(&Entry{Name: "iris", URL: "https://mirror.example.com/iris.tgz", Checksum: "bb"})
	if len(f.Datasets) != 1 {
		t.Fatalf("Update must replace, got %d entries", len(f.Datasets))
	}
	if f.Get("iris").Checksum != "bb" {
		t.Error("expected updated checksum")
	}

	f.Update(&Entry{Name: "mnist", URL: "https://example.com/mnist.tgz", Checksum: "cc"})
	if len(f.Datasets) != 2 {
		t.Fatalf("Update must add missing entries, got %d", len(f.Datasets))
	}

	if !f.Remove("iris") {
		t.Error("expected Remove to report the entry existed")
	}
	if f.Has("iris") {
		t.Error("expected iris to be gone")
	}
	if f.Remove("iris") {
		t.Error("expected Remove of a missing entry to report false")
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")

	f := NewFile()
	f.Add(&Entry{Name: "iris", URL: "https://example.com/iris.tgz", Checksum: "aa"})
	if err := f.WriteFile(path, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Has("iris") {
		t.Error("expected iris after round trip")
	}
}

func TestEntryDescriptorDefaults(t *testing.T) {
	e := &Entry{
		Name:     "iris",
		URL:      "https://example.com/datasets/iris.tgz",
		Checksum: "aa",
	}
	d := e.Descriptor()
	if d.ArchiveName != "iris.tgz" {
		t.Errorf("expected archive name iris.tgz, got %q", d.ArchiveName)
	}
	if d.ExtractedDir != "iris" {
		t.Errorf("expected extracted dir iris, got %q", d.ExtractedDir)
	}

	e = &Entry{
		Name:     "mnist",
		URL:      "https://example.com/m.tar.gz",
		Checksum: "bb",
	}
	d = e.Descriptor()
	if d.ExtractedDir != "m" {
		t.Errorf("expected extracted dir m, got %q", d.ExtractedDir)
	}

	e = &Entry{
		Name:         "custom",
		URL:          "https://example.com/blob.tgz",
		Checksum:     "cc",
		ArchiveName:  "custom.tgz",
		ExtractedDir: "custom-data",
	}
	d = e.Descriptor()
	if d.ArchiveName != "custom.tgz" || d.ExtractedDir != "custom-data" {
		t.Errorf("explicit names must win, got %q %q", d.ArchiveName, d.ExtractedDir)
	}
}
