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

package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataprep/dataprep/internal/checksum"
	"github.com/dataprep/dataprep/internal/tarball"
)

// executeCommand runs the root command with the given args and returns its
// human-readable output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	root := NewRootCmd(buf)
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.Execute()
	return buf.String(), err
}

// fixtureSource builds a dataset fixture directory, packs it to a local tgz
// and returns the archive path and its checksum.
func fixtureSource(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	src := filepath.Join(dir, "iris")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "iris.csv"), []byte("sepal,petal\n"), 0644))

	archive := filepath.Join(dir, "iris.tgz")
	require.NoError(t, tarball.CreateFile(src, archive))

	sum, err := checksum.DigestFile(archive)
	require.NoError(t, err)
	return archive, sum
}

func setupEnv(t *testing.T) {
	t.Helper()
	tmp := t.TempDir()
	settings.CatalogConfig = filepath.Join(tmp, "catalog.yaml")
	settings.DataRoot = filepath.Join(tmp, "datasets")
}

func TestCatalogAddListRemove(t *testing.T) {
	setupEnv(t)
	archive, sum := fixtureSource(t)

	out, err := executeCommand(t, "catalog", "add", "iris", "--url", archive, "--checksum", sum)
	require.NoError(t, err)
	assert.Contains(t, out, `"iris" has been added to your catalog`)

	// Adding the same configuration again is idempotent.
	out, err = executeCommand(t, "catalog", "add", "iris", "--url", archive, "--checksum", sum)
	require.NoError(t, err)
	assert.Contains(t, out, "skipping")

	// A different configuration without --force-update is rejected.
	_, err = executeCommand(t, "catalog", "add", "iris", "--url", archive, "--checksum", strings.Repeat("0", 32))
	assert.Error(t, err)

	out, err = executeCommand(t, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "iris")
	assert.Contains(t, out, sum)

	out, err = executeCommand(t, "catalog", "remove", "iris")
	require.NoError(t, err)
	assert.Contains(t, out, `"iris" has been removed from your catalog`)

	_, err = executeCommand(t, "catalog", "remove", "iris")
	assert.Error(t, err)
}

func TestPrepareStatusRemove(t *testing.T) {
	setupEnv(t)
	archive, sum := fixtureSource(t)

	_, err := executeCommand(t, "catalog", "add", "iris", "--url", archive, "--checksum", sum)
	require.NoError(t, err)

	out, err := executeCommand(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "not present")

	out, err = executeCommand(t, "prepare", "iris")
	require.NoError(t, err)
	assert.Contains(t, out, "iris is ready at")
	assert.FileExists(t, filepath.Join(settings.DataRoot, "iris", "iris.csv"))

	out, err = executeCommand(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "prepared")

	out, err = executeCommand(t, "remove", "iris")
	require.NoError(t, err)
	assert.Contains(t, out, "iris has been removed")
	assert.NoFileExists(t, filepath.Join(settings.DataRoot, "iris", "iris.csv"))
}

func TestPrepareAdHoc(t *testing.T) {
	setupEnv(t)
	archive, sum := fixtureSource(t)

	out, err := executeCommand(t, "prepare", "iris", "--url", archive, "--checksum", sum)
	require.NoError(t, err)
	assert.Contains(t, out, "iris is ready at")

	// --url without a checksum is rejected.
	_, err = executeCommand(t, "prepare", "iris", "--url", archive, "--checksum", "")
	assert.Error(t, err)
}

func TestPrepareUnknownDataset(t *testing.T) {
	setupEnv(t)
	archive, sum := fixtureSource(t)

	_, err := executeCommand(t, "catalog", "add", "iris", "--url", archive, "--checksum", sum)
	require.NoError(t, err)

	_, err = executeCommand(t, "prepare", "nonesuch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in catalog")
}

func TestVerifyCommand(t *testing.T) {
	setupEnv(t)
	archive, sum := fixtureSource(t)

	_, err := executeCommand(t, "catalog", "add", "iris", "--url", archive, "--checksum", sum)
	require.NoError(t, err)

	_, err = executeCommand(t, "prepare", "iris")
	require.NoError(t, err)

	out, err := executeCommand(t, "verify", "iris")
	require.NoError(t, err)
	assert.Contains(t, out, "archive checksum ok")
}

func TestArchiveCommand(t *testing.T) {
	setupEnv(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "blobs")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.bin"), []byte{1, 2, 3}, 0644))

	dest := filepath.Join(dir, "blobs.tgz")
	out, err := executeCommand(t, "archive", src, dest)
	require.NoError(t, err)
	assert.FileExists(t, dest)
	assert.Contains(t, out, "checksum: ")

	sum, err := checksum.DigestFile(dest)
	require.NoError(t, err)
	assert.Contains(t, out, sum)
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "v"), "version output %q", out)
}
