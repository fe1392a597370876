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

// Package dataset drives the preparation lifecycle of a reproducible data
// artifact: download the archive, verify its digest, unpack it and record a
// manifest so future runs can skip all of it.
package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dataprep/dataprep/internal/checksum"
	"github.com/dataprep/dataprep/internal/tarball"
	"github.com/dataprep/dataprep/pkg/getter"
	"github.com/dataprep/dataprep/pkg/manifest"
)

// downloadChunkSize bounds the memory used while streaming the archive to
// disk. It is an implementation detail, not a contract.
const downloadChunkSize = 8192

// DefaultLockTimeout is how long Prepare waits to acquire the advisory lock
// on the preparation root before giving up.
const DefaultLockTimeout = 30 * time.Second

// State is the preparation state inferred from filesystem evidence.
type State int

const (
	// StateNotPresent means neither archive nor prepared dataset exist.
	StateNotPresent State = iota
	// StateArchived means the archive is on disk but preparation did not
	// complete. The archive is re-verified before it is trusted.
	StateArchived
	// StatePrepared means the extracted directory and manifest both exist.
	// This state is terminal; Prepare short-circuits on it.
	StatePrepared
)

func (s State) String() string {
	switch s {
	case StateArchived:
		return "archived"
	case StatePrepared:
		return "prepared"
	default:
		return "not present"
	}
}

// Preparer drives one dataset from "possibly nothing on disk" to "verified,
// extracted, manifest recorded" under a single root directory.
//
// A Preparer holds no state beyond its configuration: the lifecycle state
// lives entirely on the filesystem, with the manifest file as the durable
// commit marker.
type Preparer struct {
	desc        Descriptor
	root        string
	out         io.Writer
	getters     getter.Providers
	lockTimeout time.Duration
	noLock      bool
	log         *logrus.Entry
}

// PreparerOption configures a Preparer.
type PreparerOption func(*Preparer)

// WithOutput directs human-readable progress to w. By default progress is
// discarded.
func WithOutput(w io.Writer) PreparerOption {
	return func(p *Preparer) { p.out = w }
}

// WithGetters overrides the set of source providers used to fetch archives.
func WithGetters(g getter.Providers) PreparerOption {
	return func(p *Preparer) { p.getters = g }
}

// WithLockTimeout overrides how long Prepare waits for the advisory lock.
func WithLockTimeout(d time.Duration) PreparerOption {
	return func(p *Preparer) { p.lockTimeout = d }
}

// WithoutLock disables the advisory file lock. Only safe when the caller
// guarantees a single preparer per root.
func WithoutLock() PreparerOption {
	return func(p *Preparer) { p.noLock = true }
}

// NewPreparer builds a Preparer for the dataset described by desc, rooted at
// root. The root directory (including parents) is created if absent.
func NewPreparer(desc Descriptor, root string, opts ...PreparerOption) (*Preparer, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, &FilesystemError{Op: "create", Path: root, Err: err}
	}

	p := &Preparer{
		desc:        desc,
		root:        root,
		out:         io.Discard,
		getters:     getter.All(),
		lockTimeout: DefaultLockTimeout,
		log:         logrus.WithField("dataset", desc.Name),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Descriptor returns the immutable descriptor this preparer was built with.
func (p *Preparer) Descriptor() Descriptor { return p.desc }

// Root returns the preparation root directory.
func (p *Preparer) Root() string { return p.root }

// ArchivePath returns the path of the downloaded archive.
func (p *Preparer) ArchivePath() string {
	return filepath.Join(p.root, p.desc.ArchiveName)
}

// ExtractedPath returns the path of the extracted dataset directory.
func (p *Preparer) ExtractedPath() string {
	return filepath.Join(p.root, p.desc.ExtractedDir)
}

// ManifestPath returns the path of the dataset manifest.
func (p *Preparer) ManifestPath() string {
	return filepath.Join(p.root, manifest.FileName(p.desc.Name))
}

// State probes the filesystem and reports the current preparation state.
func (p *Preparer) State() State {
	if p.prepared() {
		return StatePrepared
	}
	if _, err := os.Stat(p.ArchivePath()); err == nil {
		return StateArchived
	}
	return StateNotPresent
}

// Prepare ensures the dataset is downloaded, verified, extracted and
// accompanied by a manifest, and returns the extracted directory path.
//
// When the extracted directory and the manifest both already exist the call
// returns immediately: prior completion is trusted and no work is redone.
// Otherwise the remaining steps run under an advisory file lock: the archive
// is downloaded if absent, its digest is always re-verified (a leftover
// archive from an interrupted run may be truncated), it is unpacked into the
// root, and the manifest is written last as the commit marker.
//
// On a digest mismatch the corrupt archive is deleted before the integrity
// error is returned, so the next call re-downloads instead of being stuck
// behind a permanently bad file.
func (p *Preparer) Prepare(ctx context.Context) (string, error) {
	if p.prepared() {
		p.log.Debug("dataset already prepared, skipping")
		return p.ExtractedPath(), nil
	}

	unlock, err := p.acquireLock(ctx)
	if err != nil {
		return "", err
	}
	defer unlock()

	// Another process may have completed preparation while we waited on the
	// lock.
	if p.prepared() {
		return p.ExtractedPath(), nil
	}

	if _, err := os.Stat(p.ArchivePath()); err != nil {
		if !os.IsNotExist(err) {
			return "", &FilesystemError{Op: "stat", Path: p.ArchivePath(), Err: err}
		}
		if err := p.download(); err != nil {
			return "", err
		}
	}

	if err := p.verify(); err != nil {
		return "", err
	}

	if err := p.extract(); err != nil {
		return "", err
	}

	if err := p.writeManifest(); err != nil {
		return "", err
	}

	return p.ExtractedPath(), nil
}

// Verify recomputes the archive digest and checks it against the descriptor.
// Like the verification step of Prepare, a mismatched archive is deleted so
// the next Prepare call re-downloads it.
func (p *Preparer) Verify() error {
	return p.verify()
}

func (p *Preparer) prepared() bool {
	if _, err := os.Stat(p.ExtractedPath()); err != nil {
		return false
	}
	if _, err := os.Stat(p.ManifestPath()); err != nil {
		return false
	}
	return true
}

func (p *Preparer) acquireLock(ctx context.Context) (func(), error) {
	if p.noLock {
		return func() {}, nil
	}

	lockPath := strings.TrimSuffix(p.ManifestPath(), ".json") + ".lock"
	fileLock := flock.New(lockPath)

	lockCtx, cancel := context.WithTimeout(ctx, p.lockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, time.Second)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to lock %s", lockPath)
	}
	if !locked {
		return nil, errors.Errorf("unable to lock %s within %s", lockPath, p.lockTimeout)
	}
	return func() { fileLock.Unlock() }, nil
}

func (p *Preparer) download() error {
	fmt.Fprintf(p.out, "Downloading %s → %s\n", p.desc.Name, p.ArchivePath())

	g, err := p.getters.ForLocation(p.desc.SourceURL)
	if err != nil {
		return &TransportError{Source: p.desc.SourceURL, Err: err}
	}

	resp, err := g.Get(p.desc.SourceURL, getter.WithURL(p.desc.SourceURL))
	if err != nil {
		return &TransportError{Source: p.desc.SourceURL, Err: err}
	}
	defer resp.Close()

	f, err := os.Create(p.ArchivePath())
	if err != nil {
		return &FilesystemError{Op: "create", Path: p.ArchivePath(), Err: err}
	}

	meter := newProgressMeter(p.out, p.desc.Name, resp.ContentLength)
	buf := make([]byte, downloadChunkSize)
	written, copyErr := io.CopyBuffer(io.MultiWriter(f, meter), resp.Body, buf)
	closeErr := f.Close()
	meter.finish()

	if copyErr != nil {
		// Do not leave a truncated archive behind; the next call must start
		// with a fresh download.
		os.Remove(p.ArchivePath())
		return &TransportError{Source: p.desc.SourceURL, Err: copyErr}
	}
	if closeErr != nil {
		os.Remove(p.ArchivePath())
		return &FilesystemError{Op: "write", Path: p.ArchivePath(), Err: closeErr}
	}

	p.log.WithFields(logrus.Fields{
		"bytes":   written,
		"archive": p.ArchivePath(),
	}).Debug("downloaded archive")
	return nil
}

func (p *Preparer) verify() error {
	sum, err := checksum.DigestFile(p.ArchivePath())
	if err != nil {
		return &FilesystemError{Op: "read", Path: p.ArchivePath(), Err: err}
	}

	if !checksum.Equal(sum, p.desc.Checksum) {
		// Remove the corrupted archive to force re-download on the next run.
		// The file already being gone is not an error.
		if err := os.Remove(p.ArchivePath()); err != nil && !os.IsNotExist(err) {
			p.log.WithError(err).Warn("unable to remove corrupt archive")
		}
		return &IntegrityError{Dataset: p.desc.Name, Want: p.desc.Checksum, Got: sum}
	}

	p.log.WithField("checksum", sum).Debug("archive digest verified")
	return nil
}

func (p *Preparer) extract() error {
	fmt.Fprintf(p.out, "Extracting %s…\n", p.desc.Name)

	if err := tarball.ExtractFile(p.ArchivePath(), p.root); err != nil {
		return &ExtractionError{Archive: p.ArchivePath(), Err: err}
	}

	p.log.WithField("path", p.ExtractedPath()).Debug("archive extracted")
	return nil
}

func (p *Preparer) writeManifest() error {
	datasetPath, err := filepath.Abs(p.ExtractedPath())
	if err != nil {
		return &FilesystemError{Op: "resolve", Path: p.ExtractedPath(), Err: err}
	}
	archivePath, err := filepath.Abs(p.ArchivePath())
	if err != nil {
		return &FilesystemError{Op: "resolve", Path: p.ArchivePath(), Err: err}
	}

	m := &manifest.Manifest{
		Name:        p.desc.Name,
		SourceURL:   p.desc.SourceURL,
		ArchiveName: p.desc.ArchiveName,
		Checksum:    p.desc.Checksum,
		PreparedAt:  time.Now().UTC().Format(time.RFC3339),
		DatasetPath: datasetPath,
		ArchivePath: archivePath,
	}
	if err := m.Write(p.ManifestPath()); err != nil {
		return &FilesystemError{Op: "write", Path: p.ManifestPath(), Err: err}
	}

	p.log.WithField("manifest", p.ManifestPath()).Debug("manifest recorded")
	return nil
}
