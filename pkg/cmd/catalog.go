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
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const catalogDesc = `
This command consists of multiple subcommands to interact with the catalog:
the file that maps dataset names to their source URL and expected checksum.

It can be used to add, remove and list datasets.
`

func newCatalogCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog add|list|remove",
		Short: "add, list or remove catalog datasets",
		Long:  catalogDesc,
	}

	cmd.AddCommand(
		newCatalogAddCmd(out),
		newCatalogListCmd(out),
		newCatalogRemoveCmd(out),
	)

	return cmd
}

// lockCatalog acquires an advisory file lock for process synchronization on
// catalog writes. The returned function releases the lock.
func lockCatalog(catalogFile string, timeout time.Duration) (func(), error) {
	catalogFileExt := filepath.Ext(catalogFile)
	var lockPath string
	if len(catalogFileExt) > 0 && len(catalogFileExt) < len(catalogFile) {
		lockPath = strings.TrimSuffix(catalogFile, catalogFileExt) + ".lock"
	} else {
		lockPath = catalogFile + ".lock"
	}

	fileLock := flock.New(lockPath)
	lockCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, time.Second)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to lock %s", lockPath)
	}
	if !locked {
		return nil, errors.Errorf("unable to lock %s within %s", lockPath, timeout)
	}
	return func() { fileLock.Unlock() }, nil
}
