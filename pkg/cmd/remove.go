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
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dataprep/dataprep/pkg/catalog"
	"github.com/dataprep/dataprep/pkg/cli/require"
)

const removeDesc = `
Remove deletes a dataset's prepared state from disk: the extracted directory,
the manifest, and (unless --keep-archive is given) the downloaded archive.

The catalog entry itself is untouched; use 'dataprep catalog remove' for that.
`

type removeOptions struct {
	names       []string
	root        string
	keepArchive bool
}

func newRemoveCmd(out io.Writer) *cobra.Command {
	o := &removeOptions{}

	cmd := &cobra.Command{
		Use:   "remove NAME [NAME ...]",
		Short: "delete a dataset's prepared state from disk",
		Long:  removeDesc,
		Args:  require.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			o.names = args
			return o.run(out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.root, "root", "", "preparation root (defaults to the data root)")
	f.BoolVar(&o.keepArchive, "keep-archive", false, "keep the downloaded archive")

	return cmd
}

func (o *removeOptions) run(out io.Writer) error {
	f, err := catalog.LoadFile(settings.CatalogConfig)
	if err != nil {
		return err
	}
	entries, err := selectEntries(f, o.names)
	if err != nil {
		return err
	}

	for _, e := range entries {
		p, err := preparerFor(e, o.root, io.Discard)
		if err != nil {
			return err
		}

		if err := os.RemoveAll(p.ExtractedPath()); err != nil {
			return err
		}
		if err := os.Remove(p.ManifestPath()); err != nil && !os.IsNotExist(err) {
			return err
		}
		if !o.keepArchive {
			if err := os.Remove(p.ArchivePath()); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
		fmt.Fprintf(out, "%s has been removed\n", e.Name)
	}
	return nil
}
