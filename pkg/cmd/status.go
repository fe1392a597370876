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

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/dataprep/dataprep/pkg/catalog"
	"github.com/dataprep/dataprep/pkg/dataset"
	"github.com/dataprep/dataprep/pkg/manifest"
)

const statusDesc = `
Status shows the lifecycle state of datasets: whether the archive is present,
and whether the dataset has been fully prepared.

The state is inferred from the filesystem; the manifest file is the marker of
completed preparation.
`

type statusOptions struct {
	names []string
	root  string
}

func newStatusCmd(out io.Writer) *cobra.Command {
	o := &statusOptions{}

	cmd := &cobra.Command{
		Use:   "status [NAME ...]",
		Short: "show the lifecycle state of datasets",
		Long:  statusDesc,
		RunE: func(_ *cobra.Command, args []string) error {
			o.names = args
			return o.run(out)
		},
	}

	cmd.Flags().StringVar(&o.root, "root", "", "preparation root (defaults to the data root)")

	return cmd
}

func (o *statusOptions) run(out io.Writer) error {
	f, err := catalog.LoadFile(settings.CatalogConfig)
	if err != nil {
		return err
	}
	entries, err := selectEntries(f, o.names)
	if err != nil {
		return err
	}

	table := uitable.New()
	table.AddRow("NAME", "STATE", "PREPARED AT", "PATH")
	for _, e := range entries {
		p, err := preparerFor(e, o.root, io.Discard)
		if err != nil {
			return err
		}

		state := p.State()
		preparedAt := ""
		path := ""
		if state == dataset.StatePrepared {
			path = p.ExtractedPath()
			if m, err := manifest.Load(p.ManifestPath()); err == nil {
				preparedAt = m.PreparedAt
			}
		}
		table.AddRow(e.Name, state.String(), preparedAt, path)
	}
	fmt.Fprintln(out, table)
	return nil
}
