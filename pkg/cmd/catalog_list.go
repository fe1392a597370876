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
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dataprep/dataprep/pkg/catalog"
	"github.com/dataprep/dataprep/pkg/cli/require"
)

func newCatalogListCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "list datasets in the catalog",
		Args:    require.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			f, err := catalog.LoadFile(settings.CatalogConfig)
			if err != nil {
				return err
			}
			if len(f.Datasets) == 0 {
				return errors.New("no datasets to show")
			}

			table := uitable.New()
			table.AddRow("NAME", "URL", "CHECKSUM")
			for _, e := range f.Datasets {
				table.AddRow(e.Name, e.URL, e.Checksum)
			}
			fmt.Fprintln(out, table)
			return nil
		},
	}
}
