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

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dataprep/dataprep/pkg/catalog"
	"github.com/dataprep/dataprep/pkg/cli/require"
)

func newCatalogRemoveCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME [NAME ...]",
		Aliases: []string{"rm"},
		Short:   "remove datasets from the catalog",
		Args:    require.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			unlock, err := lockCatalog(settings.CatalogConfig, settings.LockTimeout)
			if err != nil {
				return err
			}
			defer unlock()

			f, err := catalog.LoadFile(settings.CatalogConfig)
			if err != nil {
				return err
			}

			for _, name := range args {
				if !f.Remove(name) {
					return errors.Errorf("no dataset named %q found", name)
				}
				fmt.Fprintf(out, "%q has been removed from your catalog\n", name)
			}

			return f.WriteFile(settings.CatalogConfig, 0644)
		},
	}
}
