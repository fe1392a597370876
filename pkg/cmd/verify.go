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

	"github.com/spf13/cobra"

	"github.com/dataprep/dataprep/pkg/catalog"
	"github.com/dataprep/dataprep/pkg/cli/require"
)

const verifyDesc = `
Verify recomputes the checksum of a dataset's downloaded archive and compares
it to the catalog's expected checksum.

A mismatched archive is deleted, so the next prepare run downloads a fresh
copy.
`

type verifyOptions struct {
	name string
	root string
}

func newVerifyCmd(out io.Writer) *cobra.Command {
	o := &verifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify NAME",
		Short: "verify the checksum of a dataset's archive",
		Long:  verifyDesc,
		Args:  require.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			o.name = args[0]
			return o.run(out)
		},
	}

	cmd.Flags().StringVar(&o.root, "root", "", "preparation root (defaults to the data root)")

	return cmd
}

func (o *verifyOptions) run(out io.Writer) error {
	f, err := catalog.LoadFile(settings.CatalogConfig)
	if err != nil {
		return err
	}
	entries, err := selectEntries(f, []string{o.name})
	if err != nil {
		return err
	}

	p, err := preparerFor(entries[0], o.root, out)
	if err != nil {
		return err
	}
	if err := p.Verify(); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: archive checksum ok\n", o.name)
	return nil
}
