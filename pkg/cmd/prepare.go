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
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dataprep/dataprep/pkg/catalog"
)

const prepareDesc = `
Prepare downloads, verifies and extracts datasets.

With no arguments every dataset in the catalog is prepared. Datasets that are
already prepared (extracted directory plus manifest present) are skipped.

An ad-hoc dataset can be prepared without touching the catalog:

    $ dataprep prepare iris --url https://example.com/iris.tgz --checksum 3a5f...

If a previous run was interrupted, prepare picks up where it is safe to do
so: a leftover archive is re-verified before it is trusted, and a corrupt one
is deleted and fetched again.
`

type prepareOptions struct {
	names        []string
	url          string
	checksum     string
	archiveName  string
	extractedDir string
	root         string
}

func newPrepareCmd(out io.Writer) *cobra.Command {
	o := &prepareOptions{}

	cmd := &cobra.Command{
		Use:   "prepare [NAME ...]",
		Short: "download, verify and extract datasets",
		Long:  prepareDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.names = args
			return o.run(cmd.Context(), out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.url, "url", "", "source URL for an ad-hoc dataset, bypassing the catalog")
	f.StringVar(&o.checksum, "checksum", "", "expected MD5 checksum for an ad-hoc dataset")
	f.StringVar(&o.archiveName, "archive", "", "archive file name (defaults to the URL base name)")
	f.StringVar(&o.extractedDir, "dir", "", "extracted directory name (defaults from the archive name)")
	f.StringVar(&o.root, "root", "", "preparation root for this run (defaults to the data root)")

	return cmd
}

func (o *prepareOptions) run(ctx context.Context, out io.Writer) error {
	entries, err := o.entries()
	if err != nil {
		return err
	}

	for _, e := range entries {
		p, err := preparerFor(e, o.root, out)
		if err != nil {
			return err
		}
		path, err := p.Prepare(ctx)
		if err != nil {
			return errors.Wrapf(err, "preparing %q", e.Name)
		}
		fmt.Fprintf(out, "%s is ready at %s\n", e.Name, path)
	}
	return nil
}

func (o *prepareOptions) entries() ([]*catalog.Entry, error) {
	if o.url != "" {
		if len(o.names) != 1 {
			return nil, errors.New("an ad-hoc --url prepare takes exactly one NAME argument")
		}
		if o.checksum == "" {
			return nil, errors.New("--checksum is required with --url")
		}
		return []*catalog.Entry{{
			Name:         o.names[0],
			URL:          o.url,
			Checksum:     o.checksum,
			ArchiveName:  o.archiveName,
			ExtractedDir: o.extractedDir,
		}}, nil
	}

	f, err := catalog.LoadFile(settings.CatalogConfig)
	if err != nil {
		return nil, err
	}
	if len(f.Datasets) == 0 {
		return nil, errors.New("no datasets in catalog. You must add one before preparing")
	}
	return selectEntries(f, o.names)
}
