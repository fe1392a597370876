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
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/dataprep/dataprep/pkg/catalog"
	"github.com/dataprep/dataprep/pkg/cli/require"
)

type catalogAddOptions struct {
	name         string
	url          string
	checksum     string
	archiveName  string
	extractedDir string
	root         string
	forceUpdate  bool
}

func newCatalogAddCmd(out io.Writer) *cobra.Command {
	o := &catalogAddOptions{}

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "add a dataset to the catalog",
		Args:  require.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			o.name = args[0]
			return o.run(out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.url, "url", "", "source URL of the dataset archive")
	f.StringVar(&o.checksum, "checksum", "", "expected MD5 checksum of the archive")
	f.StringVar(&o.archiveName, "archive", "", "archive file name (defaults to the URL base name)")
	f.StringVar(&o.extractedDir, "dir", "", "extracted directory name (defaults from the archive name)")
	f.StringVar(&o.root, "root", "", "preparation root override for this dataset")
	f.BoolVar(&o.forceUpdate, "force-update", false, "replace an existing entry with the same name")
	cmd.MarkFlagRequired("url")
	cmd.MarkFlagRequired("checksum")

	return cmd
}

func (o *catalogAddOptions) run(out io.Writer) error {
	// Check if the dataset name is legal.
	if strings.Contains(o.name, "/") {
		return errors.Errorf("dataset name (%s) contains '/', please specify a different name without '/'", o.name)
	}

	// Ensure the file directory exists as it is required for file locking.
	if err := os.MkdirAll(filepath.Dir(settings.CatalogConfig), os.ModePerm); err != nil && !os.IsExist(err) {
		return err
	}

	unlock, err := lockCatalog(settings.CatalogConfig, settings.LockTimeout)
	if err != nil {
		return err
	}
	defer unlock()

	b, err := os.ReadFile(settings.CatalogConfig)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	f := catalog.NewFile()
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, f); err != nil {
			return err
		}
	}

	e := &catalog.Entry{
		Name:         o.name,
		URL:          o.url,
		Checksum:     o.checksum,
		ArchiveName:  o.archiveName,
		ExtractedDir: o.extractedDir,
		Root:         o.root,
	}

	// If the entry exists do one of two things:
	// 1. If the configuration for the name is the same, continue without error.
	// 2. When the config is different, require --force-update.
	if !o.forceUpdate && f.Has(o.name) {
		if existing := f.Get(o.name); *e != *existing {
			return errors.Errorf("dataset name (%s) already exists, please specify a different name", o.name)
		}
		fmt.Fprintf(out, "%q already exists with the same configuration, skipping\n", o.name)
		return nil
	}

	f.Update(e)

	if err := f.WriteFile(settings.CatalogConfig, 0644); err != nil {
		return err
	}
	fmt.Fprintf(out, "%q has been added to your catalog\n", o.name)
	return nil
}
