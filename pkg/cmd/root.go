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

// Package cmd provides the dataprep command line interface.
package cmd

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dataprep/dataprep/pkg/cli"
)

const globalUsage = `Dataprep manages reproducible external data artifacts.

For each dataset it downloads the source archive, verifies its checksum,
extracts it under the preparation root, and records a manifest so later runs
skip work that is already done.

Common actions:

- dataprep catalog add NAME --url URL --checksum MD5: register a dataset
- dataprep prepare NAME: download, verify and extract it
- dataprep status: see the lifecycle state of every dataset

Environment variables:

| Name                    | Description                                     |
|-------------------------|-------------------------------------------------|
| $DATAPREP_CATALOG_CONFIG| Path to the catalog file.                       |
| $DATAPREP_DATA_ROOT     | Directory datasets are prepared under.          |
| $DATAPREP_DEBUG         | Indicate whether or not dataprep is debugging.  |
`

var settings = cli.New()

// NewRootCmd builds the dataprep root command.
func NewRootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dataprep",
		Short:        "prepare reproducible data artifacts",
		Long:         globalUsage,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if settings.Debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	flags := cmd.PersistentFlags()
	settings.AddFlags(flags)

	cmd.AddCommand(
		newPrepareCmd(out),
		newVerifyCmd(out),
		newStatusCmd(out),
		newRemoveCmd(out),
		newCatalogCmd(out),
		newArchiveCmd(out),
		newVersionCmd(out),
	)

	return cmd
}
