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

	"github.com/dataprep/dataprep/internal/checksum"
	"github.com/dataprep/dataprep/internal/tarball"
	"github.com/dataprep/dataprep/pkg/cli/require"
)

const archiveDesc = `
Archive packs a directory into a gzip-compressed tar archive suitable for
serving as a dataset source, and prints the archive's MD5 checksum to record
in the catalog.

The directory becomes the archive's single top-level entry, which is what
prepare expects when it extracts.
`

func newArchiveCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "archive SRCDIR DEST.tgz",
		Short: "pack a directory into a dataset archive",
		Long:  archiveDesc,
		Args:  require.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			src, dest := args[0], args[1]

			if err := tarball.CreateFile(src, dest); err != nil {
				return err
			}

			sum, err := checksum.DigestFile(dest)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Successfully packaged %s\n", dest)
			fmt.Fprintf(out, "checksum: %s\n", sum)
			return nil
		},
	}
}
