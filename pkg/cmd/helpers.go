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
	"io"

	"github.com/pkg/errors"

	"github.com/dataprep/dataprep/pkg/catalog"
	"github.com/dataprep/dataprep/pkg/dataset"
)

// selectEntries resolves the requested dataset names against the catalog.
// With no names, every catalog entry is selected.
func selectEntries(f *catalog.File, names []string) ([]*catalog.Entry, error) {
	if len(names) == 0 {
		return f.Datasets, nil
	}
	var out []*catalog.Entry
	for _, name := range names {
		e := f.Get(name)
		if e == nil {
			return nil, errors.Errorf("dataset %q not found in catalog", name)
		}
		out = append(out, e)
	}
	return out, nil
}

// rootFor picks the preparation root for an entry: an explicit override wins,
// then the entry's own root, then the configured data root.
func rootFor(e *catalog.Entry, override string) string {
	if override != "" {
		return override
	}
	if e.Root != "" {
		return e.Root
	}
	return settings.DataRoot
}

// preparerFor builds a preparer for a catalog entry.
func preparerFor(e *catalog.Entry, rootOverride string, out io.Writer) (*dataset.Preparer, error) {
	return dataset.NewPreparer(e.Descriptor(), rootFor(e, rootOverride),
		dataset.WithOutput(out),
		dataset.WithLockTimeout(settings.LockTimeout),
	)
}
