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

package preppath

import (
	"path/filepath"
	"testing"

	"github.com/dataprep/dataprep/pkg/preppath/xdg"
)

func TestAppEnvVarWins(t *testing.T) {
	t.Setenv(ConfigHomeEnvVar, "/custom/config")
	t.Setenv(xdg.ConfigHomeEnvVar, "/xdg/config")

	got := ConfigPath("catalog.yaml")
	want := filepath.Join("/custom/config", "catalog.yaml")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestXDGFallback(t *testing.T) {
	t.Setenv(ConfigHomeEnvVar, "")
	t.Setenv(xdg.ConfigHomeEnvVar, "/xdg/config")

	got := ConfigPath("catalog.yaml")
	want := filepath.Join("/xdg/config", "dataprep", "catalog.yaml")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDataRoot(t *testing.T) {
	t.Setenv(DataHomeEnvVar, "/data")
	got := DataRoot()
	want := filepath.Join("/data", "datasets")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
