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

/*
Package cli describes the operating environment for the dataprep CLI.

The environment is populated from DATAPREP_* environment variables and can be
overridden per invocation with flags.
*/
package cli

import (
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"github.com/dataprep/dataprep/pkg/preppath"
)

// EnvSettings describes all of the environment settings.
type EnvSettings struct {
	// Debug indicates whether or not dataprep is running in Debug mode.
	Debug bool
	// CatalogConfig is the path to the catalog file.
	CatalogConfig string
	// DataRoot is the default preparation root for datasets.
	DataRoot string
	// LockTimeout is how long to wait for the preparation lock.
	LockTimeout time.Duration
}

// New builds the settings from the environment.
func New() *EnvSettings {
	env := &EnvSettings{
		CatalogConfig: envOr("DATAPREP_CATALOG_CONFIG", preppath.CatalogFile()),
		DataRoot:      envOr("DATAPREP_DATA_ROOT", preppath.DataRoot()),
		LockTimeout:   30 * time.Second,
	}
	env.Debug, _ = strconv.ParseBool(os.Getenv("DATAPREP_DEBUG"))
	return env
}

// AddFlags binds flags to the given flagset.
func (s *EnvSettings) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&s.Debug, "debug", s.Debug, "enable verbose output")
	fs.StringVar(&s.CatalogConfig, "catalog-config", s.CatalogConfig, "path to the file containing dataset names, URLs and checksums")
	fs.StringVar(&s.DataRoot, "data-root", s.DataRoot, "directory datasets are prepared under")
	fs.DurationVar(&s.LockTimeout, "lock-timeout", s.LockTimeout, "time to wait for the preparation lock")
}

// EnvVars returns the environment variables dataprep exposes to subprocesses.
func (s *EnvSettings) EnvVars() map[string]string {
	return map[string]string{
		"DATAPREP_BIN":            os.Args[0],
		"DATAPREP_CACHE_HOME":     preppath.CachePath(""),
		"DATAPREP_CONFIG_HOME":    preppath.ConfigPath(""),
		"DATAPREP_DATA_HOME":      preppath.DataPath(""),
		"DATAPREP_DEBUG":          strconv.FormatBool(s.Debug),
		"DATAPREP_CATALOG_CONFIG": s.CatalogConfig,
		"DATAPREP_DATA_ROOT":      s.DataRoot,
	}
}

func envOr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return def
}
