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

// Package version represents the current version of the project.
package version

import "fmt"

// version is the current version of dataprep.
// Update this whenever making a new release.
// The version is of the format Major.Minor.Patch[-Prerelease]
var version = "v0.3.0"

// metadata is extra build time data
var metadata = ""

// GetVersion returns the semver string of the version
func GetVersion() string {
	if metadata == "" {
		return version
	}
	return version + "+" + metadata
}

// GetUserAgent returns a user agent for use with an HTTP client
func GetUserAgent() string {
	return fmt.Sprintf("dataprep/%s", GetVersion())
}
