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

package getter

import (
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// options are generic parameters to be provided to the getter during
// instantiation.
//
// Getters may or may not ignore these parameters as they are passed in.
type options struct {
	url       string
	username  string
	password  string
	userAgent string
	timeout   time.Duration
	transport *http.Transport
}

// Option allows specifying various settings configurable by the user for
// overriding the defaults used when performing Get operations with the Getter.
type Option func(*options)

// WithURL informs the getter the server name that will be used when fetching
// objects.
func WithURL(url string) Option {
	return func(opts *options) {
		opts.url = url
	}
}

// WithBasicAuth sets the request's Authorization header to use the provided
// credentials.
func WithBasicAuth(username, password string) Option {
	return func(opts *options) {
		opts.username = username
		opts.password = password
	}
}

// WithUserAgent sets the request's User-Agent header to use the provided
// agent name.
func WithUserAgent(userAgent string) Option {
	return func(opts *options) {
		opts.userAgent = userAgent
	}
}

// WithTimeout sets the timeout for requests.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *options) {
		opts.timeout = timeout
	}
}

// WithTransport sets the http.Transport to allow overwriting the HTTPGetter
// default.
func WithTransport(transport *http.Transport) Option {
	return func(opts *options) {
		opts.transport = transport
	}
}

// Response is a fetched remote resource.
//
// Body streams the resource's bytes; the caller owns it and must close it on
// every exit path. ContentLength is the total size declared by the source,
// or -1 when the source does not declare one.
type Response struct {
	Body          io.ReadCloser
	ContentLength int64
}

// Close closes the response body.
func (r *Response) Close() error {
	return r.Body.Close()
}

// Getter is an interface to support GET of the specified location.
//
// Implementations stream the resource rather than buffering it whole, so a
// Getter can serve archives larger than memory.
type Getter interface {
	// Get fetches the resource at the given location.
	Get(location string, options ...Option) (*Response, error)
}

// Constructor is the function for every getter which creates a specific
// instance according to the configuration.
type Constructor func(options ...Option) (Getter, error)

// Provider represents any getter and the schemes that it supports.
//
// For example, an HTTP provider may provide one getter that handles both
// 'http' and 'https' schemes.
type Provider struct {
	Schemes []string
	New     Constructor
}

// Provides returns true if the given scheme is supported by this Provider.
func (p Provider) Provides(scheme string) bool {
	for _, i := range p.Schemes {
		if i == scheme {
			return true
		}
	}
	return false
}

// Providers is a collection of Provider objects.
type Providers []Provider

// ByScheme returns a Getter from the Provider that handles the given scheme.
//
// If no provider handles this scheme, this will return an error.
func (p Providers) ByScheme(scheme string) (Getter, error) {
	for _, pp := range p {
		if pp.Provides(scheme) {
			return pp.New()
		}
	}
	return nil, errors.Errorf("scheme %q not supported", scheme)
}

// ForLocation returns a Getter that handles the given source location, based
// on the location's URL scheme. A location with no scheme is treated as a
// local file path.
func (p Providers) ForLocation(location string) (Getter, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid source location %q", location)
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = "file"
	}
	return p.ByScheme(scheme)
}

// DefaultHTTPTimeout is the default timeout, in seconds, on HTTP fetches.
// Archive downloads can be large, so this is deliberately generous.
const DefaultHTTPTimeout = 300

var defaultOptions = []Option{WithTimeout(time.Second * DefaultHTTPTimeout)}

// All finds all of the registered getters as a list of Provider instances.
func All(extraOpts ...Option) Providers {
	return Providers{
		Provider{
			Schemes: []string{"http", "https"},
			New: func(options ...Option) (Getter, error) {
				options = append(options, defaultOptions...)
				options = append(options, extraOpts...)
				return NewHTTPGetter(options...)
			},
		},
		Provider{
			Schemes: []string{"file"},
			New:     NewFileGetter,
		},
	}
}
