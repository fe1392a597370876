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
	"crypto/tls"
	"net/http"
	"net/url"
	"sync"

	"github.com/pkg/errors"

	"github.com/dataprep/dataprep/internal/version"
)

// HTTPGetter is the default HTTP(/S) backend handler.
type HTTPGetter struct {
	opts      options
	transport *http.Transport
	once      sync.Once
}

// Get performs a Get from the source and returns the streamed response.
func (g *HTTPGetter) Get(location string, options ...Option) (*Response, error) {
	// Create a local copy of options to avoid data races when Get is called
	// concurrently.
	opts := g.opts
	for _, opt := range options {
		opt(&opts)
	}
	return g.get(location, opts)
}

func (g *HTTPGetter) get(href string, opts options) (*Response, error) {
	req, err := http.NewRequest(http.MethodGet, href, nil)
	if err != nil {
		return nil, err
	}

	// Set a dataprep specific user agent so that a server and its metrics can
	// separate dataprep calls from other tools fetching the same archives.
	req.Header.Set("User-Agent", version.GetUserAgent())
	if opts.userAgent != "" {
		req.Header.Set("User-Agent", opts.userAgent)
	}

	// Before setting the basic auth credentials, make sure the URL associated
	// with the basic auth is the one being fetched. Host on URL (returned from
	// url.Parse) contains the port if present. This check ensures credentials
	// are not passed between different services on different ports.
	if opts.username != "" && opts.password != "" {
		u1, err := url.Parse(opts.url)
		if err != nil {
			return nil, errors.Wrap(err, "unable to parse getter URL")
		}
		u2, err := url.Parse(href)
		if err != nil {
			return nil, errors.Wrap(err, "unable to parse URL getting from")
		}
		if u1.Scheme == u2.Scheme && u1.Host == u2.Host {
			req.SetBasicAuth(opts.username, opts.password)
		}
	}

	client := g.httpClient(opts)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("failed to fetch %s : %s", href, resp.Status)
	}

	return &Response{Body: resp.Body, ContentLength: resp.ContentLength}, nil
}

// NewHTTPGetter constructs a valid http/https client as a Getter.
func NewHTTPGetter(options ...Option) (Getter, error) {
	var client HTTPGetter

	for _, opt := range options {
		opt(&client.opts)
	}

	return &client, nil
}

func (g *HTTPGetter) httpClient(opts options) *http.Client {
	if opts.transport != nil {
		return &http.Client{
			Transport: opts.transport,
			Timeout:   opts.timeout,
		}
	}

	// Use a shared transport for the default case.
	g.once.Do(func() {
		g.transport = &http.Transport{
			DisableCompression: true,
			Proxy:              http.ProxyFromEnvironment,
			TLSClientConfig:    &tls.Config{},
		}
	})

	return &http.Client{
		Transport: g.transport,
		Timeout:   opts.timeout,
	}
}
