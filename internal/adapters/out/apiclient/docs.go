// Package apiclient is the REST client a rider session uses to reach the
// dispatch service. Every response is the {data, errors} envelope served by
// the HTTP adapter.
package apiclient
