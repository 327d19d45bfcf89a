// Package middleware holds the cross-origin and per-client rate limiting
// middleware of the STAC index API.
package middleware
