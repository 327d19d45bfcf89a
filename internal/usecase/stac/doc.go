// Package stac talks to remote STAC catalogs and APIs on behalf of the directory.
//
// Verifier checks that a submitted catalog URL serves a STAC root document.
// Proxy fetches a remote STAC document and rewrites its navigation links so a
// browser can keep following them through this service.
package stac
