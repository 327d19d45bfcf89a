// Package submission adds user-submitted catalogs, ecosystem tools and
// tutorials to the directory.
//
// Every entry point validates the fields in a fixed order, stops at the first
// failure, rejects near-duplicates and only then writes. Nothing is stored when
// any step fails.
package submission
