// Package catalog binds domains (codec, decision registry and summary
// projection) behind one non-generic interface so the CLI can pick a domain
// by name at runtime.
package catalog
