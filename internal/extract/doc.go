// Package extract defines the contract shared by the format-specific version
// extractors: the Extractor interface, the options they are built from and
// the error taxonomy callers match with errors.Is.
package extract
