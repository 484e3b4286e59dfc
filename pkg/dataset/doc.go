// Package dataset handles dataset ingestion and the datasheet export.
//
// Ingestion streams the source file line by line, feeding each line into
// the deterministic hash and counting rows, so the same file contents
// always produce the same dataset id regardless of where the file lives.
package dataset
