// Package analysis runs resume analyses in bulk. Each analysis is retried on
// transport failure, journaled through a storage.RepairRepository and
// optionally checked against a schema.
package analysis
