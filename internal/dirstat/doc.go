// Package dirstat builds size-distribution reports for directory trees.
//
// It walks a tree using fastwalk, records one FileRecord per file,
// assembles the records into an Inventory table and derives percentage
// distributions of total size by extension and by directory.
package dirstat
