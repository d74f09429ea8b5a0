// Package preprocess prepares HDL sources for parsing and analysis.
//
// Starting from one input file, Resolver walks the `include graph breadth
// first. Every visited file is comment/string stripped, scanned for
// X-propagation macro declarations, cleaned of constructs the parser has
// no grammar for, written to a scratch directory, and (unless it is a
// known-unparsable legacy file) checked by the ConstructScanner for
// prohibited lexical patterns.
//
// The input file may carry a marker comment:
//
//	// ece2300-lint off            disables linting for the file
//	// ece2300-lint
//	`include "alu.v"               lints alu.v instead of the file itself
package preprocess
