// Package codegen writes one source file per classifier under the output
// directory derived from the project path, merging with the previous file
// in update mode.
package codegen
