// Package mediatypes provides shared media file type definitions and name
// utilities used across the import pipeline.
//
// This package exists as a dependency-free foundation that can be imported
// by other packages without creating import cycles.
package mediatypes
