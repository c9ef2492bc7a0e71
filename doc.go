// Package rnotefmt implements the persistent document formats of a freehand
// note taking application.
//
// Two formats are supported. The foreign interchange format (pkg/xopp) is
// gzip-compressed XML shared with the Xournal family of note apps. The native
// format (pkg/rnote) is gzip-compressed JSON carrying an explicit schema
// version; documents saved by older versions are upgraded through a chain of
// schema migrations on load.
//
// This package holds the error types shared by both format packages.
package rnotefmt
