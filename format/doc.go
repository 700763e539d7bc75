// Package format names the text formats documents are read from and
// written to. It is shared by the parse and encode packages and by the
// fk command line tool.
package format
