// Package xport reads and writes SAS V5 XPORT (Transport) libraries,
// the fixed-record binary format defined by TS-140 and required for
// FDA regulatory submissions. A library holds exactly one dataset; a
// second embedded dataset is reported through MultipleDatasetsError
// rather than exposed.
//
// Use ReadLibrary to parse a stream into a Reader and pull
// observations with Reader.Next, or WriteLibrary to construct a
// Writer and push them with Writer.Append. Both own their underlying
// stream exclusively and are not safe for concurrent use.
package xport
