// Package annotations is the flat-file store for per-video annotation
// documents. Each video identifier maps to one JSON file under the data
// directory; documents are opaque to the server and replaced wholesale on
// every write.
package annotations
