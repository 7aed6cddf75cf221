// Package mrr decodes MRR assembly files.
//
// An MRR file is a signature followed by a flat list of joints and a list of
// parts, each part carrying a pose, joint and rigid-group references, and
// triangle-mesh bodies. All integers and floats are little-endian; every
// sequence is prefixed by an 8-byte element count.
//
// Decoding is a single forward pass over an in-memory buffer. The first
// structural error aborts the whole decode.
package mrr
