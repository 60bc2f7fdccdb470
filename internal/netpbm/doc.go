// Package netpbm reads and writes the portable gray map (P2, P5) and
// portable pixmap (P6) containers.
//
// # Header
//
// Every container starts with a magic token, optional comment lines
// beginning with '#', then width, height and the declared maximum sample
// as whitespace-separated decimal integers.
//
// # Body
//
// Raw bodies (P5, P6) are located by their size from the end of the file,
// not from the end of the parsed header, so files with irregular header
// padding decode as long as the body is the file's tail. P2 bodies are read
// sequentially after the header and rescaled from 12 bits to 8.
//
// Importing the package registers the containers with image.Decode, which
// also makes them readable through disintegration/imaging.
package netpbm
