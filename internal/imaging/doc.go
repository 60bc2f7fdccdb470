// Package imaging provides the single-channel raster type and the geometric
// operations over it.
//
// A Grid holds rows × cols integer samples plus a maximum sample value.
// Every operation in this package is a pure function: it reads its input
// grids and returns a newly allocated Grid, never modifying or aliasing an
// input. Callers that want "in place" behavior rebind their variable to the
// result.
//
// # Coordinate System
//
// Samples are addressed as (row, col), 0-based, with (0,0) at the top-left.
// Rows grow downward and columns grow rightward. For rectangles, the
// (top, left) corner is inclusive and the (bottom, right) corner exclusive.
// When a grid is converted to an image.Image, column c becomes x and row r
// becomes y.
//
// # Resampling
//
// Every geometric transform is nearest-neighbor with integer math:
//   - Enlarge replicates samples into k×k blocks
//   - Shrink decimates, keeping every k-th sample
//   - Rotate maps forward and closes gaps from the right-hand neighbor
//
// # Error Handling
//
// Failures are reported through the sentinel kinds in errors.go
// (ErrInvalidParameter, ErrOutOfBounds, ErrDimensionMismatch and so on),
// always wrapped with context. Use errors.Is to test the kind.
//
// # Thread Safety
//
// Grid operations are stateless and may run concurrently on shared input
// grids. GridCache is safe for concurrent use.
package imaging
