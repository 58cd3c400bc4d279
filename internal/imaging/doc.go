// Package imaging provides the pixel-level primitives for roof
// measurement: image decoding, HSV color masking, binary morphology,
// Canny edge maps, gradient fields, and polygon rasterization.
//
// All operations work with standard Go image.Image types and use a
// coordinate system where (0,0) is at the top-left corner, X increases
// rightward, and Y increases downward.
//
// # Binary masks
//
// The Mask type is the package's working representation of "which
// pixels are roof material". Masks are plain value containers: every
// operation returns a new Mask and never mutates its input, so masks
// can be shared freely between pipeline stages.
//
// # Thread safety
//
// All functions are pure with respect to their inputs. Concurrent calls
// on independent images are safe without locking.
//
// # Error handling
//
// Numeric operations (masking, morphology, gradients) cannot fail and
// return no error. Decoding returns an error for malformed or
// unsupported image data.
package imaging
