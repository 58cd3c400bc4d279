// Package segment extracts roof geometry from a single aerial image.
//
// The pipeline is a strict forward chain: a color-threshold roof mask
// is cleaned by morphology, traced into contours, filtered and split
// into facet-sized regions, simplified into polygons, and each polygon
// edge is classified with a roofing role (ridge, hip, valley, eave,
// rake). Per-facet pitch and aspect are estimated from local image
// statistics, and a single confidence score summarizes how plausible
// the segmentation looks. No stage reads ahead or mutates a
// predecessor's output.
//
// The Segmenter is a pure function of its inputs: it holds only
// immutable configuration and a logger, so concurrent Segment calls on
// independent images are safe.
//
// # Accuracy
//
// Everything here is heuristic. Pitch in particular is a coarse
// brightness-gradient estimate (true pitch requires stereo imagery or
// elevation data), and results carry explicit confidence values so a
// human or downstream system can weigh them.
package segment
