// Package measure converts a roof segmentation into calibrated,
// construction-ready measurements: total sloped area, roof squares,
// predominant pitch, per-edge-type linear footage, and recommended
// material quantities with industry waste factors.
//
// The calculator is deterministic: identical inputs produce
// byte-identical results, including all rounding. Optional external
// hints (solar API building insights, an elevation grid) refine the
// pitch and area but are never required; missing hints fall back to
// neutral defaults such as the 6-in-12 residential pitch.
package measure
