// Package solar defines the read-only external-hint schema supplied by
// a solar-irradiance building API.
//
// Hints are fetched by an external collaborator and passed in fully
// resolved; this package never performs network I/O. Field names mirror
// the upstream JSON so responses deserialize directly.
package solar
