// Package compress provides the general-purpose payload codecs used by the
// container format: Zstandard, S2, LZ4 and a pass-through codec.
//
// Codecs operate on the serialized residual payload after the transform
// stage. They are the alternative to the entropy coder: a container payload
// is either entropy-coded or run through one of these codecs, never both.
//
// The Zstd codec supports explicit compression levels so that benchmark
// algorithm variants can sweep the speed/ratio trade-off; the other codecs
// have a single operating point.
//
// All codecs are safe for concurrent use.
package compress
