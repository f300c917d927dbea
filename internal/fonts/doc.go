// Package fonts resolves the typeface used to draw corner labels.
//
// A Resolver walks an ordered list of sources (explicit paths, the
// EVIDENCEPDF_FONT environment variable, kaiu.ttf next to the executable,
// kaiu.ttf in the working directory) and keeps the first one that parses as a
// TrueType font. Resolution happens once; later calls return the same Face.
// When nothing loads, the core Helvetica font is returned together with a
// *ResolutionError listing every attempt, so callers can warn and continue.
package fonts
