// Package wire implements the fixed-schema binary buffer primitives shared by
// every snapshot codec in the module. All integers are little-endian and
// fixed-width; strings are u32 length-prefixed UTF-8. The Reader reports
// truncation as an explicit error instead of reading past the payload, so a
// corrupt snapshot surfaces as a decode failure rather than undefined data.
package wire
