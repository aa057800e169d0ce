// Package normalize provides the pure text-cleaning rules applied to every
// extracted listing field.
//
// Three cleanups are performed:
//   - Artifact glyph removal: the site renders unit exponents and some
//     encoding debris as superscript runes; StripArtifacts removes them so
//     "150 m²" becomes "150 m".
//   - Whitespace: leading/trailing space trimmed, internal runs collapsed.
//   - Duplicate-content collapse: nested markup on detail pages duplicates
//     description text; CollapseRepeats folds identical halves and drops
//     sentences that repeat earlier ones verbatim.
//
// All functions are deterministic, stateless, and idempotent: applying any
// of them to already-clean text returns the text unchanged. Nothing here
// performs I/O, which keeps the edge cases unit-testable away from network
// code.
package normalize
