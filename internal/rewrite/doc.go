// Package rewrite locates recurrent-cell motifs in a dataflow graph and
// replaces each occurrence with a single fused node, preserving the external
// dataflow contract.
//
// The per-anchor flow: match the cell pattern, resolve kernel/bias constants
// through identity chains, detect the sequence layout from any leading
// transpose, derive hidden and input sizes from the weight shapes, then
// splice a fused node in and remove the now-orphaned motif interior.
//
// Every anchor yields one of three outcomes: Skip (motif absent or
// preconditions unmet), OK (rewrite applied), or Fail (motif present but
// malformed). Structurally unsupported variants abort the whole pass with
// ErrUnsupportedStructure rather than guessing a default.
package rewrite
