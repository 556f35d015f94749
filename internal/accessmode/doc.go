// Package accessmode decides which combinations of access modes (textual,
// visual, auditory) are sufficient to perceive a mix of content formats, given
// the accessibility accommodations a publication declares. The output feeds the
// schema.org accessModeSufficient property.
//
// Evaluation is a pure function of two flag sets. The candidate universe is the
// seven non-empty subsets of the three modes, so every call does a bounded
// amount of work and is safe to run concurrently.
package accessmode
