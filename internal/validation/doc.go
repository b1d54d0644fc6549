// Package validation is the trust boundary for generative output. Raw
// provider text is parsed, checked against the per-exercise-type schema and
// only then converted into the canonical exercise model, with every
// model-supplied identifier replaced by a freshly generated one.
package validation
