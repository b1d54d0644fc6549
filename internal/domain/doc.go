// Package domain contains the core exercise model: the canonical shapes for
// generated and static exercise sets, the cache wrapper around generated
// sets, and the completion records consumed from the progress collaborator.
// It has no dependencies on other application packages.
package domain
