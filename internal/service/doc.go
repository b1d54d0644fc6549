// Package service contains the orchestration engine: the decision procedure
// that answers "give me one exercise set" by choosing between the shared
// cache and a fresh provider generation, and that owns identity assignment
// and cache writes for generated sets.
package service
