// Package generation defines the provider-abstraction boundary between the
// orchestration core and external LLM backends. A Provider turns a canonical
// prompt pair into raw text; a Registry maps provider names to
// implementations so adding a vendor never touches the orchestration engine.
package generation
