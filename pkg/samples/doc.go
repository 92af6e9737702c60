// Package samples provides the shared machinery for the cloud-samples
// console tool.
//
// # Overview
//
// Each sample is a thin console script: construct a credential, call
// one or two SDK methods, and map whatever went wrong to a process
// exit code. The shared pieces live here:
//
//   - Outcome classification: a priority-ordered ladder of
//     predicate/handler rules reduces a raw error to an Outcome plus
//     display text. Exactly one outcome is produced per run, at the
//     process boundary.
//
//   - Bounded retry: a Runner retries an idempotent operation with a
//     linearly growing, capped delay. The setup sample uses it to wait
//     out RBAC propagation after a role assignment.
//
//   - Configuration: environment variables (with optional .env file),
//     placeholder-aware endpoint validation, and a YAML setup config.
//
//   - Summary store: a versioned JSON file recording the identifiers
//     setup generated, written atomically for operator reuse.
//
// # Exit codes
//
//	0  success
//	1  unexpected/unclassified error
//	2  authentication failed
//	3  remote service request failed
//	4  invalid configuration
//
// # Extension
//
// New samples are added by implementing the Sample interface and
// registering via samples.Register() or an init() function.
package samples
