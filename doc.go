// Package googlegen builds and parses requests for Google's generative
// language backends. It normalizes heterogeneous content parts (text,
// inline binary, file references, function calls and results) across the
// direct API-key platform and the Vertex AI platform, and across the
// legacy text-completion and structured content model families.
// All operations are pure and safe for concurrent use.
package googlegen
