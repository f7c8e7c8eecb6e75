// Package wire defines the JSON payload shapes for the two backend
// dialects: the structured generateContent family and the legacy
// generateText family. Optional fields are pointers with omitempty so that
// absence survives serialization; nothing here performs I/O or validation.
package wire
