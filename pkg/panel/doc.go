// Package panel turns a parameterized object's attribute metadata into
// an ordered set of widget descriptors and relays widget edits back
// onto the object. It is the bridge between pkg/params and the
// renderers under pkg/renderers; it owns no presentation itself.
package panel
