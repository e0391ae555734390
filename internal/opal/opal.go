// Package opal models the Opal side of the bridge: the tool manifest
// served at /discovery, the per-request auth envelope forwarded by the
// Opal platform, and the small parameter-normalization helpers shared by
// every tool (JSON-array-or-CSV lists, strict integer ids, project id
// fallback resolution).
package opal
