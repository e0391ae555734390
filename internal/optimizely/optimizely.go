// Package optimizely is the outbound client for the Optimizely
// Experimentation v2 REST API.
//
// It covers the three operations the tools need (create experiment,
// update experiment, list events), interprets responses as a tagged
// JSON-or-text body, and converts non-2xx replies into diagnosable
// upstream errors. Field defaults the API would otherwise reject on are
// applied here, next to the payload shapes they belong to.
package optimizely
