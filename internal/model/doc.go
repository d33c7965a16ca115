package model

// Package model defines domain data structures shared across the service:
// conversion jobs, status enums, parsed worker progress events, and probe
// results. Structures are designed for direct JSON serialization at the HTTP
// boundary and explicit state transitions.
