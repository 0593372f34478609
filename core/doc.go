// Package core resolves bound service descriptions into typed descriptors,
// matches them against registered connector creators, and projects the
// resolved set into the flattened cloud.* configuration namespace.
package core
