// Package selector ranks candidate tuples and picks the best one. It provides
// the plain SelectBest reduction over materialised tuples, a streaming
// Composite selector driven by the combinator, and the standard strategies
// used by the orchestrator: highest total size, longest within a bound and
// shortest.
package selector
