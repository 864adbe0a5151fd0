// Package model defines the render configuration consumed by the orchestrator:
// ordered template specs, named value sources with their lookup paths and
// transforms, and the placeholder syntaxes used for masking and extraction.
// Candidates carries the values resolved from a data record, keyed by source
// name, and is what applicability predicates inspect.
package model
