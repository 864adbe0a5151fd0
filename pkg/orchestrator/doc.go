// Package orchestrator renders the first template, from an ordered list, for
// which a selector finds an acceptable combination of candidate values.
//
// For each template the orchestrator checks applicability, masks the
// placeholders excluded from selection, extracts the remaining names and hands
// the selector one sequence per name, preceded by the masked skeleton. The
// winning tuple overrides the first present value of every configured source
// and the original template text is interpolated with the result.
package orchestrator
