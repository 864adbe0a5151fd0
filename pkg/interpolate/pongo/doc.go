// Package pongo interpolates templates with pongo2, the Django-style engine
// behind github.com/goliatone/go-template. It satisfies interpolate.Interpolator,
// keeps a bounded cache of compiled templates and can expose the sprig function
// map so templates may call helpers such as {{ upper(title) }}.
package pongo
