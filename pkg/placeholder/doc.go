// Package placeholder finds, removes and substitutes delimited placeholders in
// template text. Delimiters are configurable per Spec so several syntaxes can
// coexist in one template, for example one for values that take part in size
// based selection and one for values that are always taken as-is.
package placeholder
