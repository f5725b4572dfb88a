// Package accname decides statically whether a JSX element has an
// accessible name.
//
// The building blocks read an element's attributes, its flattened child
// content, its ancestors and the identifier cross-references of the file.
// Evaluate composes them according to a Policy. This is an approximation of
// the accessible-name computation: values computed at runtime are trusted,
// and references that cannot be seen in the file count as missing.
package accname
