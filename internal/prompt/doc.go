// Package prompt composes the user side of a training example: the
// instruction text for a subcategory and the source rendering it embeds
// (JSON, YAML, CSV, XML or attribute text).
package prompt
