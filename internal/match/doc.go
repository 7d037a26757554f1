// Package match suggests the closest known name for a mistyped one, so that
// errors about unknown packs, subcategories or capabilities can say what was
// probably meant.
//
// Names are compared after normalization: case is folded and the separators
// '_', '-' and ' ' are dropped, so "JsonToToml", "json-to-toml" and
// "json_to_toml" are the same name.
package match
