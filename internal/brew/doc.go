// Package brew implements the layer helpers: functions that append an
// operator (or a small cluster of operators) to a model's net and create the
// parameters the operator needs.
//
// Helpers share a calling shape: model first, then input and output blobs,
// then the integer geometry, then functional options. Options given later
// win, so a wrapper can prepend session defaults and still let call sites
// override them. When an option is absent entirely, the model's ArgScope
// supplies the fallback.
package brew
