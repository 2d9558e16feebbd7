// Package content defines the entities owned by the content host: articles,
// categories, workflow stages, and the transitions that move articles between
// stages.
//
// The workflow automation only ever touches an article's category through the
// Categorized interface; everything else here exists so the host can persist
// and present content.
package content
