// Package workflow is the host side of article publishing: it moves articles
// between stages, builds editor forms, and imports workflow definitions.
//
// Every transition runs under a file lock in the data directory and a fresh
// request id. The Manager dispatches onContentBeforeChangeStageDo before the
// article changes stage (a veto aborts with ErrTransitionBlocked), persists
// whatever the listeners changed on the article, then dispatches
// onWorkflowAfterTransition. Form builders dispatch onContentPrepareForm after
// binding data so listeners see, and may adjust, the final form.
package workflow
