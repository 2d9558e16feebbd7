// Package categoryassign moves articles into the category configured on a
// workflow transition and locks the category field of the article form while
// that automation is active.
//
// The Plugin subscribes to two host events:
//
//   - onContentBeforeChangeStageDo: when the firing transition carries an
//     options.category_id, the article's catid is overwritten before the host
//     persists it.
//   - onContentPrepareForm: the article form's catid field becomes readonly and
//     disabled, defaulting to the fallback category when unset; the transition
//     form gains the category picker declared in the installed transition.xml
//     fragment.
//
// Hosts call the hooks with either positional arguments or a single event
// object. NormalizeTransitionArgs and NormalizeFormArgs reduce both shapes to
// one record before any decision is made. Hooks never fail a request: every
// unmet precondition is a logged no-op.
package categoryassign
