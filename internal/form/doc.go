// Package form models editing forms as an ordered set of field definitions
// plus the data bound to them.
//
// Forms are built from XML definitions (<form>, <fields name="group">,
// <fieldset>, <field>) and can be extended at runtime by merging additional
// XML fragments. Listeners of the prepare-form event adjust field attributes
// (readonly, disabled) or bound values before the form is rendered.
package form
