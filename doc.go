// Package xlbind maps spreadsheet rows to typed Go values and renders typed
// values back into styled xlsx workbooks.
//
// Header labels are matched to fields through Normalize, which folds labels
// such as "First Name", "first_name" and "FIRST-NAME" into the canonical
// field name "firstName". Cells are read as strings through Coerce and parsed
// into the target field types by a Schema.
package xlbind
