package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrCategoryNameNotUnique  = errors.New("the category name must be unique")
	ErrTagNameNotUnique       = errors.New("the tag name must be unique")
	ErrAccountSourceNotUnique = errors.New("only one integration account can be linked per source")

	// ErrLineItemNotUnique means a line item with the same (source, source_id)
	// already exists. The upsert engine absorbs this as an update; seeing it
	// surface from any other write path is a bug there, not here.
	ErrLineItemNotUnique = errors.New("a line item with this source and source id already exists")
)
