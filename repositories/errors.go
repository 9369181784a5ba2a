package repositories

import "errors"

var errReadOnly = errors.New("repositories: write attempted in read-only transaction")
