package services

import (
	"errors"

	"journal-workflow/models"
)

func isNotFound(err error) bool {
	var nf *models.NotFoundError
	return errors.As(err, &nf)
}
