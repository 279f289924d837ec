package repository

import (
	"database/sql"
	"errors"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrAlreadyRecorded = errors.New("record already exists")
)

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
