package repository

import "errors"

var (
	ErrFailedToMigrate = errors.New("failed to create schema")
	ErrFailedToInsert  = errors.New("failed to insert record")
	ErrFailedToUpdate  = errors.New("failed to update record")
	ErrFailedToList    = errors.New("failed to list records")
)
