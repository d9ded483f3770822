package repository

import "errors"

// This file defines custom errors specific to the repository layer.
// This allows the repository to communicate outcomes in a database-agnostic way.

// ErrNotFound is a repository-specific sentinel error. It is returned when a
// query for a single entity (e.g., GetConversation) finds no rows.
//
// The service layer checks for it and translates it into a domain-level
// outcome, so business logic never sees the driver's sql.ErrNoRows.
var ErrNotFound = errors.New("repository: not found")
