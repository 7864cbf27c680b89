package utils

import "github.com/google/uuid"

// IDGen produces opaque unique identifiers. Injected wherever IDs are
// minted so tests can substitute a deterministic sequence.
type IDGen func() string

func NewID() string { return uuid.NewString() }
