package database

import "errors"

// ErrNotReady is returned by System methods called before Connect has
// established the pool.
var ErrNotReady = errors.New("database not ready")
