// Package testutil provides git repository fixtures for tests, including
// the two-branch (source + debian packaging) layout the release workflow
// operates on.
package testutil
