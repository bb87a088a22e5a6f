package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrEmptyQuery rejects a resolve request before the pipeline runs.
	// Distinct from a stage declining to answer, which is not an error.
	ErrEmptyQuery = goerr.New("query text is empty")

	// ErrNotFound marks a missing record. Lookup stages never return it;
	// they model "no answer" as an empty result.
	ErrNotFound = goerr.New("not found")

	// ErrUnauthorized marks a failed credential validation at the boundary.
	ErrUnauthorized = goerr.New("unauthorized")

	// ErrInvalidArgument marks a caller-supplied value that cannot be used.
	ErrInvalidArgument = goerr.New("invalid argument")
)

// SettingCreatorInfo is the configuration record behind the identity stage.
const SettingCreatorInfo = "creator_info"
