package domain

import "github.com/ghuser/worktrack/pkg/domainerr"

// Sentinel errors for the tracker domain. Use errors.Is() to check these.
// Each carries a domainerr kind so the HTTP layer can map it to a status.
var (
	ErrUserNotFound          = domainerr.New(domainerr.KindNotFound, "user.not_found", "user not found")
	ErrWorkItemNotFound      = domainerr.New(domainerr.KindNotFound, "work_item.not_found", "work item not found")
	ErrBoardNotFound         = domainerr.New(domainerr.KindNotFound, "board.not_found", "board not found")
	ErrIterationNotFound     = domainerr.New(domainerr.KindNotFound, "iteration.not_found", "iteration not found")
	ErrMilestoneNotFound     = domainerr.New(domainerr.KindNotFound, "milestone.not_found", "milestone not found")
	ErrProjectNotFound       = domainerr.New(domainerr.KindNotFound, "project.not_found", "project not found")
	ErrOrganisationNotFound  = domainerr.New(domainerr.KindNotFound, "organisation.not_found", "organisation not found")
	ErrWorkspaceNotFound     = domainerr.New(domainerr.KindNotFound, "workspace.not_found", "workspace not found")
	ErrDocumentationNotFound = domainerr.New(domainerr.KindNotFound, "documentation.not_found", "documentation not found")

	// ErrUserAlreadyExists indicates another user registered the same email.
	ErrUserAlreadyExists = domainerr.New(domainerr.KindAlreadyExists, "user.already_exists", "user already exists")

	// ErrAlreadyExists is returned when a unique constraint rejects an insert.
	ErrAlreadyExists = domainerr.New(domainerr.KindAlreadyExists, "record.already_exists", "record already exists")

	// ErrNoContent indicates a documentation has no stored body yet.
	ErrNoContent = domainerr.New(domainerr.KindNotFound, "documentation.no_content", "documentation has no content")
)
