package history

import "github.com/matzehuels/commitgraph/pkg/errors"

var (
	// ErrDuplicateBranch is returned by [Graph.Branch] when the name was
	// already used since the last Clear or Import.
	ErrDuplicateBranch = errors.New(errors.ErrCodeDuplicateBranch, "branch already exists")

	// ErrInactiveBranch is returned when an operation needs an active
	// branch but the branch is merged or deleted.
	ErrInactiveBranch = errors.New(errors.ErrCodeInactiveBranch, "branch is not active")

	// ErrUnknownBranch is returned when a branch name does not exist.
	ErrUnknownBranch = errors.New(errors.ErrCodeBranchNotFound, "unknown branch")

	// ErrUnknownCommit is returned when a commit hash does not exist.
	ErrUnknownCommit = errors.New(errors.ErrCodeCommitNotFound, "unknown commit")

	// ErrSelfMerge is returned by [Graph.Merge] when source and target are
	// the same branch.
	ErrSelfMerge = errors.New(errors.ErrCodeSelfMerge, "cannot merge a branch into itself")

	// ErrNothingToMerge is returned by [Graph.Merge] when the source has no
	// commits.
	ErrNothingToMerge = errors.New(errors.ErrCodeNothingToMerge, "nothing to merge")

	// ErrEmptyBranch is returned by [Graph.Tag] when the target branch has no
	// commits.
	ErrEmptyBranch = errors.New(errors.ErrCodeEmptyBranch, "branch has no commits")

	// ErrDuplicateTag is returned by [Graph.Tag] on a name collision.
	ErrDuplicateTag = errors.New(errors.ErrCodeDuplicateTag, "tag already exists")

	// ErrDuplicateCommit is returned when an explicit commit hash is reused.
	ErrDuplicateCommit = errors.New(errors.ErrCodeDuplicateCommit, "commit hash already exists")

	// ErrInvalidImport is returned by [Graph.Import] for forward or dangling
	// parent references, cycles, duplicate hashes and conflicting refs.
	ErrInvalidImport = errors.New(errors.ErrCodeInvalidImport, "invalid import")

	// ErrNoHead is returned when an operation targets HEAD but nothing is
	// checked out.
	ErrNoHead = errors.New(errors.ErrCodeNoHead, "no branch is checked out")

	// ErrDeleteHead is returned by [Graph.DeleteBranch] for the checked-out
	// branch.
	ErrDeleteHead = errors.New(errors.ErrCodeDeleteHead, "cannot delete the checked-out branch")

	// ErrInvalidRefName is returned when a branch or tag name is not a valid
	// ref name.
	ErrInvalidRefName = errors.New(errors.ErrCodeInvalidRefName, "invalid ref name")
)
