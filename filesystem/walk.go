package filesystem

import (
	"os"
)

// WalkVisitor is invoked once per entry Walk emits, in traversal order.
// depth counts descents below the walk root: the root's direct children are
// depth 0.
type WalkVisitor func(entry *DirectoryEntry, depth int) error

// Walk performs a depth-first, pre-order traversal of root: a directory is
// visited before its children, and entries within a directory are emitted
// in whatever order the underlying Iterator produces them, with no
// sorting. The root itself is never passed to visitor, since it has no
// Name of its own within a parent directory - only its descendants are.
func Walk(root string, options WalkOptions, visitor WalkVisitor) error {
	rootInfo, err := os.Lstat(root)
	if err != nil {
		return err
	}
	if !rootInfo.IsDir() {
		return &ParentError{Kind: ParentNotDirectory, Path: root, Operation: "lstat", Err: errWalkRootNotDirectory}
	}

	var visited []os.FileInfo
	if options.FollowSymbolicLinks && options.DetectCycles {
		visited = append(visited, rootInfo)
	}

	return walkDirectory(root, options, visitor, 0, visited)
}

// errWalkRootNotDirectory is the sentinel wrapped by Walk when root isn't a
// directory.
var errWalkRootNotDirectory = walkRootNotDirectoryError{}

type walkRootNotDirectoryError struct{}

func (walkRootNotDirectoryError) Error() string { return "walk root is not a directory" }

// walkDirectory iterates path's contents once, emitting each entry to
// visitor and recursing into subdirectories per options.
func walkDirectory(path string, options WalkOptions, visitor WalkVisitor, depth int, visited []os.FileInfo) error {
	iterator, err := OpenIterator(path)
	if err != nil {
		return err
	}
	defer iterator.Close()

	for {
		entry, err := iterator.Next()
		if err != nil {
			return err
		}
		if entry == nil {
			return nil
		}

		if options.SkipHidden && entry.Name.IsHiddenByDotPrefix() {
			continue
		}

		if !entry.Location.IsAbsolute() {
			switch options.UndecodableEntryPolicy {
			case SkipUndecodable:
				continue
			case StopAndThrowUndecodable:
				return &UndecodableEntryError{Parent: path, Name: entry.Name}
			case EmitUndecodable:
				if err := visitor(entry, depth); err != nil {
					return err
				}
				continue
			default:
				continue
			}
		}

		if err := visitor(entry, depth); err != nil {
			return err
		}

		descend, childVisited, err := shouldDescend(entry, options, visited)
		if err != nil {
			return err
		}
		if !descend {
			continue
		}
		if options.MaxDepth >= 0 && depth >= options.MaxDepth {
			continue
		}

		if err := walkDirectory(entry.Location.Path(), options, visitor, depth+1, childVisited); err != nil {
			return err
		}
	}
}

// shouldDescend determines whether Walk should recurse into entry, and the
// visited set to carry into that recursion when cycle detection is active.
func shouldDescend(entry *DirectoryEntry, options WalkOptions, visited []os.FileInfo) (bool, []os.FileInfo, error) {
	switch entry.Kind {
	case EntryDirectory:
		if !options.FollowSymbolicLinks || !options.DetectCycles {
			return true, visited, nil
		}
		info, err := os.Lstat(entry.Location.Path())
		if err != nil {
			return false, nil, err
		}
		return true, appendVisited(visited, info), nil
	case EntrySymbolicLink:
		if !options.FollowSymbolicLinks {
			return false, nil, nil
		}
		target, err := os.Stat(entry.Location.Path())
		if err != nil {
			// A broken or inaccessible symbolic link is reported as a leaf,
			// not a walk failure.
			return false, nil, nil
		}
		if !target.IsDir() {
			return false, nil, nil
		}
		if options.DetectCycles {
			for _, seen := range visited {
				if os.SameFile(seen, target) {
					return false, nil, nil
				}
			}
			return true, appendVisited(visited, target), nil
		}
		return true, visited, nil
	default:
		return false, nil, nil
	}
}

// appendVisited extends a visited set for one branch of the walk without
// sharing backing storage with sibling branches, which a plain append could
// do once the parent's slice has spare capacity.
func appendVisited(visited []os.FileInfo, info os.FileInfo) []os.FileInfo {
	extended := make([]os.FileInfo, len(visited), len(visited)+1)
	copy(extended, visited)
	return append(extended, info)
}
