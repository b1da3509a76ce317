// Package tree walks a directory lazily into depth-annotated entries and renders
// them as an indented listing.
package tree

import (
	"iter"
	"os"
	"path/filepath"
)

// EntryKind classifies a walked entry.
type EntryKind int

const (
	// EntryDirectory is a directory; its contents follow at Depth+1.
	EntryDirectory EntryKind = iota
	// EntryFile is a non-directory entry.
	EntryFile
	// EntryAccessDenied marks a directory whose contents could not be enumerated.
	// It sits at the depth the contents would have had.
	EntryAccessDenied
	// EntryCycle is a directory that resolves to one of its own ancestors; it is not descended into.
	EntryCycle
)

// Entry is one record of a walk.
type Entry struct {
	Depth int
	Name  string
	Kind  EntryKind
	Path  string
	Err   error
}

// NameFilter reports whether an entry name is excluded.
type NameFilter interface {
	Contains(name string) bool
}

// Options configures Walk.
type Options struct {
	Enumerator DirectoryEnumerator
	// Ignore is consulted in every directory by exact name. Nil excludes nothing.
	Ignore NameFilter
	// MaxDepth limits entries to depths below it. Zero means unlimited.
	MaxDepth int
}

type walker struct {
	options  Options
	resolver IdentityResolver
}

// Walk returns the entries below root: for each directory, its subdirectories
// (each immediately followed by its own contents) and then its files. Enumeration
// happens as the sequence is consumed.
func Walk(root string, options Options) iter.Seq[Entry] {
	if options.Enumerator == nil {
		options.Enumerator = OSEnumerator{FollowSymlinks: true}
	}
	currentWalker := &walker{options: options}
	if resolver, ok := options.Enumerator.(IdentityResolver); ok {
		currentWalker.resolver = resolver
	}
	return func(yield func(Entry) bool) {
		var ancestors []os.FileInfo
		if rootInformation := currentWalker.identify(root); rootInformation != nil {
			ancestors = append(ancestors, rootInformation)
		}
		currentWalker.walkDirectory(root, 0, ancestors, yield)
	}
}

func (currentWalker *walker) walkDirectory(path string, depth int, ancestors []os.FileInfo, yield func(Entry) bool) bool {
	directoryNames, listError := currentWalker.options.Enumerator.ListSubdirectories(path)
	if listError != nil {
		return yield(Entry{Depth: depth, Kind: EntryAccessDenied, Path: path, Err: listError})
	}

	for _, directoryName := range directoryNames {
		if currentWalker.ignored(directoryName) {
			continue
		}
		childPath := filepath.Join(path, directoryName)
		childInformation := currentWalker.identify(childPath)
		if childInformation != nil && isAncestor(childInformation, ancestors) {
			if !yield(Entry{Depth: depth, Name: directoryName, Kind: EntryCycle, Path: childPath}) {
				return false
			}
			continue
		}
		if !yield(Entry{Depth: depth, Name: directoryName, Kind: EntryDirectory, Path: childPath}) {
			return false
		}
		if currentWalker.options.MaxDepth > 0 && depth+1 >= currentWalker.options.MaxDepth {
			continue
		}
		childAncestors := ancestors
		if childInformation != nil {
			childAncestors = append(ancestors[:len(ancestors):len(ancestors)], childInformation)
		}
		if !currentWalker.walkDirectory(childPath, depth+1, childAncestors, yield) {
			return false
		}
	}

	fileNames, listError := currentWalker.options.Enumerator.ListFiles(path)
	if listError != nil {
		return yield(Entry{Depth: depth, Kind: EntryAccessDenied, Path: path, Err: listError})
	}
	for _, fileName := range fileNames {
		if currentWalker.ignored(fileName) {
			continue
		}
		if !yield(Entry{Depth: depth, Name: fileName, Kind: EntryFile, Path: filepath.Join(path, fileName)}) {
			return false
		}
	}
	return true
}

func (currentWalker *walker) ignored(name string) bool {
	return currentWalker.options.Ignore != nil && currentWalker.options.Ignore.Contains(name)
}

func (currentWalker *walker) identify(path string) os.FileInfo {
	if currentWalker.resolver == nil {
		return nil
	}
	fileInformation, identifyError := currentWalker.resolver.Identify(path)
	if identifyError != nil {
		return nil
	}
	return fileInformation
}

func isAncestor(candidate os.FileInfo, ancestors []os.FileInfo) bool {
	for _, ancestor := range ancestors {
		if os.SameFile(candidate, ancestor) {
			return true
		}
	}
	return false
}
