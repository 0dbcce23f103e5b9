// Package model defines the data structures shared by the porting workflow.
package model

// Path represents a file system path.
type Path string

// File represents a source code file.
type File struct {
	FullPath  Path
	ShortPath Path // relative to the source root
	Hash      string
}

// Source is one input file discovered under a source root.
type Source struct {
	Origin *File
	Root   Path
}

// Translation is the in-memory result of porting one source file.
type Translation struct {
	Source Source
	Target Path
	Input  []byte
	Output []byte
	Counts RuleCounts
}

// Changed reports whether porting altered the file text.
func (t Translation) Changed() bool {
	return string(t.Input) != string(t.Output)
}
