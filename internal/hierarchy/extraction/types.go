package extraction

// UnknownName labels a reference whose target could not be reduced to a plain
// or dotted identifier (for example a Python base written as a call).
const UnknownName = "Unknown"

// Direction says which end of an edge an entity's references sit on.
type Direction int

const (
	// RefChild means the entity contains or depends on each reference:
	// a Verilog module instantiating a submodule, a table with a foreign key.
	RefChild Direction = iota

	// RefParent means each reference is a parent of the entity:
	// the base classes of a class, the super-interfaces of an interface.
	RefParent
)

// String returns the name used in configuration files.
func (d Direction) String() string {
	if d == RefParent {
		return "parent"
	}
	return "child"
}

// Entity is a named declaration found in one source file.
type Entity struct {
	Name       string
	Kind       string // "module", "class", "interface", "component", "table", ...
	References []string
	Direction  Direction
}

// Extractor scans one file's text and returns the entities it declares.
// Implementations are pattern based and must not fail on odd input; an error
// means the whole file is unusable.
type Extractor interface {
	// Extensions lists the file extensions (with leading dot) this extractor reads.
	Extensions() []string

	// Extract returns every top-level entity declared in source.
	Extract(source []byte) ([]Entity, error)
}

// FileFilter is implemented by extractors that skip some files even when the
// extension matches.
type FileFilter interface {
	SkipFile(name string) bool
}

// FilenameResolver is implemented by extractors whose entities live one per
// file, in files named after the entity. Projects of this type are expanded by
// locating each referenced name on disk instead of folding files independently.
type FilenameResolver interface {
	Extractor
	ResolveByFilename() bool
}
