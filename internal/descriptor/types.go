package descriptor

import "time"

// Kind identifies a recognized descriptor type.
type Kind int

const (
	// Unknown is the zero Kind; it never matches a file.
	Unknown Kind = iota

	// Maven is a Maven project object model (pom.xml).
	Maven

	// SetupScript is a Python setuptools script (setup.py).
	SetupScript

	// PackageManifest is a Node.js package manifest (package.json).
	PackageManifest

	// Gradle is a Gradle build script (build.gradle).
	Gradle

	// InfoPlist is an iOS/macOS bundle property list (Info.plist).
	InfoPlist
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case Maven:
		return "maven"
	case SetupScript:
		return "setuppy"
	case PackageManifest:
		return "packagejson"
	case Gradle:
		return "gradle"
	case InfoPlist:
		return "plist"
	default:
		return "unknown"
	}
}

// File is a located descriptor file.
type File struct {
	// Path is the absolute path to the file.
	Path string

	// Kind is the recognized descriptor type.
	Kind Kind

	// ModTime is the file's modification time at discovery.
	ModTime time.Time

	// Depth is the number of directories between the search root and the file.
	Depth int
}

// Selection is the outcome of tie-breaking: the descriptor chosen for
// extraction plus every located file of the same kind.
type Selection struct {
	// Primary is the authoritative descriptor.
	Primary File

	// Related lists all located files of Primary.Kind in traversal order,
	// Primary first.
	Related []File
}

// Paths returns the paths of s.Related.
func (s Selection) Paths() []string {
	paths := make([]string, 0, len(s.Related))
	for _, f := range s.Related {
		paths = append(paths, f.Path)
	}
	return paths
}

// Known describes a recognized descriptor for discovery.
type Known struct {
	// Kind is the descriptor type.
	Kind Kind

	// Filename is the exact, case-sensitive basename.
	Filename string

	// Description is a human-readable description.
	Description string

	// Recursive kinds are searched below the root directory.
	Recursive bool
}

// knownDescriptors is the fixed, process-wide table of recognized files.
var knownDescriptors = []Known{
	{Kind: Maven, Filename: "pom.xml", Description: "Maven (pom.xml)"},
	{Kind: SetupScript, Filename: "setup.py", Description: "Python (setup.py)"},
	{Kind: PackageManifest, Filename: "package.json", Description: "Node.js (package.json)"},
	{Kind: Gradle, Filename: "build.gradle", Description: "Gradle (build.gradle)"},
	{Kind: InfoPlist, Filename: "Info.plist", Description: "iOS (Info.plist)", Recursive: true},
}

var byFilename = make(map[string]Known, len(knownDescriptors))

func init() {
	for _, k := range knownDescriptors {
		byFilename[k.Filename] = k
	}
}

// DefaultKnown returns the recognized descriptors.
func DefaultKnown() []Known {
	return append([]Known(nil), knownDescriptors...)
}

// Lookup returns the known descriptor for an exact basename.
func Lookup(filename string) (Known, bool) {
	k, ok := byFilename[filename]
	return k, ok
}
