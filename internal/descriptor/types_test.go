package descriptor

import "testing"

func TestKind_StringAndLookup(t *testing.T) {
	tests := []struct {
		kind     Kind
		name     string
		filename string
	}{
		{Maven, "maven", "pom.xml"},
		{SetupScript, "setuppy", "setup.py"},
		{PackageManifest, "packagejson", "package.json"},
		{Gradle, "gradle", "build.gradle"},
		{InfoPlist, "plist", "Info.plist"},
		{Unknown, "unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if tt.filename == "" {
				return
			}
			known, ok := Lookup(tt.filename)
			if !ok || known.Kind != tt.kind {
				t.Errorf("Lookup(%q) = %v, %v; want %v", tt.filename, known.Kind, ok, tt.kind)
			}
		})
	}
}

func TestLookup_IsCaseSensitive(t *testing.T) {
	if _, ok := Lookup("package.json"); !ok {
		t.Error("Lookup(package.json) not found")
	}
	for _, name := range []string{"Package.json", "POM.xml", "info.plist", "build.gradle.kts"} {
		if _, ok := Lookup(name); ok {
			t.Errorf("Lookup(%q) matched, want no match", name)
		}
	}
}

func TestDefaultKnown_OnlyInfoPlistIsRecursive(t *testing.T) {
	known := DefaultKnown()
	if len(known) != 5 {
		t.Fatalf("len(DefaultKnown()) = %d, want 5", len(known))
	}
	for _, k := range known {
		if k.Recursive != (k.Kind == InfoPlist) {
			t.Errorf("%s: Recursive = %v", k.Filename, k.Recursive)
		}
	}

	// Mutating the returned slice must not affect the table.
	known[0].Filename = "changed"
	if DefaultKnown()[0].Filename != "pom.xml" {
		t.Error("DefaultKnown() exposed the internal table")
	}
}

func TestSelection_Paths(t *testing.T) {
	sel := Selection{
		Primary: File{Path: "/p/a/Info.plist", Kind: InfoPlist},
		Related: []File{
			{Path: "/p/a/Info.plist", Kind: InfoPlist},
			{Path: "/p/b/Info.plist", Kind: InfoPlist},
		},
	}
	got := sel.Paths()
	if len(got) != 2 || got[0] != "/p/a/Info.plist" || got[1] != "/p/b/Info.plist" {
		t.Errorf("Paths() = %v", got)
	}
}
