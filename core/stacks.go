package core

import "github.com/huangsam/stackscan/schema"

// markerRule ties a project type to the manifest that proves it.
type markerRule struct {
	Type   schema.ProjectType
	Marker string
	Family schema.StackFamily
}

// entryRule describes how a stack family names its entry points.
// A non-empty Suffix searches the whole tree; Candidates are root-relative paths.
type entryRule struct {
	Family     schema.StackFamily
	Suffix     string
	Candidates []string
}

// markerRules is evaluated in order and defines the order of detected types.
var markerRules = []markerRule{
	{Type: schema.JavaMavenType, Marker: "pom.xml", Family: schema.JVMFamily},
	{Type: schema.JavaGradleType, Marker: "build.gradle", Family: schema.JVMFamily},
	{Type: schema.NodeJSType, Marker: "package.json", Family: schema.NodeFamily},
	{Type: schema.PythonType, Marker: "requirements.txt", Family: schema.PythonFamily},
	{Type: schema.PythonPoetryType, Marker: "pyproject.toml", Family: schema.PythonFamily},
	{Type: schema.GoType, Marker: "go.mod", Family: schema.GoFamily},
	{Type: schema.RustType, Marker: "Cargo.toml", Family: schema.RustFamily},
}

// entryRules is evaluated in order and defines the order of entry points.
var entryRules = []entryRule{
	{Family: schema.JVMFamily, Suffix: "Application.java"},
	{Family: schema.NodeFamily, Candidates: []string{"index.js", "app.js", "server.js", "main.js"}},
	{Family: schema.PythonFamily, Candidates: []string{"__main__.py", "main.py", "app.py", "manage.py"}},
	{Family: schema.GoFamily, Candidates: []string{"main.go"}},
	{Family: schema.RustFamily, Candidates: []string{"src/main.rs"}},
}

// sourceExtensions are the only extensions whose lines are counted.
var sourceExtensions = []string{".java", ".js", ".py", ".go", ".ts", ".tsx"}

// SourceExtensions returns a copy of the line-counting allow-list.
func SourceExtensions() []string {
	return append([]string{}, sourceExtensions...)
}

// MarkerFor returns the marker filename of a project type.
func MarkerFor(pt schema.ProjectType) (string, bool) {
	for _, rule := range markerRules {
		if rule.Type == pt {
			return rule.Marker, true
		}
	}
	return "", false
}

// FamilyOf returns the stack family of a project type.
func FamilyOf(pt schema.ProjectType) (schema.StackFamily, bool) {
	for _, rule := range markerRules {
		if rule.Type == pt {
			return rule.Family, true
		}
	}
	return "", false
}
