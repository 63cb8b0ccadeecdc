package schema

// Custom string types for type safety.
type (
	// ProjectType is a stack tag inferred from a marker file at the analysis root.
	ProjectType string

	// StackFamily groups project types that share an entry-point convention.
	StackFamily string

	// ArchitecturePattern is a label inferred from top-level directory names.
	ArchitecturePattern string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All project types supported.
const (
	JavaMavenType    ProjectType = "java_maven"
	JavaGradleType   ProjectType = "java_gradle"
	NodeJSType       ProjectType = "nodejs"
	PythonType       ProjectType = "python"
	PythonPoetryType ProjectType = "python_poetry"
	GoType           ProjectType = "go"
	RustType         ProjectType = "rust"
)

// All stack families supported.
const (
	JVMFamily    StackFamily = "jvm"
	NodeFamily   StackFamily = "node"
	PythonFamily StackFamily = "python"
	GoFamily     StackFamily = "go"
	RustFamily   StackFamily = "rust"
)

// All architecture patterns supported.
const (
	LayeredPattern       ArchitecturePattern = "Layered (Controller-Service-Repository)"
	DomainDrivenPattern  ArchitecturePattern = "Domain-Driven Design (DDD)"
	MicroservicesPattern ArchitecturePattern = "Microservices"
	MVCPattern           ArchitecturePattern = "MVC"

	// UnrecognizedPattern is reported alone when no rule fires.
	UnrecognizedPattern ArchitecturePattern = "No recognizable architecture pattern"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	NoneBackend       DatabaseBackend = "none" // default
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// ReportFileName is the name of the report persisted into the analyzed root.
const ReportFileName = "project_analysis.json"

// NoExtensionLabel is how the empty extension is rendered for humans.
const NoExtensionLabel = "(no extension)"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	NoneBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}
