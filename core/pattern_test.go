package core

import (
	"testing"

	"github.com/huangsam/stackscan/schema"
	"github.com/stretchr/testify/assert"
)

func dirsOf(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func TestClassifyArchitecture(t *testing.T) {
	tests := []struct {
		name     string
		dirs     map[string]struct{}
		expected []schema.ArchitecturePattern
	}{
		{
			name:     "nothing recognized",
			dirs:     dirsOf(),
			expected: []schema.ArchitecturePattern{schema.UnrecognizedPattern},
		},
		{
			name:     "layered needs all three",
			dirs:     dirsOf("controller", "service", "repository"),
			expected: []schema.ArchitecturePattern{schema.LayeredPattern},
		},
		{
			name:     "layered without repository",
			dirs:     dirsOf("controller", "service"),
			expected: []schema.ArchitecturePattern{schema.UnrecognizedPattern},
		},
		{
			name:     "layered without controller",
			dirs:     dirsOf("service", "repository"),
			expected: []schema.ArchitecturePattern{schema.UnrecognizedPattern},
		},
		{
			name:     "layered without service",
			dirs:     dirsOf("controller", "repository"),
			expected: []schema.ArchitecturePattern{schema.UnrecognizedPattern},
		},
		{
			name:     "layered is case sensitive",
			dirs:     dirsOf("Controller", "Service", "Repository"),
			expected: []schema.ArchitecturePattern{schema.UnrecognizedPattern},
		},
		{
			name:     "ddd with any one name",
			dirs:     dirsOf("infrastructure"),
			expected: []schema.ArchitecturePattern{schema.DomainDrivenPattern},
		},
		{
			name:     "exactly three services is not microservices",
			dirs:     dirsOf("user-service", "OrderService", "billing_service"),
			expected: []schema.ArchitecturePattern{schema.UnrecognizedPattern},
		},
		{
			name:     "four services is microservices",
			dirs:     dirsOf("user-service", "OrderService", "billing_service", "SERVICES"),
			expected: []schema.ArchitecturePattern{schema.MicroservicesPattern},
		},
		{
			name:     "mvc with any one name",
			dirs:     dirsOf("views"),
			expected: []schema.ArchitecturePattern{schema.MVCPattern},
		},
		{
			name: "rules fire independently in table order",
			dirs: dirsOf("controller", "service", "repository", "domain", "models",
				"a-service", "b-service", "c-service"),
			expected: []schema.ArchitecturePattern{
				schema.LayeredPattern,
				schema.DomainDrivenPattern,
				schema.MicroservicesPattern,
				schema.MVCPattern,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyArchitecture(tt.dirs))
		})
	}
}

func TestTopLevelDirs(t *testing.T) {
	files := schema.FileGrouping{
		".go":  {"main.go", "cmd/app/main.go", "internal/x.go"},
		"":     {"Makefile", "scripts/build"},
		".txt": {"cmd/readme.txt"},
	}
	assert.Equal(t, dirsOf("cmd", "internal", "scripts"), TopLevelDirs(files))
	assert.Empty(t, TopLevelDirs(schema.FileGrouping{}))
}

func TestRootFilesDoNotCountAsDirectories(t *testing.T) {
	files := schema.FileGrouping{"": {"models", "views", "controllers"}}
	assert.Equal(t, []schema.ArchitecturePattern{schema.UnrecognizedPattern}, ClassifyArchitecture(TopLevelDirs(files)))
}
