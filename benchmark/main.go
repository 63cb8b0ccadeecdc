// Package main provides a performance benchmarking tool for the stackscan CLI.
// It measures execution times across project directories of different sizes,
// running each scenario several times and averaging the successful runs,
// then writes a CSV file for performance analysis and documentation.
//
// Prerequisites:
// - stackscan binary installed and available in PATH
// - Project directories present under the specified base directory
//
// Usage: go run benchmark/main.go [project-base-dir]
//
//	project-base-dir: Directory whose subdirectories are analyzed
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the average time of one scenario on one project.
type BenchmarkResult struct {
	Project  string
	Scenario string
	AvgTime  string
	Runs     int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	ProjectBase string
	Timeout     time.Duration
	Runs        int
	Projects    []string
	HistoryDB   string
}

// scenario is one set of stackscan flags to time.
type scenario struct {
	Name string
	Args []string
	Env  []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [project-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		ProjectBase: os.Args[1],
		Timeout:     5 * time.Minute,
		Runs:        4,
		HistoryDB:   filepath.Join(os.TempDir(), "stackscan_benchmark_history.db"),
	}

	projects, err := listProjects(config.ProjectBase)
	if err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}
	config.Projects = projects

	if _, err := exec.LookPath("stackscan"); err != nil {
		fmt.Printf("Prerequisites check failed: stackscan binary not found in PATH\n")
		os.Exit(1)
	}
	defer func() { _ = os.Remove(config.HistoryDB) }()

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// listProjects returns the subdirectories of base, in name order.
func listProjects(base string) ([]string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}
	var projects []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			projects = append(projects, e.Name())
		}
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("no project directories found in %s", base)
	}
	return projects, nil
}

// scenarios returns the flag sets timed on every project.
func scenarios(config BenchmarkConfig) []scenario {
	return []scenario{
		{Name: "default", Args: []string{"--output", "json", "--save=false"}},
		{Name: "deep", Args: []string{"--output", "json", "--save=false", "--max-depth", "64"}},
		{Name: "text", Args: []string{"--color", "no", "--save=false"}},
		{
			Name: "history",
			Args: []string{"--output", "json", "--save=false"},
			Env:  []string{"STACKSCAN_HISTORY_BACKEND=sqlite", "STACKSCAN_HISTORY_DB_CONNECT=" + config.HistoryDB},
		},
	}
}

// runBenchmarks executes every scenario across configured projects.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d projects, %v timeout, %d runs per scenario\n",
		len(config.Projects), config.Timeout, config.Runs)

	for _, project := range config.Projects {
		fmt.Printf("Benchmarking %s\n", project)
		projectPath := filepath.Join(config.ProjectBase, project)

		for _, sc := range scenarios(config) {
			times := runBenchmark(config, projectPath, sc)
			avg := "TIMEOUT"
			if len(times) > 0 {
				var sum float64
				for _, t := range times {
					sum += t
				}
				avg = fmt.Sprintf("%.3fs", sum/float64(len(times)))
			}
			fmt.Printf("  %-8s average: %s (%d/%d runs)\n", sc.Name, avg, len(times), config.Runs)
			results = append(results, BenchmarkResult{
				Project:  project,
				Scenario: sc.Name,
				AvgTime:  avg,
				Runs:     len(times),
			})
		}
	}

	return results
}

// runBenchmark runs one scenario config.Runs times and returns the successful durations in seconds.
func runBenchmark(config BenchmarkConfig, projectPath string, sc scenario) []float64 {
	args := append([]string{projectPath}, sc.Args...)

	var times []float64
	for range config.Runs {
		start := time.Now()

		cmd := exec.Command("stackscan", args...)
		cmd.Env = append(os.Environ(), sc.Env...)

		done := make(chan error, 1)
		go func() {
			_, err := cmd.CombinedOutput()
			done <- err
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}
	return times
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("stackscan_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"project", "scenario", "avg_time", "runs"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write([]string{r.Project, r.Scenario, r.AvgTime, fmt.Sprint(r.Runs)}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results grouped by scenario.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, name := range []string{"default", "deep", "text", "history"} {
		fmt.Printf("%s:\n", name)
		for _, r := range results {
			if r.Scenario == name {
				fmt.Printf("  %-20s: %s\n", r.Project, r.AvgTime)
			}
		}
	}
}
