// SPDX-License-Identifier: MPL-2.0

package uvsfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"uvs-cli/internal/issue"

	"github.com/pelletier/go-toml/v2"
)

// PyprojectName is the configuration file uvs reads from.
const PyprojectName = "pyproject.toml"

// Find walks up from startDir looking for a pyproject.toml. An empty
// startDir means the current working directory.
func Find(startDir string) (string, error) {
	dir := startDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		dir = cwd
	}

	for {
		candidate := filepath.Join(dir, PyprojectName)
		if fileExists(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", issue.NewErrorContext().
		WithOperation("locate " + PyprojectName).
		WithSuggestion("Run uvs from inside a project that has a pyproject.toml").
		Wrap(fmt.Errorf("no %s found in %s or any parent directory", PyprojectName, startDir)).
		BuildError()
}

// Load reads path and parses its [tool.uvs] table into a File.
// Editable paths are resolved relative to the pyproject directory.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read " + PyprojectName).
			WithResource(path).
			WithSuggestion("Check that the file exists and is readable").
			Wrap(err).
			BuildError()
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse " + PyprojectName).
			WithResource(path).
			WithSuggestion("Check that the file contains valid TOML syntax").
			Wrap(err).
			BuildError()
	}

	uvs := tableAt(raw, "tool", "uvs")
	scriptsTable := tableAt(uvs, "scripts")
	if len(scriptsTable) == 0 {
		return nil, issue.NewErrorContext().
			WithOperation("load scripts").
			WithResource(path).
			WithSuggestion("Add a [tool.uvs.scripts] table with at least one script").
			Wrap(fmt.Errorf("no [tool.uvs.scripts] section found in %s", path)).
			BuildError()
	}

	scripts := make(Registry, len(scriptsTable))
	for name, value := range scriptsTable {
		script, err := parseScript(name, value)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("parse script definitions").
				WithResource(path).
				WithSuggestion("Script values must be a string, an array of strings, or a table with a 'cmd' string").
				Wrap(err).
				BuildError()
		}
		scripts[name] = script
	}

	projectDir := filepath.Dir(path)
	editable, err := stringList(uvs["editable"], "editable")
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse editable paths").
			WithResource(path).
			Wrap(err).
			BuildError()
	}
	for i, entry := range editable {
		resolved, err := resolvePath(projectDir, entry)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("resolve editable path").
				WithResource(entry).
				Wrap(err).
				BuildError()
		}
		editable[i] = resolved
	}

	features, err := stringList(uvs["features"], "features")
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse feature names").
			WithResource(path).
			Wrap(err).
			BuildError()
	}

	return &File{
		Path:     path,
		Scripts:  scripts,
		Editable: editable,
		Features: features,
	}, nil
}

// parseScript normalizes one script value into a Script.
func parseScript(name string, value any) (*Script, error) {
	switch v := value.(type) {
	case string:
		return &Script{Name: name, Commands: []string{v}}, nil

	case []any:
		commands := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("script %q: array items must all be strings, got %v", name, item)
			}
			commands = append(commands, s)
		}
		if len(commands) == 0 {
			return nil, fmt.Errorf("script %q: array form must not be empty", name)
		}
		return &Script{Name: name, Commands: commands, Composite: true}, nil

	case map[string]any:
		cmd, ok := v["cmd"].(string)
		if !ok || cmd == "" {
			return nil, fmt.Errorf("script %q: table form requires a 'cmd' string", name)
		}
		env, err := envTable(name, v["env"])
		if err != nil {
			return nil, err
		}
		help, _ := v["help"].(string)
		return &Script{Name: name, Commands: []string{cmd}, Env: env, Help: help}, nil

	default:
		return nil, fmt.Errorf("script %q: value must be a string, array, or table, got %T", name, value)
	}
}

// envTable normalizes an env table, stringifying scalar values the way TOML
// users tend to write them (PORT = 8080).
func envTable(script string, value any) (map[string]string, error) {
	if value == nil {
		return nil, nil
	}
	table, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("script %q: 'env' must be a table of strings", script)
	}
	env := make(map[string]string, len(table))
	for k, v := range table {
		s, err := scalarString(v)
		if err != nil {
			return nil, fmt.Errorf("script %q: env value for %q: %w", script, k, err)
		}
		env[k] = s
	}
	return env, nil
}

// scalarString stringifies TOML scalar values; tables and arrays are rejected.
func scalarString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("must be a string or scalar, got %T", v)
	}
}

// stringList validates that value, if present, is an array of strings.
func stringList(value any, field string) ([]string, error) {
	if value == nil {
		return nil, nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("'%s' must be an array of strings", field)
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("'%s' items must be strings, got %v", field, item)
		}
		result = append(result, s)
	}
	return result, nil
}

// resolvePath makes entry absolute, interpreting relative entries against
// the pyproject directory.
func resolvePath(projectDir, entry string) (string, error) {
	if filepath.IsAbs(entry) {
		return filepath.Clean(entry), nil
	}
	return filepath.Abs(filepath.Join(projectDir, entry))
}

// tableAt descends through nested TOML tables, returning nil when any level
// is missing or not a table.
func tableAt(root map[string]any, keys ...string) map[string]any {
	current := root
	for _, key := range keys {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
