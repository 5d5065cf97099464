package analyzer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var pomArtifactPattern = regexp.MustCompile(`<artifactId>([^<]+)</artifactId>`)

// parseDependencies inspects well-known manifest files at the repository root
// and returns dependency names grouped by ecosystem. Missing or malformed
// manifests are silently skipped.
func parseDependencies(root string) map[string][]string {
	deps := make(map[string][]string)

	if names := parseRequirementsTxt(filepath.Join(root, "requirements.txt")); len(names) > 0 {
		deps["python"] = names
	}
	if names := parsePackageJSON(filepath.Join(root, "package.json")); len(names) > 0 {
		deps["javascript"] = names
	}
	if names := parsePomXML(filepath.Join(root, "pom.xml")); len(names) > 0 {
		deps["java"] = names
	}
	if names := parseGoMod(filepath.Join(root, "go.mod")); len(names) > 0 {
		deps["go"] = names
	}
	if names := parseEnvironmentYML(filepath.Join(root, "environment.yml")); len(names) > 0 {
		deps["conda"] = names
	}
	if names := parsePubspecYAML(filepath.Join(root, "pubspec.yaml")); len(names) > 0 {
		deps["dart"] = names
	}
	return deps
}

func parseRequirementsTxt(path string) []string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var names []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		// Strip version constraints and environment markers.
		for _, sep := range []string{"==", ">=", "<=", "~=", ">", "<", "!=", ";", "["} {
			if idx := strings.Index(line, sep); idx >= 0 {
				line = line[:idx]
			}
		}
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func parsePackageJSON(path string) []string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil
	}
	var names []string
	for name := range manifest.Dependencies {
		names = append(names, name)
	}
	for name := range manifest.DevDependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parsePomXML(path string) []string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var names []string
	seen := make(map[string]bool)
	for _, match := range pomArtifactPattern.FindAllStringSubmatch(string(raw), -1) {
		name := strings.TrimSpace(match[1])
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func parseGoMod(path string) []string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var names []string
	inBlock := false
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "require (":
			inBlock = true
			continue
		case inBlock && line == ")":
			inBlock = false
			continue
		}
		var spec string
		if inBlock {
			spec = line
		} else if strings.HasPrefix(line, "require ") {
			spec = strings.TrimPrefix(line, "require ")
		} else {
			continue
		}
		if spec == "" || strings.HasPrefix(spec, "//") || strings.Contains(spec, "// indirect") {
			continue
		}
		fields := strings.Fields(spec)
		if len(fields) >= 1 {
			names = append(names, fields[0])
		}
	}
	return names
}

func parseEnvironmentYML(path string) []string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var manifest struct {
		Dependencies []any `yaml:"dependencies"`
	}
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil
	}
	var names []string
	for _, dep := range manifest.Dependencies {
		spec, ok := dep.(string)
		if !ok {
			// Nested pip sections carry their own list; skip them.
			continue
		}
		for _, sep := range []string{"==", ">=", "<=", "="} {
			if idx := strings.Index(spec, sep); idx >= 0 {
				spec = spec[:idx]
			}
		}
		if name := strings.TrimSpace(spec); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func parsePubspecYAML(path string) []string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var manifest struct {
		Dependencies    map[string]any `yaml:"dependencies"`
		DevDependencies map[string]any `yaml:"dev_dependencies"`
	}
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil
	}
	var names []string
	for name := range manifest.Dependencies {
		names = append(names, name)
	}
	for name := range manifest.DevDependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
