// Package manifest reads the conda package list used to assemble the
// Windows build environment.
//
// The format is line oriented. Blank lines separate thematic groups, the
// first comment line of a group is its title, and a commented-out package
// line keeps the entry visible while disabling it:
//
//	# Scientific stack
//	numpy=1.20
//	# scipy=1.6
//
// Comment lines that do not parse as a package spec are free-form notes
// and are ignored.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Package is a single manifest entry.
type Package struct {
	Name       string
	Constraint string
	Disabled   bool
	Line       int
}

// Spec returns the entry in conda's name=constraint form.
func (p Package) Spec() string {
	return p.Name + p.Constraint
}

// Group is a titled run of manifest entries.
type Group struct {
	Title    string
	Packages []Package
}

// Manifest is a parsed package list.
type Manifest struct {
	Groups []Group
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Parse reads the manifest from r. Active lines that do not parse as a
// package spec are an error; groups that end up with no packages, such as
// file header comments, are dropped.
func Parse(r io.Reader) (*Manifest, error) {
	m := &Manifest{}

	var current *Group

	flush := func() {
		if current != nil && len(current.Packages) > 0 {
			m.Groups = append(m.Groups, *current)
		}

		current = nil
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			flush()
			continue
		}

		if strings.HasPrefix(line, "#") {
			content := strings.TrimSpace(strings.TrimLeft(line, "#"))
			if content == "" {
				continue
			}

			if current == nil {
				current = &Group{Title: content}
				continue
			}

			if name, constraint, ok := parseSpec(content); ok {
				current.Packages = append(current.Packages, Package{
					Name:       name,
					Constraint: constraint,
					Disabled:   true,
					Line:       lineNo,
				})
			}

			continue
		}

		name, constraint, ok := parseSpec(line)
		if !ok {
			return nil, fmt.Errorf("line %d: invalid package spec: %s", lineNo, line)
		}

		if current == nil {
			current = &Group{}
		}

		current.Packages = append(current.Packages, Package{
			Name:       name,
			Constraint: constraint,
			Line:       lineNo,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	flush()

	return m, nil
}

// Active returns the packages that are not commented out.
func (m *Manifest) Active() []Package {
	return m.filter(false)
}

// Disabled returns the commented-out packages.
func (m *Manifest) Disabled() []Package {
	return m.filter(true)
}

func (m *Manifest) filter(disabled bool) []Package {
	var pkgs []Package

	for _, g := range m.Groups {
		for _, p := range g.Packages {
			if p.Disabled == disabled {
				pkgs = append(pkgs, p)
			}
		}
	}

	return pkgs
}

// Lint reports consistency problems Parse tolerates: packages listed twice,
// and packages that appear both active and disabled.
func (m *Manifest) Lint() []string {
	var issues []string

	type seen struct {
		line     int
		disabled bool
	}

	first := make(map[string]seen)

	for _, g := range m.Groups {
		for _, p := range g.Packages {
			prev, dup := first[p.Name]
			if !dup {
				first[p.Name] = seen{line: p.Line, disabled: p.Disabled}
				continue
			}

			switch {
			case !prev.disabled && !p.Disabled:
				issues = append(issues, fmt.Sprintf("line %d: duplicate package %s (first listed on line %d)", p.Line, p.Name, prev.line))
			case prev.disabled != p.Disabled:
				issues = append(issues, fmt.Sprintf("line %d: package %s is listed both active and disabled (line %d)", p.Line, p.Name, prev.line))
			}
		}
	}

	return issues
}

// parseSpec splits a line into a package name and an optional version
// constraint such as =1.20, >=1.6 or ==2.0.1=py39_0.
func parseSpec(s string) (name, constraint string, ok bool) {
	i := strings.IndexAny(s, "=<>!")
	if i < 0 {
		name = strings.TrimSpace(s)
		if !isValidName(name) {
			return "", "", false
		}

		return name, "", true
	}

	name = strings.TrimSpace(s[:i])
	constraint = strings.ReplaceAll(s[i:], " ", "")

	if !isValidName(name) || len(constraint) < 2 {
		return "", "", false
	}

	return name, constraint, true
}

func isValidName(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case (r == '.' || r == '_' || r == '-') && i > 0:
		default:
			return false
		}
	}

	return true
}
