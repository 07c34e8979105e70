package manifest

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// One entry of the dependency manifest: a package name with an optional
// version constraint (e.g. "Django==5.0.6" or "gunicorn").
type Requirement struct {
	Name       string
	Constraint string
}

// Version comparison operators recognized in constraint expressions, longest
// first so two-character operators win over their one-character prefixes.
var constraintOps = []string{"==", ">=", "<=", "~=", "!=", ">", "<"}

// Package names may carry an extras suffix (e.g. "uvicorn[standard]").
var requirementNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*(\[[A-Za-z0-9._,-]+\])?$`)

// Parses a dependency manifest: one requirement per line, with blank lines
// and #-comments ignored.
//
// A manifest that yields no requirements is an error, as is any line that is
// not a package name followed by an optional constraint. Validation happens
// here, before the build pipeline touches the source tree, so a corrupt
// manifest fails the build early.
func ParseRequirements(r io.Reader) ([]Requirement, error) {
	var reqs []Requirement

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++

		line := strings.TrimSpace(scanner.Text())
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		req, err := parseRequirement(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrRequirements, lineno, err)
		}
		reqs = append(reqs, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequirements, err)
	}

	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: no requirements declared", ErrRequirements)
	}

	return reqs, nil
}

// Parses a single requirement line into name and constraint.
func parseRequirement(line string) (Requirement, error) {
	name := line
	constraint := ""

	for _, op := range constraintOps {
		if i := strings.Index(line, op); i >= 0 {
			name = strings.TrimSpace(line[:i])
			constraint = strings.TrimSpace(line[i:])
			break
		}
	}

	if !requirementNamePattern.MatchString(name) {
		return Requirement{}, fmt.Errorf("malformed requirement %q", line)
	}
	if constraint != "" && !validConstraint(constraint) {
		return Requirement{}, fmt.Errorf("malformed constraint %q", constraint)
	}

	return Requirement{Name: name, Constraint: constraint}, nil
}

// Reports whether every comma-separated clause is an operator followed by a
// non-empty version.
func validConstraint(constraint string) bool {
	for _, clause := range strings.Split(constraint, ",") {
		clause = strings.TrimSpace(clause)
		if !validClause(clause) {
			return false
		}
	}
	return true
}

func validClause(clause string) bool {
	for _, op := range constraintOps {
		if version, ok := strings.CutPrefix(clause, op); ok {
			return strings.TrimSpace(version) != ""
		}
	}
	return false
}
