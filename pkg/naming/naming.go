// Package naming derives stable snake_case method names for API operations.
//
// A name is computed from two candidates, one built from the operation's
// summary and one from its HTTP verb and path. Once chosen, the name is
// recorded in a registry and reused verbatim on every later run.
package naming

import (
	"regexp"
	"strings"

	"github.com/apex/log"

	"github.com/micmurawski/osdu-client-sub000/pkg/registry"
	"github.com/micmurawski/osdu-client-sub000/pkg/utils"
)

var (
	wordBreaks     = regexp.MustCompile(`[-/]`)
	nonIdentifier  = regexp.MustCompile(`[^a-z0-9_\s]`)
	pathParam      = regexp.MustCompile(`\{[^}]*\}`)
	versionSegment = regexp.MustCompile(`^v[0-9]+(\.[0-9]+)*$`)
)

// Registry is the subset of *registry.Store used for naming.
type Registry interface {
	Lookup(key string) (registry.Entry, bool)
	Assign(key string, e registry.Entry) error
}

// Derive returns the method name for the operation identified by method and
// path. Names already present in reg are returned unchanged; new names are
// assigned in reg, which fails when another operation holds the same name.
func Derive(reg Registry, method, path, summary, description string) (string, error) {
	key := registry.Key(method, path)
	if e, ok := reg.Lookup(key); ok {
		return e.Name, nil
	}

	name := Choose(FromSummary(summary), FromPath(method, path))
	if PythonKeywords[name] || ClientMembers[name] {
		name += "_"
	}
	if err := reg.Assign(key, registry.Entry{Name: name, Summary: summary, Description: description}); err != nil {
		return "", err
	}
	log.WithFields(log.Fields{"operation": key, "name": name}).Debug("assigned method name")
	return name, nil
}

// FromSummary builds the summary candidate. It returns "" when the summary
// does not produce a usable identifier.
func FromSummary(summary string) string {
	s := strings.ToLower(utils.RemoveAccents(summary))
	s = wordBreaks.ReplaceAllString(s, " ")
	s = nonIdentifier.ReplaceAllString(s, "")
	s = utils.Underscore(s)
	if s == "" {
		return ""
	}

	s = "_" + s + "_"
	for _, r := range SummaryRules {
		for strings.Contains(s, r.Pattern) {
			s = strings.ReplaceAll(s, r.Pattern, r.Replacement)
		}
	}
	if i := strings.Index(s, "_and_"); i >= 0 {
		s = s[:i]
	}

	s = utils.CollapseUnderscores(s)
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return ""
	}
	return s
}

// FromPath builds the path candidate: a verb prefix followed by the
// non-parameter path segments.
func FromPath(method, path string) string {
	method = strings.ToUpper(method)
	prefix, ok := PathPrefixes[method]
	if !ok {
		prefix = strings.ToLower(method) + "_"
	}

	var parts []string
	for _, seg := range strings.Split(path, "/") {
		seg = pathParam.ReplaceAllString(seg, "")
		if seg == "" || strings.EqualFold(seg, "api") || versionSegment.MatchString(strings.ToLower(seg)) {
			continue
		}
		if s := utils.ToSnakeCase(seg); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return prefix + "root"
	}
	return prefix + strings.Join(parts, "_")
}

// Choose picks between the two candidates. A candidate starting with a
// preferred prefix wins, the summary candidate first. Otherwise the shorter
// one wins and equal lengths keep the summary candidate.
func Choose(fromSummary, fromPath string) string {
	switch {
	case fromSummary == "":
		return fromPath
	case fromPath == "":
		return fromSummary
	}
	if _, ok := PreferredPrefix(fromSummary); ok {
		return fromSummary
	}
	if _, ok := PreferredPrefix(fromPath); ok {
		return fromPath
	}
	if len(fromPath) < len(fromSummary) {
		return fromPath
	}
	return fromSummary
}

// PreferredPrefix returns the highest priority preferred prefix name starts
// with. The prefix must be followed by at least one character.
func PreferredPrefix(name string) (string, bool) {
	for _, p := range PreferredPrefixes {
		if len(name) > len(p) && strings.HasPrefix(name, p) {
			return p, true
		}
	}
	return "", false
}

// ClientMembers are attributes of the generated base client class that a
// method must not shadow.
var ClientMembers = map[string]bool{
	"get_headers": true, "service_name": true, "base_url": true,
	"data_partition_id": true, "tenant": true, "headers": true,
}

// PythonKeywords are reserved words that cannot be used as identifiers.
var PythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}
