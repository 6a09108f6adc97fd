package resolve

import (
	"regexp"
	"strings"

	"go.trai.ch/pack/internal/core/domain"
)

// ConditionPriority is the order conditions are tried in. Other condition
// names are ignored.
var ConditionPriority = []string{"browser", "require", "production", "default"}

// ResolveExports maps a subpath such as "." or "./utils/x" to a path relative
// to the package root. Keys are tried from last declared to first, and the
// first key equal to the subpath, or whose "*" pattern matches it, decides the
// outcome: if its target yields nothing the subpath is not exported.
func ResolveExports(exports *domain.Exports, subpath string) (string, bool) {
	if exports == nil {
		return "", false
	}

	for i := len(exports.Entries) - 1; i >= 0; i-- {
		entry := exports.Entries[i]

		captures, ok := matchKey(entry.Key, subpath)
		if !ok {
			continue
		}

		target, ok := selectTarget(entry.Target)
		if !ok {
			return "", false
		}
		return substitute(target, captures), true
	}

	return "", false
}

func matchKey(key, subpath string) ([]string, bool) {
	if key == subpath {
		return nil, true
	}
	if !strings.Contains(key, "*") {
		return nil, false
	}

	m := patternFor(key).FindStringSubmatch(subpath)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}

// patternFor escapes every metacharacter of key, turns each "*" into a
// capture group and anchors the result.
func patternFor(key string) *regexp.Regexp {
	parts := strings.Split(key, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile("^" + strings.Join(parts, "(.*)") + "$")
}

// selectTarget walks conditions by priority and fallback lists in order,
// returning the first non-empty path.
func selectTarget(t domain.ExportTarget) (string, bool) {
	switch {
	case t.Null:
		return "", false
	case t.IsPath():
		return t.Path, true
	case len(t.Fallbacks) > 0:
		for _, fb := range t.Fallbacks {
			if p, ok := selectTarget(fb); ok {
				return p, true
			}
		}
		return "", false
	}

	for _, name := range ConditionPriority {
		cond, ok := t.Condition(name)
		if !ok {
			continue
		}
		if p, ok := selectTarget(cond); ok {
			return p, true
		}
	}
	return "", false
}

// substitute replaces the "*" placeholders of target with captures in order.
// Placeholders past the last capture reuse it.
func substitute(target string, captures []string) string {
	if len(captures) == 0 || !strings.Contains(target, "*") {
		return target
	}

	var b strings.Builder
	n := 0
	for {
		i := strings.IndexByte(target, '*')
		if i < 0 {
			b.WriteString(target)
			return b.String()
		}
		b.WriteString(target[:i])
		b.WriteString(captures[min(n, len(captures)-1)])
		n++
		target = target[i+1:]
	}
}
