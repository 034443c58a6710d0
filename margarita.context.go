package margarita

import (
	"strconv"
	"strings"
)

// Context is the immutable variable snapshot a template renders against.
// Variable paths use dot notation with optional bracket indexing:
// "user.name", "items[0]", `labels["key"]`. A context is safe for
// concurrent use by any number of renders.
type Context struct {
	data map[string]any
}

// NewContext creates a context over the given data.
// If data is nil, an empty map is used. The map is not copied; callers must
// not mutate it after handing it over.
func NewContext(data map[string]any) *Context {
	if data == nil {
		data = make(map[string]any)
	}
	return &Context{data: data}
}

// Get retrieves a value by path.
// Returns the value and true if found, or nil and false if not found.
func (c *Context) Get(path string) (any, bool) {
	segments, ok := splitPath(path)
	if !ok {
		return nil, false
	}

	var current any = c.data
	for _, seg := range segments {
		next, ok := seg.resolve(current)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// GetString retrieves a value by path rendered to its text form.
// Returns empty string if not found.
func (c *Context) GetString(path string) string {
	val, ok := c.Get(path)
	if !ok {
		return ""
	}
	return stringifyValue(val)
}

// GetDefault retrieves a value by path, falling back to def when absent.
func (c *Context) GetDefault(path string, def any) any {
	val, ok := c.Get(path)
	if !ok {
		return def
	}
	return val
}

// Has reports whether the path resolves to a value.
func (c *Context) Has(path string) bool {
	_, ok := c.Get(path)
	return ok
}

// Keys returns the top-level variable names.
func (c *Context) Keys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}

// pathSegment is one step of a variable path: a map key or a list index.
type pathSegment struct {
	key     string
	index   int
	isIndex bool
}

// resolve applies the segment to a value.
func (s pathSegment) resolve(current any) (any, bool) {
	if s.isIndex {
		switch v := current.(type) {
		case []any:
			if s.index < 0 || s.index >= len(v) {
				return nil, false
			}
			return v[s.index], true
		case []string:
			if s.index < 0 || s.index >= len(v) {
				return nil, false
			}
			return v[s.index], true
		default:
			return nil, false
		}
	}

	switch v := current.(type) {
	case map[string]any:
		val, ok := v[s.key]
		return val, ok
	case map[string]string:
		val, ok := v[s.key]
		return val, ok
	default:
		return nil, false
	}
}

// splitPath parses a variable path into segments. Returns false on
// malformed paths (empty segments, unterminated brackets).
func splitPath(path string) ([]pathSegment, bool) {
	if path == "" {
		return nil, false
	}

	var segments []pathSegment
	i := 0
	for i < len(path) {
		switch path[i] {
		case '.':
			i++
			if i >= len(path) {
				return nil, false
			}
		case '[':
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				return nil, false
			}
			seg, ok := parseBracket(path[i+1 : i+end])
			if !ok {
				return nil, false
			}
			segments = append(segments, seg)
			i += end + 1
		default:
			start := i
			for i < len(path) && path[i] != '.' && path[i] != '[' {
				i++
			}
			segments = append(segments, pathSegment{key: path[start:i]})
		}
	}

	if len(segments) == 0 {
		return nil, false
	}
	return segments, true
}

// parseBracket interprets a bracket body as a numeric index or a quoted key.
func parseBracket(body string) (pathSegment, bool) {
	body = strings.TrimSpace(body)
	if body == "" {
		return pathSegment{}, false
	}

	if len(body) >= 2 {
		first, last := body[0], body[len(body)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return pathSegment{key: body[1 : len(body)-1]}, true
		}
	}

	idx, err := strconv.Atoi(body)
	if err != nil {
		return pathSegment{}, false
	}
	return pathSegment{index: idx, isIndex: true}, true
}
