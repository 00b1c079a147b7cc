package python

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/micmurawski/osdu-client-sub000/pkg/ir"
)

// orderPathParams extracts path parameter order as they appear in the path
func orderPathParams(op ir.IROperation) []ir.IRParam {
	params := op.ParamsIn(ir.IRParamInPath)
	index := map[string]int{}
	for i, p := range params {
		index[p.Name] = i
	}

	ordered := []ir.IRParam{}
	for _, name := range pathParamNames(op.Path) {
		if idx, ok := index[name]; ok {
			ordered = append(ordered, params[idx])
			delete(index, name)
			continue
		}
		// Undeclared template variables still need an argument.
		ordered = append(ordered, ir.IRParam{Name: name, In: ir.IRParamInPath, Required: true, Schema: ir.IRSchema{"type": "string"}})
	}
	return ordered
}

func pathParamNames(path string) []string {
	var names []string
	for i := 0; i < len(path); i++ {
		if path[i] != '{' {
			continue
		}
		j := strings.IndexByte(path[i:], '}')
		if j < 0 {
			break
		}
		names = append(names, path[i+1:i+j])
		i += j
	}
	return names
}

// pathTemplate converts /foo/{record-id} into the body of a python
// f-string, /foo/{record_id}, using the argument names in vars.
func pathTemplate(path string, vars map[string]string) string {
	var b strings.Builder
	for i := 0; i < len(path); i++ {
		if path[i] == '{' {
			if j := strings.IndexByte(path[i:], '}'); j >= 0 {
				name := path[i+1 : i+j]
				if v, ok := vars[name]; ok {
					name = v
				}
				b.WriteString("{" + name + "}")
				i += j
				continue
			}
		}
		writeFstringByte(&b, path[i])
	}
	return b.String()
}

// fstringText escapes s for use as literal text inside a python f-string.
func fstringText(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		writeFstringByte(&b, s[i])
	}
	return b.String()
}

func writeFstringByte(b *strings.Builder, c byte) {
	switch c {
	case '"', '\\':
		b.WriteByte('\\')
	case '{', '}':
		b.WriteByte(c)
	}
	b.WriteByte(c)
}

// docstring builds the body of a method docstring.
func docstring(m Method) string {
	var sections []string
	if s := strings.TrimSpace(m.Summary); s != "" {
		sections = append(sections, s)
	}
	if d := strings.TrimSpace(m.Doc); d != "" && d != strings.TrimSpace(m.Summary) {
		sections = append(sections, d)
	}

	var args []string
	for _, a := range m.Args {
		line := fmt.Sprintf("    %s (%s)", a.Name, a.Type)
		if d := strings.Join(strings.Fields(a.Description), " "); d != "" {
			line += ": " + d
		}
		args = append(args, line)
	}
	if len(args) > 0 {
		sections = append(sections, "Args:\n"+strings.Join(args, "\n"))
	}
	sections = append(sections, strings.ToUpper(m.HTTPMethod)+" "+m.Path)

	text := strings.Join(sections, "\n\n")
	text = strings.ReplaceAll(text, `\`, `\\`)
	return strings.ReplaceAll(text, `"""`, `\"\"\"`)
}

// pyString quotes s as a python string literal.
func pyString(s string) string {
	return strconv.Quote(s)
}

// pyLiteral renders a decoded JSON value as a python literal, nesting by
// indent. Mapping keys are sorted so the output is stable between runs.
func pyLiteral(v any, indent string) string {
	var b strings.Builder
	writeLiteral(&b, v, "", indent)
	return b.String()
}

func writeLiteral(b *strings.Builder, v any, prefix, step string) {
	switch t := v.(type) {
	case nil:
		b.WriteString("None")
	case bool:
		if t {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case string:
		b.WriteString(pyString(t))
	case float64:
		b.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
	case int:
		b.WriteString(strconv.Itoa(t))
	case []any:
		if len(t) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for _, item := range t {
			b.WriteString(prefix + step)
			writeLiteral(b, item, prefix+step, step)
			b.WriteString(",\n")
		}
		b.WriteString(prefix + "]")
	case map[string]any:
		if len(t) == 0 {
			b.WriteString("{}")
			return
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("{\n")
		for _, k := range keys {
			b.WriteString(prefix + step + pyString(k) + ": ")
			writeLiteral(b, t[k], prefix+step, step)
			b.WriteString(",\n")
		}
		b.WriteString(prefix + "}")
	default:
		b.WriteString(pyString(fmt.Sprint(t)))
	}
}
