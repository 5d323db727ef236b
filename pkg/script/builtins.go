package script

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/mandrel/pkg/geom"
	"github.com/chazu/mandrel/pkg/path"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms path DSL source before passing it to
// zygomys. It performs three transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: die-offset -> die_offset
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator).
//
//  3. Point literals: a list opening directly onto a number, such as
//     (30 0 0), becomes (point3 30 0 0). This lets scripts write bare
//     coordinate triples where zygomys would otherwise try to call the
//     first number as a function.
//
// All transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Rewrite numeric list heads into point3 calls.
		if b[i] == '(' && startsNumber(b, i+1) {
			result = append(result, []byte("(point3 ")...)
			i++
			continue
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a
		// minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isKWChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// startsNumber reports whether b[i:], after optional spaces, begins a
// numeric token: a digit, or a sign/dot immediately followed by a digit.
func startsNumber(b []byte, i int) bool {
	for i < len(b) && (b[i] == ' ' || b[i] == '\t') {
		i++
	}
	if i >= len(b) {
		return false
	}
	if isDigit(b[i]) {
		return true
	}
	if (b[i] == '-' || b[i] == '+' || b[i] == '.') && i+1 < len(b) {
		return isDigit(b[i+1]) || (b[i] != '.' && b[i+1] == '.' && i+2 < len(b) && isDigit(b[i+2]))
	}
	return false
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpPoint wraps a geom.Point3 so coordinate literals can flow between
// builtins.
type sexpPoint struct {
	pt geom.Point3
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(point3 %g %g %g)", p.pt.X, p.pt.Y, p.pt.Z)
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpElement wraps a declared path element; returned by straight/bend
// so scripts can bind them if they want to.
type sexpElement struct {
	elem path.Element
}

func (e *sexpElement) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %s)", e.elem.Kind, e.elem.Source)
}
func (e *sexpElement) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string. Returns the
// keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword
// argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toPoint extracts a Point3 from a sexpPoint.
func toPoint(s zygo.Sexp) (geom.Point3, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.pt, nil
	}
	return geom.Point3{}, fmt.Errorf("expected a point like (0 0 0), got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// collector accumulates elements as the script declares them.
type collector struct {
	elements []path.Element
}

func (c *collector) nextLabel(kind string) string {
	return fmt.Sprintf("%s %d", kind, len(c.elements)+1)
}

// registerBuiltins installs the path DSL builtins into a zygomys
// environment. The builtins append to the provided collector during
// evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens and point literals are converted.
func registerBuiltins(env *zygo.Zlisp, col *collector) {

	// -----------------------------------------------------------------------
	// (point3 30 0 0), also written as a bare triple (30 0 0)
	// -----------------------------------------------------------------------
	env.AddFunction("point3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("point3 requires exactly 3 coordinates, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point3: z: %w", err)
		}
		return &sexpPoint{pt: geom.Point3{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (straight (0 0 0) (30 0 0) :name "lead")
	// -----------------------------------------------------------------------
	env.AddFunction("straight", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("straight requires two endpoints, got %d", len(pa.positional))
		}
		a, err := toPoint(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("straight: start: %w", err)
		}
		b, err := toPoint(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("straight: end: %w", err)
		}

		label := col.nextLabel("straight")
		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("straight: name: %w", err)
			}
			label = s
		}

		elem, err := path.NewStraight(label, a, b)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("straight: %w", err)
		}
		col.elements = append(col.elements, elem)
		return &sexpElement{elem: elem}, nil
	})

	// -----------------------------------------------------------------------
	// (bend :radius 8.89 (30 0 0) (38.89 8.89 0) :name "b1")
	// -----------------------------------------------------------------------
	env.AddFunction("bend", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("bend requires two endpoints, got %d", len(pa.positional))
		}
		a, err := toPoint(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bend: start: %w", err)
		}
		b, err := toPoint(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bend: end: %w", err)
		}

		rv, ok := pa.kw["radius"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("bend requires a :radius")
		}
		radius, err := toFloat64(rv)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bend: radius: %w", err)
		}

		label := col.nextLabel("bend")
		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("bend: name: %w", err)
			}
			label = s
		}

		elem, err := path.NewBend(label, a, b, radius)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bend: %w", err)
		}
		col.elements = append(col.elements, elem)
		return &sexpElement{elem: elem}, nil
	})
}
