package engine

import (
	"fmt"
	"strings"
	"sync/atomic"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/latheworks/lathe/pkg/geom"
	"github.com/latheworks/lathe/pkg/scene"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource transforms Lathe script source before passing it to
// zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal),
//     avoiding global symbol registration for keywords.
//  2. Kebab-case to underscore outside keywords: solid-style -> solid_style,
//     since zygomys reads a bare hyphen as subtraction.
//  3. ; line comments become // comments, zygomys's comment form.
//
// All transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Copy quoted string literals untouched.
		if b[i] == '"' || b[i] == '`' {
			quote := b[i]
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != quote {
				if quote == '"' && b[i] == '\\' && i+1 < len(b) {
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
		// ; comments -> // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// :keyword -> "__kw_keyword". Preserve := assignment.
		if b[i] == ':' && i+1 < len(b) && b[i+1] != '=' && isLetter(b[i+1]) {
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			result = append(result, '"')
			result = append(result, []byte(kwPrefix)...)
			result = append(result, b[i+1:j]...)
			result = append(result, '"')
			i = j
			continue
		}
		// Kebab identifier: hyphen inside an identifier token. The token
		// must start with a letter or underscore so numeric literals
		// (5-3, 1e-5) keep their minus.
		if b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isIdentChar(b[i+1]) {
			j := i - 1
			for j > 0 && isIdentChar(b[j-1]) {
				j--
			}
			if isLetter(b[j]) || b[j] == '_' {
				result = append(result, '_')
				i++
				continue
			}
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a 3-vector, used for axes and profile points.
type sexpVec3 struct {
	x, y, z float64
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.x, v.y, v.z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpProfile wraps a validated geom.Profile.
type sexpProfile struct {
	p geom.Profile
}

func (p *sexpProfile) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(profile %d points)", p.p.Len())
}
func (p *sexpProfile) Type() *zygo.RegisteredType { return nil }

// sexpStyle wraps a validated scene.DrawStyle.
type sexpStyle struct {
	s scene.DrawStyle
}

func (s *sexpStyle) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(style :opacity %g)", s.s.Opacity)
}
func (s *sexpStyle) Type() *zygo.RegisteredType { return nil }

// sexpItemRef names an item already added to the scene.
type sexpItemRef struct {
	name string
}

func (r *sexpItemRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(revolution %q)", r.name)
}
func (r *sexpItemRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
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

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
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
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
		} else {
			// Keyword at end with no value, treat as flag with nil.
			result.kw[name] = zygo.SexpNull
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

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a vector from a sexpVec3.
func toVec3(s zygo.Sexp) (*sexpVec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v, nil
	}
	return nil, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toStyle extracts a DrawStyle from a sexpStyle.
func toStyle(s zygo.Sexp) (scene.DrawStyle, error) {
	if st, ok := s.(*sexpStyle); ok {
		return st.s, nil
	}
	return scene.DrawStyle{}, fmt.Errorf("expected style, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Anonymous item naming
// ---------------------------------------------------------------------------

// itemCounter provides unique suffixes for unnamed revolutions.
var itemCounter uint64

func nextItemName() string {
	n := atomic.AddUint64(&itemCounter, 1)
	return fmt.Sprintf("revolution_%d", n)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the Lathe DSL builtins into a zygomys
// environment. The builtins populate the provided scene builder during
// evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *scene.Builder) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}
		return &sexpVec3{x: x, y: y, z: z}, nil
	})

	// -----------------------------------------------------------------------
	// (profile :offset 5 :width 5 :height 3)
	// -----------------------------------------------------------------------
	env.AddFunction("profile", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var offset, width, height float64

		if v, ok := pa.kw["offset"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("profile: offset: %w", err)
			}
			offset = f
		}
		if v, ok := pa.kw["width"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("profile: width: %w", err)
			}
			width = f
		}
		if v, ok := pa.kw["height"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("profile: height: %w", err)
			}
			height = f
		}
		if width <= 0 || height <= 0 {
			return zygo.SexpNull, fmt.Errorf("profile: width and height must be positive, got %g x %g", width, height)
		}

		return &sexpProfile{p: geom.RectProfile(offset, width, height)}, nil
	})

	// -----------------------------------------------------------------------
	// (points (vec3 5 -1.5 0) (vec3 10 -1.5 0) ... (vec3 5 -1.5 0))
	// -----------------------------------------------------------------------
	env.AddFunction("points", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pts := make([]geom.Point3, 0, len(args))
		for i, a := range args {
			v, err := toVec3(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("points: argument %d: %w", i, err)
			}
			pts = append(pts, geom.Pt(v.x, v.y, v.z))
		}
		p, err := geom.NewProfile(pts)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("points: %w", err)
		}
		return &sexpProfile{p: p}, nil
	})

	// -----------------------------------------------------------------------
	// (style :face-color "#4A90D9" :edge-color "#2C3E50" :opacity 0.5
	//        :edge-width 2 :show-faces true :show-edges false)
	// -----------------------------------------------------------------------
	env.AddFunction("style", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		st := scene.DrawStyle{Opacity: 1, EdgeWidth: 1, ShowFaces: true, ShowEdges: true}

		if v, ok := pa.kw["face-color"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("style: face-color: %w", err)
			}
			st.FaceColor = s
		}
		if v, ok := pa.kw["edge-color"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("style: edge-color: %w", err)
			}
			st.EdgeColor = s
		}
		if v, ok := pa.kw["opacity"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("style: opacity: %w", err)
			}
			st.Opacity = f
		}
		if v, ok := pa.kw["edge-width"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("style: edge-width: %w", err)
			}
			st.EdgeWidth = f
		}
		if v, ok := pa.kw["show-faces"]; ok {
			bl, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("style: show-faces: %w", err)
			}
			st.ShowFaces = bl
		}
		if v, ok := pa.kw["show-edges"]; ok {
			bl, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("style: show-edges: %w", err)
			}
			st.ShowEdges = bl
		}

		validated, err := scene.NewDrawStyle(st)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("style: %w", err)
		}
		return &sexpStyle{s: validated}, nil
	})

	// -----------------------------------------------------------------------
	// (revolve prof :axis (vec3 0 1 0) :angle 360 :name "ring"
	//          :profile-style st :axis-style st :solid-style st)
	// -----------------------------------------------------------------------
	env.AddFunction("revolve", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("revolve requires a profile argument")
		}
		prof, ok := pa.positional[0].(*sexpProfile)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("revolve: expected profile, got %T", pa.positional[0])
		}

		axis := geom.Dir(0, 1, 0)
		if v, ok := pa.kw["axis"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("revolve: axis: %w", err)
			}
			axis = geom.Dir(vec.x, vec.y, vec.z)
		}

		angle := 360.0
		if v, ok := pa.kw["angle"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("revolve: angle: %w", err)
			}
			angle = f
		}

		itemName := nextItemName()
		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("revolve: name: %w", err)
			}
			itemName = s
		}

		item := scene.NewItem(itemName, prof.p, axis, angle)
		for kw, dst := range map[string]*scene.DrawStyle{
			"profile-style": &item.ProfileStyle,
			"axis-style":    &item.AxisStyle,
			"solid-style":   &item.SolidStyle,
		} {
			if v, ok := pa.kw[kw]; ok {
				st, err := toStyle(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("revolve: %s: %w", kw, err)
				}
				*dst = st
			}
		}

		if err := b.AddRevolution(item); err != nil {
			return zygo.SexpNull, fmt.Errorf("revolve: %w", err)
		}
		return &sexpItemRef{name: itemName}, nil
	})
}
