package scene

import (
	"fmt"
	"regexp"
)

// hexColor matches the #rrggbb color form used throughout the frontend.
var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// DrawStyle is the presentation record attached to one drawn entity. It is
// purely cosmetic and has no effect on geometry. Construct with NewDrawStyle
// and treat as immutable.
type DrawStyle struct {
	FaceColor string  `json:"faceColor"` // #rrggbb fill color for faces
	EdgeColor string  `json:"edgeColor"` // #rrggbb color for edges/lines
	Opacity   float64 `json:"opacity"`   // 0 (invisible) .. 1 (opaque)
	EdgeWidth float64 `json:"edgeWidth"` // line width in pixels
	ShowFaces bool    `json:"showFaces"`
	ShowEdges bool    `json:"showEdges"`
}

// NewDrawStyle validates s and returns it unchanged. Field values are fixed
// at construction; there is no partial assignment after the fact.
func NewDrawStyle(s DrawStyle) (DrawStyle, error) {
	if err := s.Validate(); err != nil {
		return DrawStyle{}, err
	}
	return s, nil
}

// Validate checks the style record for out-of-range values.
func (s DrawStyle) Validate() error {
	if s.FaceColor != "" && !hexColor.MatchString(s.FaceColor) {
		return fmt.Errorf("face color %q is not a #rrggbb color", s.FaceColor)
	}
	if s.EdgeColor != "" && !hexColor.MatchString(s.EdgeColor) {
		return fmt.Errorf("edge color %q is not a #rrggbb color", s.EdgeColor)
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("opacity %g outside [0, 1]", s.Opacity)
	}
	if s.EdgeWidth < 0 {
		return fmt.Errorf("edge width %g is negative", s.EdgeWidth)
	}
	return nil
}

// Default layer styles. The three layers of a revolution (profile wire,
// axis indicator, solid) get visually distinct defaults so that an
// unstyled script still reads clearly in the viewer.

// DefaultProfileStyle is the default style for the profile wire layer.
func DefaultProfileStyle() DrawStyle {
	return DrawStyle{
		EdgeColor: "#E67E22",
		Opacity:   1,
		EdgeWidth: 2,
		ShowEdges: true,
	}
}

// DefaultAxisStyle is the default style for the axis indicator layer.
func DefaultAxisStyle() DrawStyle {
	return DrawStyle{
		EdgeColor: "#7F8C8D",
		Opacity:   0.8,
		EdgeWidth: 1,
		ShowEdges: true,
	}
}

// DefaultSolidStyle is the default style for the revolved solid layer.
func DefaultSolidStyle() DrawStyle {
	return DrawStyle{
		FaceColor: "#4A90D9",
		EdgeColor: "#2C3E50",
		Opacity:   0.65,
		EdgeWidth: 1,
		ShowFaces: true,
		ShowEdges: true,
	}
}
