package golang

import (
	"fmt"

	"github.com/broady/openenum/openenumgen/ir"
)

// Annotation formats understood by Annotator.
const (
	AnnotateJSON = "json"
	AnnotateText = "text"
)

// Annotator marks the factory and rendering operations as the canonical
// decoder and encoder for the selected formats. The emitter turns the hints
// into MarshalJSON/UnmarshalJSON and MarshalText/UnmarshalText methods.
type Annotator struct {
	JSON bool
	Text bool
}

// NewAnnotator returns an Annotator for the named formats.
func NewAnnotator(formats ...string) (*Annotator, error) {
	a := &Annotator{}
	for _, f := range formats {
		switch f {
		case AnnotateJSON:
			a.JSON = true
		case AnnotateText:
			a.Text = true
		default:
			return nil, fmt.Errorf("unknown annotation format %q (want %q or %q)", f, AnnotateJSON, AnnotateText)
		}
	}
	return a, nil
}

func (a *Annotator) AnnotateFactory(_ *ir.OpenEnumDescriptor, op *ir.Operation) {
	if a.JSON {
		op.Hints = append(op.Hints, ir.HintJSONCreator)
	}
	if a.Text {
		op.Hints = append(op.Hints, ir.HintTextCreator)
	}
}

func (a *Annotator) AnnotateRendering(_ *ir.OpenEnumDescriptor, op *ir.Operation) {
	if a.JSON {
		op.Hints = append(op.Hints, ir.HintJSONValue)
	}
	if a.Text {
		op.Hints = append(op.Hints, ir.HintTextValue)
	}
}
