package synth

// State is a step of open enum synthesis.
type State int

const (
	StateNameResolution State = iota
	StateExistingTypeFound
	StateTypeAllocated
	StateBackingTypeResolved
	StateFactoryInstalled
	StateConstantsPopulated
	StateRenderingInstalled
)

func (s State) String() string {
	switch s {
	case StateNameResolution:
		return "NameResolution"
	case StateExistingTypeFound:
		return "ExistingTypeFound"
	case StateTypeAllocated:
		return "TypeAllocated"
	case StateBackingTypeResolved:
		return "BackingTypeResolved"
	case StateFactoryInstalled:
		return "FactoryInstalled"
	case StateConstantsPopulated:
		return "ConstantsPopulated"
	case StateRenderingInstalled:
		return "RenderingInstalled"
	default:
		return "Unknown"
	}
}

// Terminal reports whether synthesis stops in s.
func (s State) Terminal() bool {
	return s == StateExistingTypeFound || s == StateRenderingInstalled
}
