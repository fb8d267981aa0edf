package layer

// Kind identifies what a layer renders as. The set of kinds is closed:
// unknown kinds behave as plain containers.
type Kind string

// Container kinds.
const (
	KindBody    Kind = "body"
	KindSection Kind = "section"
	KindBlock   Kind = "block"
	KindGrid    Kind = "grid"
	KindLink    Kind = "link"
	KindForm    Kind = "form"
)

// Void kinds. These render self-contained content and never take
// children.
const (
	KindIcon           Kind = "icon"
	KindImage          Kind = "image"
	KindAudio          Kind = "audio"
	KindVideo          Kind = "video"
	KindHeading        Kind = "heading"
	KindParagraph      Kind = "paragraph"
	KindSpan           Kind = "span"
	KindLabel          Kind = "label"
	KindButton         Kind = "button"
	KindHorizontalRule Kind = "horizontal-rule"
	KindInput          Kind = "input"
	KindTextarea       Kind = "textarea"
	KindSelect         Kind = "select"
	KindCheckbox       Kind = "checkbox"
	KindRadio          Kind = "radio"
)

// capability records what a kind structurally allows. Resolved once at
// package init; call sites never compare kind strings directly.
type capability struct {
	acceptsChildren bool
	isVoid          bool
}

var containerCap = capability{acceptsChildren: true}

var kindCaps = map[Kind]capability{
	KindBody:    containerCap,
	KindSection: containerCap,
	KindBlock:   containerCap,
	KindGrid:    containerCap,
	KindLink:    containerCap,
	KindForm:    containerCap,

	KindIcon:           {isVoid: true},
	KindImage:          {isVoid: true},
	KindAudio:          {isVoid: true},
	KindVideo:          {isVoid: true},
	KindHeading:        {isVoid: true},
	KindParagraph:      {isVoid: true},
	KindSpan:           {isVoid: true},
	KindLabel:          {isVoid: true},
	KindButton:         {isVoid: true},
	KindHorizontalRule: {isVoid: true},
	KindInput:          {isVoid: true},
	KindTextarea:       {isVoid: true},
	KindSelect:         {isVoid: true},
	KindCheckbox:       {isVoid: true},
	KindRadio:          {isVoid: true},
}

func (k Kind) caps() capability {
	if c, ok := kindCaps[k]; ok {
		return c
	}
	return containerCap
}

// AcceptsChildren reports whether the kind itself allows nesting. Note
// that a component-bound layer refuses children regardless of kind; use
// [Layer.CanHaveChildren] for the full check.
func (k Kind) AcceptsChildren() bool { return k.caps().acceptsChildren }

// IsVoid reports whether the kind renders self-contained content.
func (k Kind) IsVoid() bool { return k.caps().isVoid }

// IsSection reports whether the kind is a top-level page section.
// Sections may only sit directly under the document body.
func (k Kind) IsSection() bool { return k == KindSection }

// IsBody reports whether the kind is the document root.
func (k Kind) IsBody() bool { return k == KindBody }
