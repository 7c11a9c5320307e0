package curriculum

// Kind names an item variant. It is also the HCL block type the item is
// declared with.
type Kind string

const (
	KindCanva    Kind = "canva"
	KindPdf      Kind = "pdf"
	KindGSheet   Kind = "gsheet"
	KindYouTube  Kind = "youtube"
	KindIframe   Kind = "iframe"
	KindImage    Kind = "image"
	KindActivity Kind = "activity"
)

// Item is one artifact of a curriculum leaf. The set of variants is closed:
// every implementation lives in this file.
type Item interface {
	Kind() Kind
	ItemTitle() string
	isItem()
}

// Canva is a slide deck embedded as a sandboxed frame.
type Canva struct {
	Title  string `hcl:"title" validate:"notblank"`
	Src    string `hcl:"src" validate:"required,weburl"`
	Height *int   `hcl:"height,optional"`
}

// Pdf is a document embedded as a frame, optionally with a download link.
type Pdf struct {
	Title    string `hcl:"title" validate:"notblank"`
	Src      string `hcl:"src" validate:"required,weburl"`
	Height   *int   `hcl:"height,optional"`
	Download string `hcl:"download,optional" validate:"omitempty,weburl"`
}

// GSheet is a Google Sheets document embedded through its preview page.
type GSheet struct {
	Title  string `hcl:"title" validate:"notblank"`
	Src    string `hcl:"src" validate:"required,weburl"`
	Height *int   `hcl:"height,optional"`
}

// YouTube is a video or playlist in any accepted URL form.
type YouTube struct {
	Title  string `hcl:"title" validate:"notblank"`
	Src    string `hcl:"src" validate:"required,weburl,youtube"`
	Height *int   `hcl:"height,optional"`
}

// Iframe embeds an arbitrary page.
type Iframe struct {
	Title  string `hcl:"title" validate:"notblank"`
	Src    string `hcl:"src" validate:"required,weburl"`
	Height *int   `hcl:"height,optional"`
}

// Image is one image or, when Srcs is set, a grid of Cols columns.
// Exactly one of Src and Srcs is set.
type Image struct {
	Title   string   `hcl:"title" validate:"notblank"`
	Src     string   `hcl:"src,optional" validate:"omitempty,asset"`
	Srcs    []string `hcl:"srcs,optional" validate:"omitempty,dive,required,asset"`
	Width   *int     `hcl:"width,optional" validate:"omitempty,gt=0"`
	Cols    *int     `hcl:"cols,optional" validate:"omitempty,gt=0"`
	Caption string   `hcl:"caption,optional"`
}

// ActivityRef points at a registered activity. Subject defaults to the
// subject of the curriculum that declares it, and an empty Title falls back
// to the activity's own title.
type ActivityRef struct {
	Title   string `hcl:"title,optional"`
	Subject string `hcl:"subject,optional" validate:"required"`
	Slug    string `hcl:"slug" validate:"notblank"`
}

func (Canva) Kind() Kind       { return KindCanva }
func (Pdf) Kind() Kind         { return KindPdf }
func (GSheet) Kind() Kind      { return KindGSheet }
func (YouTube) Kind() Kind     { return KindYouTube }
func (Iframe) Kind() Kind      { return KindIframe }
func (Image) Kind() Kind       { return KindImage }
func (ActivityRef) Kind() Kind { return KindActivity }

func (i Canva) ItemTitle() string       { return i.Title }
func (i Pdf) ItemTitle() string         { return i.Title }
func (i GSheet) ItemTitle() string      { return i.Title }
func (i YouTube) ItemTitle() string     { return i.Title }
func (i Iframe) ItemTitle() string      { return i.Title }
func (i Image) ItemTitle() string       { return i.Title }
func (i ActivityRef) ItemTitle() string { return i.Title }

func (Canva) isItem()       {}
func (Pdf) isItem()         {}
func (GSheet) isItem()      {}
func (YouTube) isItem()     {}
func (Iframe) isItem()      {}
func (Image) isItem()       {}
func (ActivityRef) isItem() {}

// Route returns the activity route "<subject>/<slug>".
func (r ActivityRef) Route() string { return r.Subject + "/" + r.Slug }

// itemFactories maps block types to fresh decode targets.
var itemFactories = map[Kind]func() any{
	KindCanva:    func() any { return &Canva{} },
	KindPdf:      func() any { return &Pdf{} },
	KindGSheet:   func() any { return &GSheet{} },
	KindYouTube:  func() any { return &YouTube{} },
	KindIframe:   func() any { return &Iframe{} },
	KindImage:    func() any { return &Image{} },
	KindActivity: func() any { return &ActivityRef{} },
}

// deref turns a decode target back into the Item value.
func deref(v any) Item {
	switch t := v.(type) {
	case *Canva:
		return *t
	case *Pdf:
		return *t
	case *GSheet:
		return *t
	case *YouTube:
		return *t
	case *Iframe:
		return *t
	case *Image:
		return *t
	case *ActivityRef:
		return *t
	}
	panic("curriculum: unknown item target")
}
