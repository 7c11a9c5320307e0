package curriculum

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/vk/mathlab/internal/activity"
	"github.com/vk/mathlab/internal/diag"
	"github.com/vk/mathlab/internal/embed"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom validation tags
	notBlankTag  = "notblank"
	webURLTag    = "weburl"
	assetTag     = "asset"
	srcOrSrcsTag = "src_or_srcs"
	youtubeTag   = "youtube"
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report HCL attribute names rather than Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("hcl"), ",", 2)[0]
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = validate.RegisterValidation(webURLTag, webURLValidation)
	_ = validate.RegisterValidation(assetTag, assetValidation)
	_ = validate.RegisterValidation(youtubeTag, youtubeValidation)
	validate.RegisterStructValidation(imageStructValidation, Image{})

	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range []string{notBlankTag, webURLTag, assetTag, srcOrSrcsTag, youtubeTag} {
		_ = validate.RegisterTranslation(tag, translator, registerFn, translateCustomValidationErrs)
	}
}

func translateCustomValidationErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " must not be blank"
	case webURLTag:
		return fe.Field() + " must be an absolute http(s) URL"
	case assetTag:
		return fe.Field() + " must be an http(s) URL or a path"
	case youtubeTag:
		return fe.Field() + " must be a YouTube video, short, playlist or embed URL"
	case srcOrSrcsTag:
		return "exactly one of src and srcs must be set"
	default:
		return fe.Error()
	}
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func webURLValidation(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	return ok && isWebURL(s)
}

func isWebURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// youtubeValidation accepts the URL forms the renderer can turn into an embed.
func youtubeValidation(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := embed.YouTubeEmbed(s)
	return err == nil
}

// assetValidation accepts web URLs and scheme-less paths.
func assetValidation(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok || strings.TrimSpace(s) == "" {
		return false
	}
	if isWebURL(s) {
		return true
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme == "" && u.Host == "" && !strings.HasPrefix(s, "//")
}

func imageStructValidation(sl validator.StructLevel) {
	img, ok := sl.Current().Interface().(Image)
	if !ok {
		return
	}
	hasSrc := strings.TrimSpace(img.Src) != ""
	if hasSrc == (len(img.Srcs) > 0) {
		sl.ReportError(img.Src, "src", "Src", srcOrSrcsTag, "")
	}
}

// fieldErrors carries validator errors with a translated message.
type fieldErrors struct {
	errs validator.ValidationErrors
}

func (e *fieldErrors) Error() string {
	msgs := make([]string, 0, len(e.errs))
	for _, fe := range e.errs {
		msgs = append(msgs, fe.Translate(translator))
	}
	return strings.Join(msgs, "; ")
}

func (e *fieldErrors) Unwrap() error { return e.errs }

func validateItem(target any) error {
	err := validate.Struct(target)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &fieldErrors{errs: verrs}
	}
	return err
}

// keyPattern is the grammar of curriculum keys: segments of letters, digits
// and underscores joined by '-' or '.'.
var keyPattern = regexp.MustCompile(`^[\p{L}\p{N}_]+([.-][\p{L}\p{N}_]+)*$`)

// checkChildKey reports whether child extends parent by exactly one segment.
func checkChildKey(parent, child string) bool {
	if !strings.HasPrefix(child, parent) || len(child) <= len(parent)+1 {
		return false
	}
	sep := child[len(parent)]
	if sep != '-' && sep != '.' {
		return false
	}
	rest := child[len(parent)+1:]
	return !strings.ContainsAny(rest, "-.")
}

// Resolver looks activities up by (subject, slug).
type Resolver interface {
	Get(subject, slug string) (*activity.Activity, error)
}

// Validate checks that every activity reference of every subject resolves.
// All failures are returned together as *diag.LoadError values.
func (s *Set) Validate(r Resolver) error {
	var errs []error
	for _, subject := range s.Subjects() {
		t := s.trees[subject]
		_ = s.Walk(subject, func(n *Node, _ int) error {
			for i, it := range n.Items {
				ref, ok := it.(ActivityRef)
				if !ok {
					continue
				}
				if _, err := r.Get(ref.Subject, ref.Slug); err != nil {
					errs = append(errs, &diag.LoadError{
						Source:  rangeString(t.source, n.ItemRange(i)),
						Subject: subject,
						Key:     n.Key,
						Item:    i + 1,
						Msg:     fmt.Sprintf("unresolved activity reference %q", ref.Route()),
						Err:     err,
					})
				}
			}
			return nil
		})
	}
	return errors.Join(errs...)
}
