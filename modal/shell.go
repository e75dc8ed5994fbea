// Package modal implements writing modal: fetches writing by slug and
// presents loading, error or success state.
package modal

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"folio/cms"
	"folio/common"
	"folio/config"
	"folio/eventloop"
	"folio/tooltip"
	"folio/writing"
)

// Fetcher retrieves document by slug, it is called off the dispatcher.
type Fetcher interface {
	FetchDocument(ctx context.Context, slug string) (*writing.Document, error)
}

type Options struct {
	Messages    config.MessagesConfig
	Placeholder string
	Location    *time.Location
	Language    language.Tag
	HoverDelay  time.Duration
	// AssetURL resolves assets without URL, may be nil.
	AssetURL func(writing.Asset) string
}

// OptionsFromConfig prepares shell options from configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	tag, err := language.Parse(cfg.Render.Language)
	if err != nil {
		tag = language.Und
	}
	return Options{
		Messages:    cfg.Render.Messages,
		Placeholder: cfg.Render.PlaceholderURL,
		Location:    cfg.Render.Location(),
		Language:    tag,
		HoverDelay:  cfg.Tooltip.HoverDelay,
	}
}

// request tags in-flight fetch, completion is applied only when tag matches
// the most recent Open.
type request struct {
	seq  uint64
	slug string
}

// Shell owns modal state. Except for construction all methods must be
// called on dispatcher, fetches are done on separate goroutines and report
// back via dispatcher.
type Shell struct {
	log     *zap.Logger
	disp    eventloop.Dispatcher
	fetcher Fetcher
	opts    Options

	phase   common.ModalPhase
	current request
	doc     *writing.Document
	err     error
	message string
	broken  map[string]bool

	tooltip  *tooltip.Controller
	mounted  bool
	unlisten func()
	ctx      context.Context
	cancel   context.CancelFunc

	onClose  func()
	onChange func()
}

func New(disp eventloop.Dispatcher, fetcher Fetcher, opts Options, log *zap.Logger) *Shell {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Shell{
		log:     log.Named("modal"),
		disp:    disp,
		fetcher: fetcher,
		opts:    opts,
		phase:   common.ModalPhaseLoading,
		broken:  make(map[string]bool),
	}
}

// OnClose registers dismiss callback.
func (s *Shell) OnClose(f func()) { s.onClose = f }

// OnChange registers callback invoked whenever rendering would change.
func (s *Shell) OnChange(f func()) { s.onChange = f }

func (s *Shell) Phase() common.ModalPhase    { return s.phase }
func (s *Shell) Document() *writing.Document { return s.doc }
func (s *Shell) Err() error                  { return s.err }
func (s *Shell) Message() string             { return s.message }
func (s *Shell) Mounted() bool               { return s.mounted }

// Tooltip returns glossary tooltip controller of mounted shell.
func (s *Shell) Tooltip() *tooltip.Controller { return s.tooltip }

// Mount attaches shell to page. Mounting already mounted shell is no-op.
func (s *Shell) Mount(p *Page) {
	if s.mounted {
		return
	}
	s.mounted = true
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.unlisten = p.AddPointerDownListener(s.PointerDown)
	s.tooltip = tooltip.New(s.disp, s.opts.HoverDelay, s.log)
	s.tooltip.OnChange(func(string) { s.changed() })
	s.log.Debug("Mounted")
}

// Unmount detaches from page, stops tooltip and drops in-flight results.
func (s *Shell) Unmount() {
	if !s.mounted {
		return
	}
	s.mounted = false
	s.unlisten()
	s.unlisten = nil
	s.tooltip.Dispose()
	s.cancel()
	// in-flight completion must not match after remount
	s.current.seq++
	s.log.Debug("Unmounted")
}

// Open starts loading writing, any previous request becomes stale.
func (s *Shell) Open(slug string) {
	slug = strings.TrimSpace(slug)
	if !s.mounted {
		s.log.Warn("Open on unmounted modal ignored", zap.String("slug", slug))
		return
	}

	s.current = request{seq: s.current.seq + 1, slug: slug}
	s.doc, s.err, s.message = nil, nil, ""
	s.broken = make(map[string]bool)
	s.tooltip.HoverLeave()

	if slug == "" {
		s.fail(cms.ErrInvalidSlug, s.opts.Messages.MissingSlug)
		return
	}

	s.phase = common.ModalPhaseLoading
	s.changed()

	req, ctx := s.current, s.ctx
	go func() {
		doc, err := s.fetcher.FetchDocument(ctx, req.slug)
		if !s.disp.Post(func() { s.complete(req, doc, err) }) {
			s.log.Debug("Dispatcher stopped, result dropped", zap.String("slug", req.slug))
		}
	}()
}

func (s *Shell) stale(req request) bool {
	return !s.mounted || req != s.current
}

func (s *Shell) complete(req request, doc *writing.Document, err error) {
	if s.stale(req) {
		s.log.Debug("Stale response discarded", zap.String("slug", req.slug), zap.Uint64("seq", req.seq), zap.Uint64("current", s.current.seq))
		return
	}
	if err != nil {
		msg := s.opts.Messages.Failed
		if errors.Is(err, cms.ErrNotFound) {
			msg = s.opts.Messages.NotFound
		}
		s.log.Warn("Unable to load writing", zap.String("slug", req.slug), zap.String("kind", cms.Kind(err)), zap.Error(err))
		s.fail(err, msg)
		return
	}

	s.phase = common.ModalPhaseSuccess
	s.doc = doc
	s.log.Debug("Writing loaded", zap.String("slug", req.slug), zap.Int("blocks", len(doc.Body)))
	s.changed()
}

func (s *Shell) fail(err error, msg string) {
	s.phase = common.ModalPhaseError
	s.err = err
	s.message = msg
	s.changed()
}

// PointerDown dismisses modal when target is outside of the dialog.
func (s *Shell) PointerDown(target string) {
	if !s.mounted || s.insideDialog(target) {
		return
	}
	s.log.Debug("Pointer down outside, dismissing", zap.String("target", target))
	s.Dismiss()
}

// Dismiss closes modal as close or dismiss button does.
func (s *Shell) Dismiss() {
	if s.onClose != nil {
		s.onClose()
	}
}

// ImageFailed marks asset as broken, next render uses placeholder in its
// place.
func (s *Shell) ImageFailed(ref string) {
	if !s.mounted || s.phase != common.ModalPhaseSuccess || ref == "" || s.broken[ref] {
		return
	}
	s.broken[ref] = true
	s.log.Debug("Image marked broken", zap.String("ref", ref))
	s.changed()
}

func (s *Shell) assetURL(a writing.Asset) string {
	if a.URL != "" || s.opts.AssetURL == nil {
		return a.URL
	}
	return s.opts.AssetURL(a)
}

func (s *Shell) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
