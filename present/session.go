// Package present drives writing modal from command line: renders it to
// files, serves it over HTTP and replays scripted UI sessions.
package present

import (
	"context"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"folio/cms"
	"folio/common"
	"folio/eventloop"
	"folio/modal"
	"folio/state"
)

// Session hosts single modal on its own event loop. Page owner behavior is
// emulated: dismissing modal unmounts it.
type Session struct {
	log    *zap.Logger
	client *cms.Client
	probe  bool

	loop    *eventloop.Loop
	page    *modal.Page
	shell   *modal.Shell
	settled chan struct{}

	dismissed int

	stop context.CancelFunc
	done chan struct{}
}

// NewSession starts event loop and mounts modal on a fresh page.
func NewSession(env *state.LocalEnv, client *cms.Client) *Session {
	log := env.Logger("session")

	opts := modal.OptionsFromConfig(env.Cfg)
	opts.AssetURL = client.ResolveAsset

	s := &Session{
		log:     log,
		client:  client,
		probe:   env.Cfg.Render.ProbeImages,
		loop:    eventloop.New(log),
		page:    modal.NewPage(),
		settled: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	s.shell = modal.New(s.loop, client, opts, log)
	s.shell.OnChange(func() {
		if s.shell.Phase() == common.ModalPhaseLoading {
			return
		}
		select {
		case s.settled <- struct{}{}:
		default:
		}
	})
	s.shell.OnClose(func() {
		s.dismissed++
		s.shell.Unmount()
		s.log.Debug("Modal dismissed")
	})

	ctx, stop := context.WithCancel(context.Background())
	s.stop = stop
	go func() {
		defer close(s.done)
		_ = s.loop.Run(ctx)
	}()
	// loop is not running yet, but Post queues work
	s.loop.Post(func() { s.shell.Mount(s.page) })
	return s
}

// Open loads writing and waits until modal leaves loading state. When image
// probing is enabled broken images are detected before it returns.
func (s *Session) Open(ctx context.Context, slug string) error {
	if err := s.loop.Call(ctx, func() {
		if !s.shell.Mounted() {
			s.shell.Mount(s.page)
		}
		s.shell.Open(slug)
		if s.shell.Phase() == common.ModalPhaseLoading {
			// hiding tooltip of previous writing could have signalled
			s.drain()
		}
	}); err != nil {
		return err
	}

	select {
	case <-s.settled:
	case <-ctx.Done():
		return ctx.Err()
	}

	if s.probe {
		return s.probeImages(ctx)
	}
	return nil
}

func (s *Session) drain() {
	select {
	case <-s.settled:
	default:
	}
}

func (s *Session) probeImages(ctx context.Context) error {
	var urls map[string]string
	if err := s.Do(ctx, func(sh *modal.Shell) {
		if doc := sh.Document(); doc != nil {
			urls = make(map[string]string)
			for _, a := range doc.Images() {
				urls[a.Ref] = s.client.ResolveAsset(a)
			}
		}
	}); err != nil {
		return err
	}

	for ref, url := range urls {
		if err := s.client.ProbeImage(ctx, url); err != nil {
			s.log.Warn("Image failed to load, using placeholder", zap.String("ref", ref), zap.Error(err))
			if err := s.Do(ctx, func(sh *modal.Shell) { sh.ImageFailed(ref) }); err != nil {
				return err
			}
		}
	}
	return nil
}

// Do runs f with the shell on event loop.
func (s *Session) Do(ctx context.Context, f func(*modal.Shell)) error {
	return s.loop.Call(ctx, func() { f(s.shell) })
}

// PointerDown delivers pointer event to the page.
func (s *Session) PointerDown(ctx context.Context, target string) error {
	return s.loop.Call(ctx, func() { s.page.PointerDown(target) })
}

// Render returns current modal tree.
func (s *Session) Render(ctx context.Context) (*etree.Element, error) {
	var el *etree.Element
	err := s.Do(ctx, func(sh *modal.Shell) { el = sh.Render() })
	return el, err
}

// Dismissed returns how many times modal was dismissed.
func (s *Session) Dismissed(ctx context.Context) (int, error) {
	var n int
	err := s.loop.Call(ctx, func() { n = s.dismissed })
	return n, err
}

// Close unmounts modal and stops event loop.
func (s *Session) Close() {
	_ = s.loop.Call(context.Background(), func() { s.shell.Unmount() })
	s.stop()
	<-s.done
}
