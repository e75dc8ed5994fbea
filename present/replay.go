package present

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"folio/cms"
	"folio/common"
	"folio/modal"
	"folio/state"
	"folio/tooltip"
)

// Event is single step of replay script, exactly one field must be set.
type Event struct {
	Open        *string       `yaml:"open,omitempty"`
	Hover       string        `yaml:"hover,omitempty"`
	Leave       bool          `yaml:"leave,omitempty"`
	Click       string        `yaml:"click,omitempty"`
	Wait        time.Duration `yaml:"wait,omitempty"`
	Pointer     string        `yaml:"pointer,omitempty"`
	ImageFailed string        `yaml:"image_failed,omitempty"`
	Dismiss     bool          `yaml:"dismiss,omitempty"`
	Snapshot    *string       `yaml:"snapshot,omitempty"`
}

// Script is sequence of UI events replayed against modal.
type Script struct {
	Events []Event `yaml:"events"`
}

// Kind returns name of the event action.
func (e *Event) Kind() (string, error) {
	var kinds []string
	if e.Open != nil {
		kinds = append(kinds, "open")
	}
	if e.Hover != "" {
		kinds = append(kinds, "hover")
	}
	if e.Leave {
		kinds = append(kinds, "leave")
	}
	if e.Click != "" {
		kinds = append(kinds, "click")
	}
	if e.Wait > 0 {
		kinds = append(kinds, "wait")
	}
	if e.Pointer != "" {
		kinds = append(kinds, "pointer")
	}
	if e.ImageFailed != "" {
		kinds = append(kinds, "image_failed")
	}
	if e.Dismiss {
		kinds = append(kinds, "dismiss")
	}
	if e.Snapshot != nil {
		kinds = append(kinds, "snapshot")
	}
	switch len(kinds) {
	case 0:
		return "", errors.New("empty event")
	case 1:
		return kinds[0], nil
	default:
		return "", fmt.Errorf("ambiguous event %v", kinds)
	}
}

// ParseScript decodes and checks replay script.
func ParseScript(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("replay script is empty")
		}
		return nil, fmt.Errorf("failed to decode replay script: %w", err)
	}
	var errs error
	for i := range s.Events {
		if _, err := s.Events[i].Kind(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("event %d: %w", i+1, err))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return &s, nil
}

// snapshotSink receives modal snapshots taken by replay.
type snapshotSink func(index int, name string, ms *modalSnapshot) error

// Replay is "replay" command action.
func Replay(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Logger("replay")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no replay script has been specified")
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read replay script: %w", err)
	}
	script, err := ParseScript(data)
	if err != nil {
		return err
	}
	env.Rpt.Store("replay/"+filepath.Base(src), src)

	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	env.Format, err = common.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to tree", zap.Error(err))
		env.Format = common.OutputFmtTree
	}
	env.Overwrite = cmd.Bool("overwrite")

	client, err := cms.NewClient(&env.Cfg.Backend, env.Rpt, env.Logger(""))
	if err != nil {
		return fmt.Errorf("unable to prepare backend client: %w", err)
	}

	sink := writerSink(env.Stdout, env)
	if dst != "" && dst != "-" {
		if err := os.MkdirAll(dst, 0o755); err != nil {
			return fmt.Errorf("unable to create destination directory: %w", err)
		}
		sink = dirSink(dst, env)
	}

	log.Info("Replay starting", zap.String("script", src), zap.Int("events", len(script.Events)))
	defer func(start time.Time) {
		log.Info("Replay completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	sess := NewSession(env, client)
	defer sess.Close()
	return runScript(ctx, sess, script, env, sink)
}

// runScript replays events one by one. Open waits for modal to settle, wait
// sleeps in real time so tooltip timers may fire.
func runScript(ctx context.Context, sess *Session, script *Script, env *state.LocalEnv, sink snapshotSink) error {
	log := env.Logger("replay")

	snapshots := 0
	for i := range script.Events {
		e := &script.Events[i]
		kind, err := e.Kind()
		if err != nil {
			return fmt.Errorf("event %d: %w", i+1, err)
		}
		log.Debug("Event", zap.Int("index", i+1), zap.String("kind", kind))

		switch kind {
		case "open":
			err = sess.Open(ctx, *e.Open)
		case "hover":
			err = sess.Do(ctx, func(sh *modal.Shell) { withTooltip(sh, func(t *tooltip.Controller) { t.HoverEnter(e.Hover) }) })
		case "leave":
			err = sess.Do(ctx, func(sh *modal.Shell) { withTooltip(sh, func(t *tooltip.Controller) { t.HoverLeave() }) })
		case "click":
			err = sess.Do(ctx, func(sh *modal.Shell) { withTooltip(sh, func(t *tooltip.Controller) { t.Click(e.Click) }) })
		case "wait":
			select {
			case <-time.After(e.Wait):
			case <-ctx.Done():
				return ctx.Err()
			}
			// let fired timers run
			err = sess.Do(ctx, func(*modal.Shell) {})
		case "pointer":
			err = sess.PointerDown(ctx, e.Pointer)
		case "image_failed":
			err = sess.Do(ctx, func(sh *modal.Shell) { sh.ImageFailed(e.ImageFailed) })
		case "dismiss":
			err = sess.Do(ctx, func(sh *modal.Shell) { sh.Dismiss() })
		case "snapshot":
			var ms *modalSnapshot
			if err = sess.Do(ctx, func(sh *modal.Shell) { ms = snapshot(sh, env) }); err == nil {
				snapshots++
				err = sink(snapshots, *e.Snapshot, ms)
			}
		}
		if err != nil {
			return fmt.Errorf("event %d (%s): %w", i+1, kind, err)
		}
	}
	return nil
}

// withTooltip ignores tooltip events while modal is not mounted, as
// unmounted modal has no terms to hover.
func withTooltip(sh *modal.Shell, f func(*tooltip.Controller)) {
	if sh.Mounted() && sh.Tooltip() != nil {
		f(sh.Tooltip())
	}
}

func writerSink(w io.Writer, env *state.LocalEnv) snapshotSink {
	return func(index int, name string, ms *modalSnapshot) error {
		if _, err := fmt.Fprintf(w, "=== snapshot %d %s\n", index, name); err != nil {
			return err
		}
		if err := ms.write(w, env.Format); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}
}

func dirSink(dir string, env *state.LocalEnv) snapshotSink {
	return func(index int, name string, ms *modalSnapshot) (err error) {
		base := fmt.Sprintf("%02d", index)
		if name != "" {
			base += "-" + cleanPathSegment(name, env.Cfg.Render.FileNameTransliterate)
		}
		path := filepath.Join(dir, base+env.Format.Ext())
		if _, err := os.Stat(path); err == nil && !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", path)
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("unable to create snapshot file: %w", err)
		}
		defer func() {
			err = multierr.Append(err, f.Close())
		}()
		if err := ms.write(f, env.Format); err != nil {
			return err
		}
		env.Logger("replay").Info("Snapshot saved", zap.String("output", path))
		return nil
	}
}
