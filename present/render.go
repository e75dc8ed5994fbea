package present

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/beevik/etree"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"folio/cms"
	"folio/common"
	"folio/modal"
	"folio/state"
	"folio/writing"
)

// Render is "render" command action: loads single writing and saves modal
// with it as standalone page.
func Render(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Logger("render")

	s := cmd.Args().Get(0)
	if len(s) == 0 {
		return errors.New("no writing slug has been specified")
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst != "-" {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Format, err = common.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to html", zap.Error(err))
		env.Format = common.OutputFmtHtml
	}
	env.Overwrite = cmd.Bool("overwrite")

	client, err := cms.NewClient(&env.Cfg.Backend, env.Rpt, env.Logger(""))
	if err != nil {
		return fmt.Errorf("unable to prepare backend client: %w", err)
	}

	log.Info("Rendering starting", zap.String("slug", s), zap.String("destination", dst), zap.Stringer("format", env.Format))
	defer func(start time.Time) {
		log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return renderWriting(ctx, env, client, s, dst)
}

func renderWriting(ctx context.Context, env *state.LocalEnv, client *cms.Client, s, dst string) (err error) {
	sess := NewSession(env, client)
	defer sess.Close()

	if err := sess.Open(ctx, s); err != nil {
		return err
	}

	var (
		tree    *modalSnapshot
		loadErr error
	)
	if err := sess.Do(ctx, func(sh *modal.Shell) {
		tree = snapshot(sh, env)
		loadErr = sh.Err()
	}); err != nil {
		return err
	}
	if loadErr != nil {
		return fmt.Errorf("unable to load writing %q: %w", s, loadErr)
	}

	if dst == "-" {
		return tree.write(env.Stdout, env.Format)
	}

	path := buildOutputPath(tree.doc, dst, env)
	if _, err := os.Stat(path); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", path)
		}
		env.Logger("render").Warn("Output file already exists, overwriting", zap.String("output", path))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if err := tree.write(f, env.Format); err != nil {
		return err
	}
	env.Logger("render").Info("Writing saved", zap.String("output", path))
	return nil
}

// modalSnapshot is modal tree captured on event loop together with data
// needed to wrap it into page.
type modalSnapshot struct {
	doc   *writing.Document
	title string
	lang  string
	tree  *etree.Element
}

// snapshot must be called on event loop.
func snapshot(sh *modal.Shell, env *state.LocalEnv) *modalSnapshot {
	ms := &modalSnapshot{
		doc:   sh.Document(),
		title: sh.Message(),
		lang:  env.Cfg.Render.Language,
		tree:  sh.Render(),
	}
	if ms.doc != nil {
		ms.title = ms.doc.Title
	}
	return ms
}

func (ms *modalSnapshot) write(w io.Writer, format common.OutputFmt) error {
	return WritePage(w, ms.tree, ms.title, ms.lang, format)
}
