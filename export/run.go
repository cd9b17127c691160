package export

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"dtx/program"
	"dtx/state"
)

// Result summarizes a completed export.
type Result struct {
	Lines         int
	Functions     int
	SkippedBlocks int
}

// Run is the CLI action behind the "export" subcommand: load the program
// image from SOURCE and write the fixture into DESTINATION directory (or the
// configured one).
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("export")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input program has been specified")
	}
	src, err := filepath.Abs(src)
	if err != nil {
		return err
	}

	dir := cmd.Args().Get(1)
	if len(dir) == 0 {
		dir = env.Cfg.Export.OutputDir
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	outputName, err := filepath.Abs(filepath.Join(dir, env.Cfg.Export.FileName))
	if err != nil {
		return err
	}

	prog, err := program.OpenELF(src)
	if err != nil {
		return fmt.Errorf("unable to load program image: %w", err)
	}

	runID := uuid.New()
	log.Info("Export starting",
		zap.String("source", src), zap.String("destination", outputName),
		zap.Stringer("arch", prog.Arch()), zap.Stringer("run_id", runID))
	defer func(start time.Time) {
		log.Info("Export completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	res, err := Export(ctx, prog, outputName, log)
	if err != nil {
		return err
	}

	log.Info("Fixture written",
		zap.Int("lines", res.Lines), zap.Int("functions", res.Functions), zap.String("file", outputName))

	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("run/%s", runID), fmt.Appendf(nil,
			"source: %s\nlines: %d\nfunctions: %d\nskipped blocks: %d\n", src, res.Lines, res.Functions, res.SkippedBlocks))
		env.Rpt.StoreData(fmt.Sprintf("layout/%s", runID), []byte(program.Describe(prog)))
		env.Rpt.Store(fmt.Sprintf("result-%s.xml", runID), outputName)
	}
	return nil
}

// Export serializes prog into a fixture document at path. The document is
// fully materialized in memory first, then written atomically. Any host read
// or write failure aborts the whole export.
func Export(ctx context.Context, prog program.Program, path string, log *zap.Logger) (Result, error) {
	doc, res, err := build(ctx, prog, log)
	if err != nil {
		return Result{}, err
	}
	if res.Lines, err = doc.writeFile(path); err != nil {
		return Result{}, err
	}
	return res, nil
}

// build assembles the fixture document in traversal order: one binaryimage
// section with byte chunks then symbols, followed by a script and stringmatch
// pair per exportable function.
func build(ctx context.Context, prog program.Program, log *zap.Logger) (*document, Result, error) {
	var res Result

	d := &document{}
	d.appendRaw(docOpen)

	open, err := binaryimageOpen(prog.Arch().String())
	if err != nil {
		return nil, res, err
	}
	d.appendRaw(open)

	for _, b := range prog.Blocks() {
		if err := ctx.Err(); err != nil {
			return nil, res, err
		}
		if !exportable(b, log) {
			res.SkippedBlocks++
			continue
		}
		r := newChunkReader(prog, b)
		for {
			c, ok, err := r.next()
			if err != nil {
				return nil, res, err
			}
			if !ok {
				break
			}
			if err := d.appendDoc(bytechunkDoc(b.Space, c.addr, hexLines(c.data))); err != nil {
				return nil, res, err
			}
		}
	}

	funcs := prog.Functions()
	for _, s := range collectSymbols(funcs) {
		if err := d.appendDoc(symbolDoc(program.SpaceRAM, s)); err != nil {
			return nil, res, err
		}
	}
	d.appendRaw("</binaryimage>")

	scripted, err := scriptFunctions(funcs)
	if err != nil {
		return nil, res, err
	}
	for _, f := range scripted {
		if err := ctx.Err(); err != nil {
			return nil, res, err
		}
		if err := d.appendDoc(scriptDoc(f.Name)); err != nil {
			return nil, res, err
		}
		if err := d.appendDoc(stringmatchDoc(f.Name)); err != nil {
			return nil, res, err
		}
	}
	res.Functions = len(scripted)

	d.appendRaw(docClose)
	return d, res, nil
}
