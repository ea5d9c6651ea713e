// vmdclip retargets decoded VMD motion records onto a VRM avatar and writes
// the resulting animation clip.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/vmd-vrm/internal/avatar"
	"github.com/Faultbox/vmd-vrm/internal/clipfile"
	"github.com/Faultbox/vmd-vrm/internal/config"
	"github.com/Faultbox/vmd-vrm/internal/logger"
	"github.com/Faultbox/vmd-vrm/pkg/humanoid"
	"github.com/Faultbox/vmd-vrm/pkg/retarget"
	"github.com/Faultbox/vmd-vrm/pkg/vmd"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	if len(argv) < 1 {
		printUsage(stderr)
		return 1
	}

	command := argv[0]
	args := argv[1:]

	var err error
	switch command {
	case "convert", "c":
		err = cmdConvert(args, stdout, stderr)
	case "inspect", "info":
		err = cmdInspect(args, stdout, stderr)
	case "bones":
		cmdBones(stdout)
	case "morphs":
		cmdMorphs(stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}

	logger.Sync()
	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `vmdclip - VMD motion to VRM animation clip converter

Usage:
  vmdclip <command> [options]

Commands:
  convert -avatar <avatar.yaml> [options] <records.yaml>   Convert records into a clip
  inspect [-avatar <avatar.yaml>] <records.yaml>           Show record and bone summary
  bones                                                    Print the PMD to VRM bone table
  morphs                                                   Print the PMD to VRM expression table

Convert options:
  -o <path>        Output file (default: stdout)
  -format <fmt>    yaml or json (default: from -o extension, else config)
  -name <clip>     Clip name (default: generated)
  -workers <n>     Parallel workers, 0 = one per CPU
  -config <path>   Config file
  -debug           Debug logging

Examples:
  vmdclip convert -avatar alicia.yaml -o dance.json dance.yaml
  vmdclip inspect -avatar alicia.yaml dance.yaml
  vmdclip bones`)
}

// setup loads config from the shared flags and initializes logging.
func setup(f *config.Flags) (*config.Config, error) {
	cfg, err := config.Load(f)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

func cmdConvert(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := config.RegisterFlags(fs)
	avatarPath := fs.String("avatar", "", "Avatar description (YAML)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if fs.NArg() < 1 || *avatarPath == "" {
		fmt.Fprintln(stderr, "Usage: vmdclip convert -avatar <avatar.yaml> [options] <records.yaml>")
		return errUsage
	}

	cfg, err := setup(flags)
	if err != nil {
		return err
	}

	skel, err := avatar.Load(*avatarPath)
	if err != nil {
		return err
	}
	data, err := vmd.LoadRecords(fs.Arg(0))
	if err != nil {
		return err
	}
	if !data.CountsMatch() {
		logger.Warn("declared record counts differ from samples",
			zap.Int("motions", data.Metadata.MotionCount),
			zap.Int("morphs", data.Metadata.MorphCount),
			zap.Int("cameras", data.Metadata.CameraCount))
	}

	conv := retarget.NewConverter(retarget.Options{
		ClipName: cfg.Convert.ClipName,
		Workers:  cfg.Workers(),
		Logger:   logger.L(),
	})
	res, err := conv.Convert(data, skel)
	if err != nil {
		return err
	}

	format, _ := clipfile.ParseFormat(cfg.Output.Format)
	if flags.Format == "" && cfg.Output.Path != "" {
		format = clipfile.FormatForPath(cfg.Output.Path, format)
	}

	doc := clipfile.FromResult(res)
	if cfg.Output.Path == "" {
		err = clipfile.Encode(stdout, doc, format)
	} else {
		err = clipfile.WriteFile(cfg.Output.Path, doc, format)
	}
	if err != nil {
		return fmt.Errorf("writing clip: %w", err)
	}

	logger.Info("clip written",
		zap.String("clip", res.Clip.Name),
		zap.String("avatar", skel.Name()),
		zap.Int("tracks", len(res.Clip.Tracks)),
		zap.Int("skipped", len(res.Warnings)),
		zap.Float64("length", res.Clip.ComputeDuration()))
	return nil
}

func cmdInspect(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	avatarPath := fs.String("avatar", "", "Avatar description to resolve bones against")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, "Usage: vmdclip inspect [-avatar <avatar.yaml>] <records.yaml>")
		return errUsage
	}

	data, err := vmd.LoadRecords(fs.Arg(0))
	if err != nil {
		return err
	}

	var skel *avatar.Avatar
	if *avatarPath != "" {
		if skel, err = avatar.Load(*avatarPath); err != nil {
			return err
		}
	}

	md := data.Metadata
	fmt.Fprintf(stdout, "Records: %s\n", fs.Arg(0))
	fmt.Fprintf(stdout, "Magic:   %s\n", md.Magic)
	fmt.Fprintf(stdout, "Model:   %s\n", md.Name)
	fmt.Fprintf(stdout, "Coords:  %s\n", md.CoordinateSystem)
	fmt.Fprintf(stdout, "Motions: %d (declared %d)\n", len(data.Motions), md.MotionCount)
	fmt.Fprintf(stdout, "Morphs:  %d (declared %d)\n", len(data.Morphs), md.MorphCount)
	fmt.Fprintf(stdout, "Cameras: %d (declared %d)\n", len(data.Cameras), md.CameraCount)
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Bones:")
	for _, g := range vmd.GroupMotions(data.Motions) {
		fmt.Fprintf(stdout, "  %-12s %5d keys  %s\n", g.Name, len(g.Motions), describeBone(g.Name, skel))
	}

	fmt.Fprintln(stdout, "Morphs:")
	for _, g := range vmd.GroupMorphs(data.Morphs) {
		fmt.Fprintf(stdout, "  %-12s %5d keys  -> %s\n", g.Name, len(g.Morphs), humanoid.BlendShapeOrName(g.Name))
	}
	return nil
}

func describeBone(name string, skel *avatar.Avatar) string {
	if skel == nil {
		if b, ok := humanoid.BoneFor(name); ok {
			return "-> " + string(b)
		}
		return "-> (raw name)"
	}

	switch r := retarget.ResolveBone(skel, name).(type) {
	case retarget.Resolved:
		if r.Humanoid {
			return fmt.Sprintf("-> %s (node %s)", r.Bone, r.Node.ID)
		}
		return fmt.Sprintf("-> node %s", r.Node.ID)
	default:
		return "-> skipped"
	}
}

func cmdBones(w io.Writer) {
	for _, m := range humanoid.BoneMappings() {
		fmt.Fprintf(w, "%-24s %s\n", m.Bone, m.Legacy)
	}
}

func cmdMorphs(w io.Writer) {
	for _, m := range humanoid.BlendShapeMappings() {
		fmt.Fprintf(w, "%-10s %s\n", m.BlendShape, m.Legacy)
	}
}
