package main

import (
	"flag"
	"fmt"
	"os"

	"mrr-renderer/internal/geometry"
	"mrr-renderer/internal/logging"
	"mrr-renderer/internal/mrr"
	"mrr-renderer/internal/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	verbose := flag.Bool("v", false, "Print per-body array lengths")
	applyPose := flag.Bool("pose", false, "Place each body by its part's pose before measuring bounds")
	logLevel := flag.String("log-level", "error", "Log level for import messages")
	logDir := flag.String("log-dir", "", "Also write logs to a per-day file in this directory")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: inspect [-v] [-pose] file.mrr...")
		return 2
	}

	log, err := logging.New(logging.Options{Level: *logLevel, Dir: *logDir, Stdout: os.Stderr})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer log.Close()

	s := session.New(log, geometry.Options{ApplyPose: *applyPose})
	failed := 0
	for _, path := range flag.Args() {
		l, err := s.Import(path)
		if err != nil {
			fmt.Printf("\n=== %s ===\n  Error: %s (%v)\n", path, mrr.UserMessage(err), err)
			failed++
			continue
		}
		printAssembly(l, *verbose)
	}

	if cur := s.Current(); cur != nil {
		fmt.Printf("\nCurrent: %s\n", cur.Metadata.DisplayName())
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func printAssembly(l *session.Loaded, verbose bool) {
	a := l.Assembly
	fmt.Printf("\n=== %s (joints=%d parts=%d bodies=%d triangles=%d) ===\n",
		l.Metadata.DisplayName(), len(a.Joints), len(a.Parts), a.BodyCount(), a.TriangleCount())

	for i, j := range a.Joints {
		p := j.Pose.Position
		fmt.Printf("  Joint[%d] %s at (%.3f, %.3f, %.3f)\n", i, j.Type, p[0], p[1], p[2])
	}

	for i, part := range a.Parts {
		p := part.Pose.Position
		fmt.Printf("  Part[%d] %q at (%.3f, %.3f, %.3f) joints=%v rigid=%v bodies=%d\n",
			i, part.Name, p[0], p[1], p[2], part.JointRefs, part.RigidGroupRefs, len(part.Bodies))
		if !verbose {
			continue
		}
		for k, b := range part.Bodies {
			fmt.Printf("    Body[%d]: tris=%d verts=%d indices=%d normals=%d uvs=%d\n",
				k, b.TriangleCount, len(b.Vertices), len(b.Indices), len(b.Normals), len(b.UVs))
		}
	}

	if lo, hi, ok := geometry.Bounds(l.Meshes); ok {
		fmt.Printf("  BBox: X[%.2f, %.2f] Y[%.2f, %.2f] Z[%.2f, %.2f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
	}
}
