package main

import (
	"fmt"

	kerrors "github.com/k1LoW/errors"
	"github.com/spf13/cobra"

	"headless/pkg/images"
	"headless/pkg/visualtest"
)

type compareFlags struct {
	tolerance   int
	fuzzy       int
	maxPercent  float64
	diff        string
	maxDistance int
}

func newCompareCmd() *cobra.Command {
	f := &compareFlags{}
	cmd := &cobra.Command{
		Use:   "compare <actual> <expected>",
		Short: "Compare a rendered image against a reference image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, f, args[0], args[1])
		},
	}
	def := visualtest.DefaultOptions()
	cmd.Flags().IntVar(&f.tolerance, "tolerance", def.Tolerance, "maximum per-channel difference")
	cmd.Flags().IntVar(&f.fuzzy, "fuzzy", 0, "match pixels within this radius")
	cmd.Flags().Float64Var(&f.maxPercent, "max-percent", 0, "pass when at most this percentage of pixels differ")
	cmd.Flags().StringVar(&f.diff, "diff", "", "write a diff image to this path")
	cmd.Flags().IntVar(&f.maxDistance, "max-distance", -1, "also require a perceptual hash distance of at most this value")
	return cmd
}

func runCompare(cmd *cobra.Command, f *compareFlags, actualPath, expectedPath string) error {
	actual, err := images.LoadImage(actualPath)
	if err != nil {
		return kerrors.WithStack(err)
	}
	expected, err := images.LoadImage(expectedPath)
	if err != nil {
		return kerrors.WithStack(err)
	}

	opts := visualtest.CompareOptions{
		Tolerance:           f.tolerance,
		FuzzyRadius:         f.fuzzy,
		MaxDifferentPercent: f.maxPercent,
		SaveDiffImage:       f.diff != "",
		DiffImagePath:       f.diff,
	}
	result, err := visualtest.Compare(actual, expected, opts)
	if err != nil {
		return kerrors.WithStack(err)
	}

	out := cmd.OutOrStdout()
	pct := 100 * float64(result.DifferentPixels) / float64(max(result.TotalPixels, 1))
	_, _ = fmt.Fprintf(out, "%d/%d pixels differ (%.2f%%), max channel difference %d\n",
		result.DifferentPixels, result.TotalPixels, pct, result.MaxDifference)

	match := result.Match
	if f.maxDistance >= 0 {
		dist, err := visualtest.PerceptualDistance(actual, expected)
		if err != nil {
			return kerrors.WithStack(err)
		}
		_, _ = fmt.Fprintf(out, "perceptual distance %d\n", dist)
		if dist > f.maxDistance {
			match = false
		}
	}

	if !match {
		return fmt.Errorf("images differ: %s vs %s", actualPath, expectedPath)
	}
	_, _ = fmt.Fprintln(out, "images match")
	return nil
}
