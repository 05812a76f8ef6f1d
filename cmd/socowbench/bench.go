package main

import (
	"fmt"
	"log/slog"
	"slices"
	"testing"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/geofduf/socow/vector"
	"github.com/geofduf/socow/workload"
)

var (
	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Compare vector workloads with plain slices",
		Args:  cobra.NoArgs,
		RunE:  bench,
	}

	benchSize   int
	benchCopies int
)

func init() {
	flags := benchCmd.Flags()
	flags.IntVar(&benchSize, "size", 64, "number of elements of the source sequence")
	flags.IntVar(&benchCopies, "copies", 4, "number of copies made per operation")
	rootCmd.AddCommand(benchCmd)
}

// A workload is measured once with vectors and once with slices.
type benchWorkload struct {
	name   string
	vector func(src *workload.Vector) error
	slice  func(src []int64)
}

// cloneEach calls f with copies clones of src, releasing each one after it.
func cloneEach(src *workload.Vector, copies int, f func(c *workload.Vector) error) error {
	for range copies {
		c, err := src.Clone()
		if err != nil {
			return err
		}
		err = f(c)
		c.Release()
		if err != nil {
			return err
		}
	}
	return nil
}

func benchWorkloads(copies int) []benchWorkload {
	return []benchWorkload{
		{
			name: "copy",
			vector: func(src *workload.Vector) error {
				return cloneEach(src, copies, func(*workload.Vector) error { return nil })
			},
			slice: func(src []int64) {
				for range copies {
					_ = slices.Clone(src)
				}
			},
		},
		{
			name: "copy+read",
			vector: func(src *workload.Vector) error {
				return cloneEach(src, copies, func(c *workload.Vector) error {
					var sum int64
					for x := range c.Values() {
						sum += x
					}
					_ = sum
					return nil
				})
			},
			slice: func(src []int64) {
				for range copies {
					c := slices.Clone(src)
					var sum int64
					for _, x := range c {
						sum += x
					}
					_ = sum
				}
			},
		},
		{
			name: "copy+write",
			vector: func(src *workload.Vector) error {
				return cloneEach(src, copies, func(c *workload.Vector) error {
					return c.PushBack(1)
				})
			},
			slice: func(src []int64) {
				for range copies {
					c := slices.Clone(src)
					_ = append(c, 1)
				}
			},
		},
		{
			name: "build",
			vector: func(src *workload.Vector) error {
				v, err := vector.New[int64, [8]int64](src.View()...)
				if err != nil {
					return err
				}
				v.Release()
				return nil
			},
			slice: func(src []int64) { _ = append([]int64(nil), src...) },
		},
	}
}

func bench(cmd *cobra.Command, args []string) error {
	if benchSize < 0 || benchCopies < 1 {
		return fmt.Errorf("invalid size %d or copies %d", benchSize, benchCopies)
	}
	values := make([]int64, benchSize)
	for i := range values {
		values[i] = int64(i)
	}
	src, err := vector.New[int64, [8]int64](values...)
	if err != nil {
		return err
	}
	defer src.Release()
	slog.Info("benchmarking", "size", benchSize, "copies", benchCopies, "inline", src.IsInlined())

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "workload\tvector ns/op\tvector allocs/op\tslice ns/op\tslice allocs/op\t")
	for _, wl := range benchWorkloads(benchCopies) {
		var werr error
		v := testing.Benchmark(func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if werr = wl.vector(src); werr != nil {
					return
				}
			}
		})
		if werr != nil {
			return fmt.Errorf("workload %s: %w", wl.name, werr)
		}
		s := testing.Benchmark(func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				wl.slice(values)
			}
		})
		slog.Debug("measured", "workload", wl.name, "vector", v.String(), "slice", s.String())
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t\n", wl.name, v.NsPerOp(), v.AllocsPerOp(), s.NsPerOp(), s.AllocsPerOp())
	}
	return w.Flush()
}
