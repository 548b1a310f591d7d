/*
Copyright 2011-2017 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command snappytool is the library's CLI surface, rebuilt on
// github.com/urfave/cli/v2 in place of the teacher's hand-rolled
// map[string]interface{} argument parser (app/BlockCompressor.go,
// app/BlockDecompressor.go), since the rest of the retrieval pack
// reaches for urfave/cli rather than rolling its own flag parsing.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	snappy "github.com/lattice-db/snappy-go"
	"github.com/lattice-db/snappy-go/parallel"
)

const (
	defaultConcurrency = 1
	maxConcurrency     = 64
	stdinName          = "STDIN"
	stdoutName         = "STDOUT"
)

type verboseListener struct {
	verbosity uint
}

func (this *verboseListener) ProcessEvent(evt *snappy.Event) {
	if this.verbosity > 0 {
		fmt.Fprintln(os.Stderr, evt.String())
	}
}

func openInput(name string) (*os.File, error) {
	if name == "" || name == stdinName {
		return os.Stdin, nil
	}

	return os.Open(name)
}

func openOutput(name string, overwrite bool) (*os.File, error) {
	if name == "" || name == stdoutName {
		return os.Stdout, nil
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	return os.OpenFile(name, flags, 0644)
}

// writeFile writes data to name, honoring the same overwrite semantics
// as openOutput.
func writeFile(name string, data []byte, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(name, flags, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}

// jobCount clamps the --jobs flag into [1, maxConcurrency]; 0 defers to
// parallel.DefaultJobs.
func jobCount(c *cli.Context) uint {
	jobs := c.Uint("jobs")
	if jobs > maxConcurrency {
		jobs = maxConcurrency
	}

	return jobs
}

// runBatchCompress compresses each positional-argument file independently,
// spread across --jobs workers via the parallel package (spec.md §5's
// "multiple threads may compress... disjoint buffers in parallel"), and
// writes each result alongside its input with a ".sz" suffix.
func runBatchCompress(c *cli.Context) error {
	files := c.Args().Slice()

	bufs := make([][]byte, len(files))
	for i, name := range files {
		b, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		bufs[i] = b
	}

	start := time.Now()

	out, err := parallel.CompressMany(bufs, jobCount(c))
	if err != nil {
		return err
	}

	for i, name := range files {
		if err := writeFile(name+".sz", out[i], c.Bool("overwrite")); err != nil {
			return err
		}
	}

	if c.Uint("verbose") > 0 {
		fmt.Fprintf(os.Stderr, "Compressed %d file(s) in %v\n", len(files), time.Since(start))
	}

	return nil
}

// decompressedName derives a batch-decompress output path: strip the
// ".sz" suffix runBatchCompress adds, or fall back to an ".out" suffix
// for an input that never had one.
func decompressedName(name string) string {
	if strings.HasSuffix(name, ".sz") {
		return strings.TrimSuffix(name, ".sz")
	}

	return name + ".out"
}

// runBatchDecompress mirrors runBatchCompress for decompression.
func runBatchDecompress(c *cli.Context) error {
	files := c.Args().Slice()

	bufs := make([][]byte, len(files))
	for i, name := range files {
		b, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		bufs[i] = b
	}

	start := time.Now()

	out, err := parallel.DecompressMany(bufs, jobCount(c))
	if err != nil {
		return err
	}

	for i, name := range files {
		if err := writeFile(decompressedName(name), out[i], c.Bool("overwrite")); err != nil {
			return err
		}
	}

	if c.Uint("verbose") > 0 {
		fmt.Fprintf(os.Stderr, "Decompressed %d file(s) in %v\n", len(files), time.Since(start))
	}

	return nil
}

func runCompress(c *cli.Context) error {
	if c.Args().Len() > 0 {
		return runBatchCompress(c)
	}

	in, err := openInput(c.String("input"))
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := openOutput(c.String("output"), c.Bool("overwrite"))
	if err != nil {
		return err
	}
	defer out.Close()

	listeners := []snappy.Listener{&verboseListener{verbosity: c.Uint("verbose")}}

	start := time.Now()
	// Checksums are also collected under --verbose: one is returned per
	// block, so their count is the block count reported below.
	withChecksum := c.Bool("checksum") || c.Uint("verbose") > 0
	checksums, err := snappy.EncodeStream(out, in, listeners, withChecksum)
	if err != nil {
		return err
	}

	if c.Bool("checksum") {
		for i, sum := range checksums {
			fmt.Fprintf(os.Stderr, "block %d xxhash64 %016x\n", i, sum)
		}
	}

	if c.Uint("verbose") > 0 {
		fmt.Fprintf(os.Stderr, "Compressed %d block(s) in %v\n", len(checksums), time.Since(start))
	}

	return nil
}

func runDecompress(c *cli.Context) error {
	if c.Args().Len() > 0 {
		return runBatchDecompress(c)
	}

	in, err := openInput(c.String("input"))
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := openOutput(c.String("output"), c.Bool("overwrite"))
	if err != nil {
		return err
	}
	defer out.Close()

	listeners := []snappy.Listener{&verboseListener{verbosity: c.Uint("verbose")}}

	start := time.Now()
	if err := snappy.DecodeStream(out, in, listeners); err != nil {
		return err
	}

	if c.Uint("verbose") > 0 {
		fmt.Fprintf(os.Stderr, "Decompressed in %v\n", time.Since(start))
	}

	return nil
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "input file, or STDIN"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file, or STDOUT"},
		&cli.BoolFlag{Name: "overwrite", Aliases: []string{"f"}, Usage: "overwrite the output file if it exists"},
		&cli.UintFlag{Name: "verbose", Aliases: []string{"v"}, Value: 0, Usage: "verbosity level"},
		&cli.UintFlag{Name: "jobs", Aliases: []string{"j"}, Value: defaultConcurrency, Usage: "number of concurrent jobs"},
	}
}

func main() {
	app := &cli.App{
		Name:  "snappytool",
		Usage: "compress and decompress Snappy-format streams",
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Aliases:   []string{"c"},
				Usage:     "compress a file, or FILEs... in parallel across --jobs workers",
				ArgsUsage: "[FILE...]",
				Flags: append(commonFlags(), &cli.BoolFlag{
					Name: "checksum", Usage: "report a per-block xxhash64 checksum",
				}),
				Action: runCompress,
			},
			{
				Name:      "decompress",
				Aliases:   []string{"d"},
				Usage:     "decompress a file, or FILEs... in parallel across --jobs workers",
				ArgsUsage: "[FILE...]",
				Flags:     commonFlags(),
				Action:    runDecompress,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "snappytool:", err)
		os.Exit(1)
	}
}
