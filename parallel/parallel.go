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

// Package parallel provides the batch compression collaborator
// spec.md §1 names as out of the core's scope but spec.md §5 requires
// to exist somewhere: "multiple threads may compress or decompress
// disjoint buffers in parallel." It runs independent buffers through
// the core codec across a bounded worker pool and returns results in
// input order, never touching the codec's internal state (the core
// stays a pure, lock-free function per buffer).
package parallel

import (
	"runtime"
	"sync"

	"github.com/lattice-db/snappy-go"
)

// DefaultJobs is the worker count used when CompressMany/DecompressMany
// are called with jobs <= 0.
func DefaultJobs() uint {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}

	return uint(n)
}

// itemsPerWorker spreads items independent units of work across
// workers as evenly as possible: each worker gets the q = items/workers
// baseline, and the first r = items%workers workers get one extra. This
// is the teacher's Global.ComputeJobsPerTask remainder-distribution
// idea, reparented here to split a batch of buffers across a worker
// pool rather than splitting a job count across files.
func itemsPerWorker(items, workers uint) []uint {
	if workers == 0 {
		panic("snappy/parallel: 0 workers")
	}

	q := items / workers
	r := items % workers

	out := make([]uint, workers)

	for i := range out {
		out[i] = q
		if uint(i) < r {
			out[i]++
		}
	}

	return out
}

// result pairs a batch entry's output with any error, keeping Go's
// usual (value, error) shape even though results are collected out of
// completion order and must be re-sorted into input order.
type result struct {
	index int
	data  []byte
	err   error
}

// runBatch fans src out across jobs workers (default DefaultJobs when
// jobs <= 0), applying fn to each element independently, and gathers
// the results back in input order. Partitioning follows
// itemsPerWorker, matching how the teacher spread per-file
// concurrency across its job pool, generalized here to per-buffer
// concurrency across one batch call.
func runBatch(src [][]byte, jobs uint, fn func([]byte) ([]byte, error)) ([][]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	if jobs == 0 {
		jobs = DefaultJobs()
	}

	tasks := uint(len(src))
	if jobs > tasks {
		jobs = tasks
	}

	perWorker := itemsPerWorker(tasks, jobs)

	results := make([]result, len(src))
	var wg sync.WaitGroup
	next := 0

	for w := uint(0); w < jobs; w++ {
		n := int(perWorker[w])
		lo, hi := next, next+n
		next = hi

		wg.Add(1)

		go func(lo, hi int) {
			defer wg.Done()

			for i := lo; i < hi; i++ {
				data, err := fn(src[i])
				results[i] = result{index: i, data: data, err: err}
			}
		}(lo, hi)
	}

	wg.Wait()

	out := make([][]byte, len(src))

	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}

		out[r.index] = r.data
	}

	return out, nil
}

// CompressMany compresses each of src's buffers independently across
// jobs workers (DefaultJobs() when jobs <= 0), returning results in the
// same order as src.
func CompressMany(src [][]byte, jobs uint) ([][]byte, error) {
	return runBatch(src, jobs, func(b []byte) ([]byte, error) {
		return snappy.Encode(nil, b), nil
	})
}

// DecompressMany decompresses each of src's buffers independently
// across jobs workers (DefaultJobs() when jobs <= 0), returning results
// in the same order as src.
func DecompressMany(src [][]byte, jobs uint) ([][]byte, error) {
	return runBatch(src, jobs, func(b []byte) ([]byte, error) {
		return snappy.Decode(nil, b)
	})
}
