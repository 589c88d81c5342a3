package bincode

import "golang.org/x/sync/errgroup"

// EncodeJob is one independent unit of work for EncodeAll: encode Value
// shaped as Desc into Buf at Offset under the shared Config.
type EncodeJob struct {
	Desc   *Descriptor
	Value  Value
	Buf    []byte
	Offset int
}

// EncodeAll runs jobs concurrently and returns each job's resulting offset
// in the same order as jobs. This is a direct exercise of spec.md §5:
// "Multiple calls on distinct buffers and distinct values may run in
// parallel on separate threads without coordination" — each job writes
// only into its own Buf, so no synchronization is needed between them. A
// single job's Encode call remains single-threaded; only independent jobs
// are fanned out.
func EncodeAll(jobs []EncodeJob, cfg Config) ([]int, error) {
	offsets := make([]int, len(jobs))
	var g errgroup.Group
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			off, err := Encode(job.Desc, job.Value, job.Buf, job.Offset, cfg)
			if err != nil {
				return err
			}
			offsets[i] = off
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return offsets, nil
}

// DecodeJob is one independent unit of work for DecodeAll.
type DecodeJob struct {
	Desc   *Descriptor
	Buf    []byte
	Offset int
}

// DecodeResult is one job's outcome from DecodeAll.
type DecodeResult struct {
	Value  Value
	Offset int
}

// DecodeAll mirrors EncodeAll for decoding: each job reads only from its
// own Buf, so the jobs are fanned out across goroutines with no shared
// mutable state.
func DecodeAll(jobs []DecodeJob, cfg Config) ([]DecodeResult, error) {
	results := make([]DecodeResult, len(jobs))
	var g errgroup.Group
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			v, off, err := Decode(job.Desc, job.Buf, job.Offset, cfg)
			if err != nil {
				return err
			}
			results[i] = DecodeResult{Value: v, Offset: off}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
