package chunked

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fcrypt/fcrypt/internal/transform"
)

// ProgressFunc receives the number of chunks completed so far and the
// current throughput in bytes/sec, sampled roughly every 200ms while
// EncryptChunks runs.
type ProgressFunc func(completed int, throughput float64)

// defaultWorkers returns the worker-pool size used when the caller has no
// preference: the runtime's CPU count, falling back to 2 when it reports
// no usable CPUs - matching the distilled source's hardware_concurrency()
// fallback.
func defaultWorkers() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 2
}

// EncryptChunks runs the keyed forward transform (C5) over every chunk's
// 1KB sub-chunks in parallel. Results land in a slice pre-sized and
// indexed by chunk ordinal, so the outcome never depends on goroutine
// completion order - the same shape as the teacher's pieceHasher result
// slice. Workers claim a contiguous run of chunks via ceil(k/W)
// partitioning, identical to piecesPerWorker. onProgress may be nil; when
// set, it is called periodically from a ticker goroutine the same way the
// teacher's hashPieces drives UpdateProgress.
func EncryptChunks(chunks []Chunk, key []byte, workers int, onProgress ProgressFunc) ([]Chunk, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("encrypt chunks: empty key")
	}
	return processChunks(chunks, key, workers, transform.Forward, onProgress), nil
}

// DecryptChunks applies the reverse transform (C5) to every chunk. Unlike
// encryption this is sequential: chunks are written back to the output
// file strictly in index order, so there is nothing to gain by also
// running the per-chunk transform concurrently.
func DecryptChunks(chunks []Chunk, key []byte) ([]Chunk, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("decrypt chunks: empty key")
	}
	out := make([]Chunk, len(chunks))
	for i, c := range chunks {
		out[i] = Chunk{Index: c.Index, Data: transformSubChunks(c.Data, key, c.Index, transform.Reverse)}
	}
	return out, nil
}

func processChunks(chunks []Chunk, key []byte, workers int, fn func(data, key []byte, idx int), onProgress ProgressFunc) []Chunk {
	if len(chunks) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = defaultWorkers()
	}
	if workers > len(chunks) {
		workers = len(chunks)
	}

	result := make([]Chunk, len(chunks))
	perWorker := (len(chunks) + workers - 1) / workers

	var completed int64
	var bytesDone int64
	startTime := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker
		if end > len(chunks) {
			end = len(chunks)
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				c := chunks[i]
				result[i] = Chunk{Index: c.Index, Data: transformSubChunks(c.Data, key, c.Index, fn)}
				atomic.AddInt64(&completed, 1)
				atomic.AddInt64(&bytesDone, int64(len(c.Data)))
			}
		}(start, end)
	}

	if onProgress == nil {
		wg.Wait()
		return result
	}

	progressCtx, cancelProgress := context.WithCancel(context.Background())
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				done := atomic.LoadInt64(&completed)
				if done >= int64(len(chunks)) {
					return
				}
				elapsed := time.Since(startTime).Seconds()
				var throughput float64
				if elapsed > 0 {
					throughput = float64(atomic.LoadInt64(&bytesDone)) / elapsed
				}
				onProgress(int(done), throughput)
			case <-progressCtx.Done():
				return
			}
		}
	}()

	wg.Wait()
	cancelProgress()
	select {
	case <-progressDone:
	case <-time.After(100 * time.Millisecond):
	}

	return result
}

// transformSubChunks walks data in SubChunkSize strides, applying fn to a
// scratch copy of each sub-chunk with the parent chunk's ordinal as the
// round index - every sub-chunk of a chunk shares that one index.
func transformSubChunks(data, key []byte, idx int, fn func(data, key []byte, idx int)) []byte {
	out := make([]byte, len(data))
	for i := 0; i < len(data); i += SubChunkSize {
		end := i + SubChunkSize
		if end > len(data) {
			end = len(data)
		}
		sub := subChunkPool.Get().([]byte)[:0]
		sub = append(sub, data[i:end]...)
		fn(sub, key, idx)
		copy(out[i:end], sub)
		subChunkPool.Put(sub)
	}
	return out
}

var subChunkPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 0, SubChunkSize)
	},
}
