// Package utils holds helpers shared by the optimizers.
package utils

import (
	"runtime"
	"sync"
)

// MultiThread runs f over the range [0, n) in chunks of at most opsPerThread, spread across
// threadsPerCPU goroutines per CPU. Each call of f is given its own half-open sub-range, and the
// sub-ranges never overlap, so f may write to disjoint parts of a shared slice without locking.
//
// MultiThread returns once every chunk is done. A range no larger than one chunk runs on the
// calling goroutine.
func MultiThread(n int, f func(start, end int), opsPerThread, threadsPerCPU int) {
	if n <= 0 {
		return
	} else if opsPerThread < 1 {
		opsPerThread = 1
	}

	if n <= opsPerThread {
		f(0, n)
		return
	}

	numThreads := runtime.NumCPU() * threadsPerCPU
	if numThreads < 1 {
		numThreads = 1
	}

	index := 0
	var indexMux sync.Mutex

	var wg sync.WaitGroup

	wg.Add(numThreads)
	for thread := 0; thread < numThreads; thread++ {
		go func() {
			defer wg.Done()

			for {
				indexMux.Lock()
				if index >= n {
					indexMux.Unlock()
					return
				}

				start := index
				index += opsPerThread
				indexMux.Unlock()

				end := start + opsPerThread
				if end > n {
					end = n
				}

				f(start, end)
			}
		}()
	}

	wg.Wait()
}
