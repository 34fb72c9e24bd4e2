//go:build test

package mem

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"typeahead/pkg/source"
	"typeahead/pkg/typeahead"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var testQueries = []string{
	"a", "ap", "app", "appl", "apple",
	"b", "ba", "ban", "bana", "banana",
	"g", "gr", "gra", "grap", "grape",
	"m", "ma", "man", "mang", "mango",
	"p", "pe", "pea", "peac", "peach",
}

func testWords() []string {
	words := []string{
		"apple", "apricot", "avocado", "banana", "blueberry",
		"cherry", "grape", "grapefruit", "mango", "melon",
		"orange", "papaya", "peach", "pear", "pineapple",
	}
	// Pad the store so searches walk a non-trivial record set.
	out := make([]string, 0, len(words)*200)
	for i := 0; i < 200; i++ {
		for _, w := range words {
			out = append(out, fmt.Sprintf("%s%03d", w, i))
		}
	}
	return out
}

func newWidget(t testing.TB) *typeahead.Widget {
	t.Helper()
	w, err := typeahead.New(typeahead.DefaultConfig(source.Strings(testWords()...)))
	if err != nil {
		t.Fatalf("failed to build widget: %v", err)
	}
	return w
}

func heapAlloc() uint64 {
	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapAlloc
}

func TestMemoryLeakBasic(t *testing.T) {
	iterations := []int{100, 500, 1000, 2500}

	for _, iterCount := range iterations {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			runBasicMemoryTest(t, iterCount)
		})
	}
}

func runBasicMemoryTest(t *testing.T, iterations int) {
	w := newWidget(t)
	defer w.Close()

	// Warm up so one-time allocations don't count against growth.
	for _, q := range testQueries {
		if _, err := w.Start(context.Background(), q); err != nil {
			t.Fatalf("warmup search failed: %v", err)
		}
	}

	before := heapAlloc()
	for i := 0; i < iterations; i++ {
		q := testQueries[i%len(testQueries)]
		if _, err := w.Start(context.Background(), q); err != nil {
			t.Fatalf("search %d failed: %v", i, err)
		}
	}
	after := heapAlloc()

	growth := int64(after) - int64(before)
	t.Logf("heap growth after %d searches: %d bytes", iterations, growth)

	// Feedback objects are per-search and must not accumulate. Allow
	// some slack for runtime noise.
	const maxGrowth = 8 << 20
	if growth > maxGrowth {
		t.Errorf("heap grew by %d bytes over %d searches, limit %d", growth, iterations, maxGrowth)
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 1000},
		{workers: 2, iterationsPerWorker: 500},
		{workers: 4, iterationsPerWorker: 250},
		{workers: 8, iterationsPerWorker: 125},
	}

	for _, config := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", config.workers, config.iterationsPerWorker), func(t *testing.T) {
			runConcurrentMemoryTest(t, config.workers, config.iterationsPerWorker)
		})
	}
}

func runConcurrentMemoryTest(t *testing.T, workers, iterationsPerWorker int) {
	w := newWidget(t)
	defer w.Close()

	before := heapAlloc()

	var wg sync.WaitGroup
	for worker := 0; worker < workers; worker++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := 0; i < iterationsPerWorker; i++ {
				q := testQueries[(offset+i)%len(testQueries)]
				// Concurrent searches race on the generation counter;
				// losing with ErrSuperseded is expected here.
				w.Start(context.Background(), q)
			}
		}(worker)
	}
	wg.Wait()

	after := heapAlloc()
	growth := int64(after) - int64(before)
	t.Logf("heap growth after %d workers x %d searches: %d bytes", workers, iterationsPerWorker, growth)

	const maxGrowth = 16 << 20
	if growth > maxGrowth {
		t.Errorf("heap grew by %d bytes, limit %d", growth, maxGrowth)
	}
}

func TestMemoryStabilityLongRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long-running memory stability test in short mode")
	}

	cycles := 50
	opsPerCycle := 200

	w := newWidget(t)
	defer w.Close()

	var samples []uint64
	for cycle := 0; cycle < cycles; cycle++ {
		for i := 0; i < opsPerCycle; i++ {
			q := testQueries[i%len(testQueries)]
			if _, err := w.Start(context.Background(), q); err != nil {
				t.Fatalf("cycle %d search %d failed: %v", cycle, i, err)
			}
		}
		samples = append(samples, heapAlloc())
	}

	first, last := samples[0], samples[len(samples)-1]
	t.Logf("heap over %d cycles: first=%d last=%d", cycles, first, last)

	// Steady-state usage should not trend upward cycle over cycle.
	if last > first*2 && last-first > 8<<20 {
		t.Errorf("heap doubled over the run: first=%d last=%d", first, last)
	}
}
