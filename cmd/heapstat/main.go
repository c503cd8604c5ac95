// Command heapstat drives a scripted allocation workload against the
// heap core and reports the resulting counters, free-list state and heap
// image checksum. Useful for eyeballing how the placement policies
// behave under the same load.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/heap/alloc"
	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/heap/brk"
	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/heap/malloc"
	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/heap/stats"
)

func main() {
	var (
		policyName = flag.String("policy", "first-fit", "placement policy: first-fit, best-fit or worst-fit")
		ops        = flag.Int("ops", 10000, "number of workload operations")
		seed       = flag.Int64("seed", 1, "workload RNG seed")
		maxSize    = flag.Int("max-size", 4096, "largest single allocation in bytes")
		limit      = flag.Int64("limit", 64<<20, "heap reservation limit in bytes")
		trim       = flag.Int64("trim", 4096, "trim threshold in bytes")
	)
	flag.Parse()

	policy, ok := alloc.ParsePolicy(*policyName)
	if !ok {
		fmt.Fprintf(os.Stderr, "heapstat: unknown policy %q\n", *policyName)
		os.Exit(2)
	}

	if err := run(policy, *ops, *seed, *maxSize, *limit, *trim); err != nil {
		fmt.Fprintf(os.Stderr, "heapstat: %v\n", err)
		os.Exit(1)
	}
}

func run(policy alloc.Policy, ops int, seed int64, maxSize int, limit, trim int64) error {
	b, err := brk.NewMap(limit)
	if err != nil {
		return err
	}
	defer b.Close()

	a, err := malloc.New(b, alloc.Config{Policy: policy, TrimThreshold: trim})
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed))
	live := make([][]byte, 0, 1024)

	for i := 0; i < ops; i++ {
		// Two-thirds allocate, one-third free, like a churn-heavy workload.
		if len(live) == 0 || rng.Intn(3) != 0 {
			p, aerr := a.Malloc(1 + rng.Intn(maxSize))
			if aerr != nil {
				return aerr
			}
			live = append(live, p)
			continue
		}
		idx := rng.Intn(len(live))
		if ferr := a.Free(live[idx]); ferr != nil {
			return ferr
		}
		live[idx] = live[len(live)-1]
		live = live[:len(live)-1]
	}

	// Drain everything so the report shows steady-state reclamation.
	for _, p := range live {
		if ferr := a.Free(p); ferr != nil {
			return ferr
		}
	}

	report(a, policy, ops)
	return nil
}

func report(a *malloc.Allocator, policy alloc.Policy, ops int) {
	p := message.NewPrinter(language.English)
	snap := a.Stats()

	p.Printf("policy:      %s\n", policy)
	p.Printf("operations:  %d\n", ops)
	for _, c := range stats.Counters() {
		p.Printf("%-12s %d\n", c.String()+":", snap[c.String()])
	}
	p.Printf("free list:   %d blocks\n", a.FreeListLength())
	p.Printf("checksum:    %#x\n", a.Checksum())
}
