// quotaprobe fires concurrent requests at a tenant-scoped endpoint and
// reports how the hourly quota behaves: status distribution, the
// X-RateLimit-* headers over time and the first denial.
//
// Usage:
//
//	quotaprobe -url http://localhost:8080/api/v1/menu -tenant <uuid> -n 150 -c 10
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type result struct {
	status     int
	remaining  string
	retryAfter string
	latency    time.Duration
	err        error
}

func main() {
	var (
		url         = flag.String("url", "http://localhost:8080/api/v1/menu", "endpoint to probe")
		tenant      = flag.String("tenant", "", "tenant ID sent in the X-Tenant-ID header (required)")
		total       = flag.Int("n", 150, "total number of requests")
		concurrency = flag.Int("c", 10, "concurrent workers")
		timeout     = flag.Duration("timeout", 10*time.Second, "per-request timeout")
	)
	flag.Parse()

	if *tenant == "" {
		fmt.Fprintln(os.Stderr, "quotaprobe: -tenant is required")
		flag.Usage()
		os.Exit(2)
	}

	client := &http.Client{Timeout: *timeout}
	jobs := make(chan int)
	results := make(chan result, *total)

	var firstDenial atomic.Int64
	firstDenial.Store(-1)

	var wg sync.WaitGroup
	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seq := range jobs {
				results <- probe(client, *url, *tenant, seq, &firstDenial)
			}
		}()
	}

	start := time.Now()
	go func() {
		for i := 0; i < *total; i++ {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	statuses := make(map[int]int)
	var lastRemaining, lastRetryAfter string
	var latencies []time.Duration
	errCount := 0

	for r := range results {
		if r.err != nil {
			errCount++
			continue
		}
		statuses[r.status]++
		latencies = append(latencies, r.latency)
		if r.remaining != "" {
			lastRemaining = r.remaining
		}
		if r.retryAfter != "" {
			lastRetryAfter = r.retryAfter
		}
	}

	elapsed := time.Since(start)

	fmt.Printf("probed %s as tenant %s\n", *url, *tenant)
	fmt.Printf("sent %d requests over %s (%d workers)\n", *total, elapsed.Round(time.Millisecond), *concurrency)

	codes := make([]int, 0, len(statuses))
	for code := range statuses {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Printf("  %d: %d\n", code, statuses[code])
	}
	if errCount > 0 {
		fmt.Printf("  transport errors: %d\n", errCount)
	}

	if seq := firstDenial.Load(); seq >= 0 {
		fmt.Printf("first 429 at request #%d\n", seq+1)
	} else {
		fmt.Println("no 429 observed; quota not exhausted")
	}
	if lastRemaining != "" {
		fmt.Printf("last X-RateLimit-Remaining: %s\n", lastRemaining)
	}
	if lastRetryAfter != "" {
		fmt.Printf("last Retry-After: %ss\n", lastRetryAfter)
	}
	if len(latencies) > 0 {
		fmt.Printf("p50 latency: %s\n", percentile(latencies, 0.50).Round(time.Microsecond))
		fmt.Printf("p99 latency: %s\n", percentile(latencies, 0.99).Round(time.Microsecond))
	}
}

func probe(client *http.Client, url, tenant string, seq int, firstDenial *atomic.Int64) result {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return result{err: err}
	}
	req.Header.Set("X-Tenant-ID", tenant)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return result{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		firstDenial.CompareAndSwap(-1, int64(seq))
	}

	return result{
		status:     resp.StatusCode,
		remaining:  resp.Header.Get("X-RateLimit-Remaining"),
		retryAfter: resp.Header.Get("Retry-After"),
		latency:    time.Since(start),
	}
}

func percentile(durations []time.Duration, p float64) time.Duration {
	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}
