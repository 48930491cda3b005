package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"
)

func main() {
	steps := flag.Int("steps", 1500, "ticks to observe after pacing stops")
	warmup := flag.Int("warmup", 900, "paced ticks before the pacemakers are silenced")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seeds := flag.Int("seeds", 4, "seeds evaluated per parameter set")
	baseSeed := flag.Int64("seed", 1, "seed the per-run seeds are derived from")
	scenario := flag.String("scenario", "afib", "scenario to sweep")
	scales := flag.String("scales", "5,10,20,40", "comma separated noise scales")
	percents := flag.String("percents", "0,20,40,60,80", "comma separated noise percentages")
	top := flag.Int("top", 10, "number of parameter sets to print")
	flag.Parse()

	scaleOptions, err := parseInts(*scales)
	if err != nil {
		log.Fatalf("-scales: %v", err)
	}
	percentOptions, err := parseInts(*percents)
	if err != nil {
		log.Fatalf("-percents: %v", err)
	}
	if *workers <= 0 {
		*workers = 1
	}

	runSeeds := deriveSeeds(*baseSeed, *seeds)
	var jobsList []job
	for _, scale := range scaleOptions {
		for _, percent := range percentOptions {
			for _, seed := range runSeeds {
				jobsList = append(jobsList, job{
					params: paramSet{noiseScale: scale, noisePercent: percent},
					seed:   seed,
				})
			}
		}
	}

	opts := sweepOptions{scenario: *scenario, warmup: *warmup, steps: *steps}
	fmt.Printf("Sweeping %d runs on %q (%d workers, %d paced + %d free ticks)\n",
		len(jobsList), *scenario, *workers, *warmup, *steps)

	jobs := make(chan job)
	results := make(chan runResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- runCandidate(opts, j)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, j := range jobsList {
			jobs <- j
		}
		close(jobs)
	}()

	start := time.Now()
	var all []runResult
	for res := range results {
		if res.err != nil {
			log.Fatalf("%s seed %d: %v", res.params, res.seed, res.err)
		}
		all = append(all, res)
		if res.sustained {
			fmt.Printf("Sustained reentry with %s seed %d (peak %d active)\n", res.params, res.seed, res.peak)
		}
	}

	rows := summarize(all)
	fmt.Printf("\nTop %d parameter sets (elapsed %s):\n", min(*top, len(rows)), time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(rows) && i < *top; i++ {
		r := rows[i]
		fmt.Printf("%2d) %s sustained=%d/%d meanSurvival=%.1f peak=%d\n",
			i+1, r.params, r.sustained, r.runs, r.meanSurvival, r.peak)
	}
}
