package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/atharv3903/roadtrip/internal/cache"
	"github.com/atharv3903/roadtrip/internal/model"
)

type result struct {
	latency time.Duration
	found   bool
	err     bool
}

func main() {
	server := flag.String("server", "http://127.0.0.1:8080", "roadtrip server base URL")
	clients := flag.Int("clients", 8, "concurrent closed-loop clients")
	duration := flag.Duration("duration", 30*time.Second, "test duration")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	client := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        500,
			MaxIdleConnsPerHost: 500,
			IdleConnTimeout:     90 * time.Second,
		},
		Timeout: 5 * time.Second,
	}

	cities, err := loadCities(client, *server)
	if err != nil {
		log.Error("load cities", slog.Any("err", err))
		os.Exit(1)
	}
	if len(cities) == 0 {
		log.Error("server has no cities")
		os.Exit(1)
	}
	log.Info("loaded cities", slog.Int("count", len(cities)))

	// clear the neighbor cache so the stats cover this run only
	resp, err := client.Post(*server+"/debug/clear_neighborcache", "text/plain", nil)
	if err != nil {
		log.Error("clear neighbor cache", slog.Any("err", err))
		os.Exit(1)
	}
	resp.Body.Close()

	results := runClosedLoop(client, *server, cities, *clients, *duration)
	summarize(results, *clients, *duration)

	stats, err := loadCacheStats(client, *server)
	if err != nil {
		log.Error("neighbor cache stats", slog.Any("err", err))
		return
	}
	fmt.Println("\n---------- NEIGHBOR CACHE ----------")
	fmt.Printf("Gets: %d  Hits: %d  Puts: %d  Evictions: %d  Entries: %d\n",
		stats.Gets, stats.Hits, stats.Puts, stats.Evictions, stats.Entries)
	fmt.Printf("Hit Rate: %.2f%%\n", stats.HitRate()*100)
}

func loadCacheStats(client *http.Client, server string) (cache.Stats, error) {
	var stats cache.Stats
	resp, err := client.Get(server + "/debug/neighborcache_stats")
	if err != nil {
		return stats, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return stats, fmt.Errorf("GET /debug/neighborcache_stats: %s", resp.Status)
	}
	err = json.NewDecoder(resp.Body).Decode(&stats)
	return stats, err
}

func loadCities(client *http.Client, server string) ([]model.City, error) {
	resp, err := client.Get(server + "/cities")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET /cities: %s", resp.Status)
	}

	var cities []model.City
	if err := json.NewDecoder(resp.Body).Decode(&cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// runClosedLoop keeps each client busy issuing one query after another until
// the duration elapses.
func runClosedLoop(client *http.Client, server string, cities []model.City, clients int, dur time.Duration) []result {
	ctx, cancel := context.WithTimeout(context.Background(), dur)
	defer cancel()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var results []result

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))

			for ctx.Err() == nil {
				from := cities[rnd.Intn(len(cities))]
				to := cities[rnd.Intn(len(cities))]
				q := url.Values{"from": {string(from)}, "to": {string(to)}}

				start := time.Now()
				resp, err := client.Get(server + "/route?" + q.Encode())
				r := result{latency: time.Since(start)}
				if err != nil {
					r.err = true
				} else {
					var rr model.RouteResponse
					r.found = resp.StatusCode == http.StatusOK && json.NewDecoder(resp.Body).Decode(&rr) == nil
					r.err = resp.StatusCode >= http.StatusInternalServerError
					resp.Body.Close()
				}

				mu.Lock()
				results = append(results, r)
				mu.Unlock()
			}
		}(time.Now().UnixNano() + int64(i))
	}

	wg.Wait()
	return results
}

func summarize(results []result, clients int, dur time.Duration) {
	fmt.Println("\n========== LOADGEN SUMMARY ==========")
	fmt.Printf("Clients: %d, Duration: %v\n", clients, dur)
	fmt.Printf("Total Requests: %d\n", len(results))
	if len(results) == 0 {
		fmt.Println("=====================================")
		return
	}

	var errs, found int
	lat := make([]time.Duration, 0, len(results))
	var sum time.Duration
	for _, r := range results {
		if r.err {
			errs++
			continue
		}
		if r.found {
			found++
		}
		lat = append(lat, r.latency)
		sum += r.latency
	}
	fmt.Printf("Errors: %d\n", errs)
	fmt.Printf("Routes Found: %.1f%%\n", float64(found)/float64(len(results))*100)
	fmt.Printf("Throughput: %.2f req/s\n", float64(len(results))/dur.Seconds())

	if len(lat) > 0 {
		sort.Slice(lat, func(i, j int) bool { return lat[i] < lat[j] })
		pct := func(p float64) time.Duration {
			i := int(float64(len(lat)) * p)
			if i >= len(lat) {
				i = len(lat) - 1
			}
			return lat[i]
		}
		fmt.Printf("Avg Latency: %v\n", sum/time.Duration(len(lat)))
		fmt.Printf("P50: %v  P95: %v  P99: %v\n", pct(0.50), pct(0.95), pct(0.99))
		fmt.Printf("Fastest: %v\n", lat[0])
		fmt.Printf("Slowest: %v\n", lat[len(lat)-1])
	}
	fmt.Println("=====================================")
}
