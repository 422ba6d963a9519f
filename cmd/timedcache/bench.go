// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	timedcache "github.com/venkatsvpr/golang-timedcache"
	cacheprom "github.com/venkatsvpr/golang-timedcache/adapters/prometheus"
	"github.com/venkatsvpr/golang-timedcache/simplecache"
)

type benchOptions struct {
	maxSize   int
	lru       bool
	unbounded bool
	typed     bool
	lifetime  time.Duration
	delay     time.Duration
	keys      int
	calls     int
	seed      int64
	verbose   bool
}

func (o *benchOptions) addFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.maxSize, "maxsize", 128, "maximum number of stored results, 0 disables caching")
	fs.BoolVar(&o.lru, "lru", true, "evict the least recently used result when full")
	fs.BoolVar(&o.unbounded, "unbounded", false, "ignore --maxsize and never bound the cache")
	fs.BoolVar(&o.typed, "typed", false, "make argument types part of the key")
	fs.DurationVar(&o.lifetime, "lifetime", 0, "clear the cache this often, 0 never clears")
	fs.DurationVar(&o.delay, "delay", 0, "time each computation takes")
	fs.IntVar(&o.keys, "keys", 1024, "number of distinct arguments")
	fs.IntVar(&o.calls, "calls", 100000, "number of calls to make")
	fs.Int64Var(&o.seed, "seed", 1, "workload seed")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log cache events")
}

func (o *benchOptions) validate() error {
	if o.keys < 2 {
		return fmt.Errorf("--keys must be at least 2, got %d", o.keys)
	}
	if o.calls < 0 {
		return fmt.Errorf("--calls must not be negative, got %d", o.calls)
	}
	return nil
}

func (o *benchOptions) cacheOptions(logger *zap.Logger, reg prometheus.Registerer) []simplecache.Option {
	opts := []simplecache.Option{
		simplecache.WithName("bench"),
		simplecache.WithLogger(logger),
		simplecache.WithMetrics(cacheprom.NewCacheMetrics(reg)),
		simplecache.WithLifetime(o.lifetime),
	}
	if !o.unbounded {
		opts = append(opts, simplecache.WithMaxSize(o.maxSize))
	}
	if o.lru {
		opts = append(opts, simplecache.WithLRU())
	}
	if o.typed {
		opts = append(opts, simplecache.WithTyped())
	}
	return opts
}

func newBenchCommand() *cobra.Command {
	o := &benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a skewed workload through a cache and report hit rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			logger, err := newLogger(o.verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			reg := prometheus.NewRegistry()
			stats, err := runBench(cmd.Context(), o, logger, reg)
			if err != nil {
				return err
			}
			total := stats.Hits + stats.Misses
			ratio := 0.0
			if total > 0 {
				ratio = float64(stats.Hits) / float64(total)
			}
			logger.Info("bench finished",
				zap.Uint64("hits", stats.Hits),
				zap.Uint64("misses", stats.Misses),
				zap.Uint64("evictions", stats.Evictions),
				zap.Uint64("clears", stats.Clears),
				zap.Float64("ratio", ratio),
			)
			families, err := reg.Gather()
			if err != nil {
				return err
			}
			for _, mf := range families {
				for _, m := range mf.GetMetric() {
					v := m.GetCounter().GetValue()
					if g := m.GetGauge(); g != nil {
						v = g.GetValue()
					}
					logger.Debug("metric", zap.String("name", mf.GetName()), zap.Float64("value", v))
				}
			}
			return nil
		},
	}
	o.addFlags(cmd.Flags())
	return cmd
}

// runBench makes o.calls calls with Zipf distributed arguments, so a few keys
// are hot and most are rare.
func runBench(ctx context.Context, o *benchOptions, logger *zap.Logger, reg prometheus.Registerer) (simplecache.Stats, error) {
	square := func(a timedcache.Args) (int, error) {
		if o.delay > 0 {
			time.Sleep(o.delay)
		}
		k := a.Positional[0].(int)
		return k * k, nil
	}
	c, err := timedcache.New(square, o.cacheOptions(logger, reg)...)
	if err != nil {
		return simplecache.Stats{}, err
	}

	r := rand.New(rand.NewSource(o.seed))
	zipf := rand.NewZipf(r, 1.1, 1, uint64(o.keys-1))
	logger.Info("bench starting",
		zap.Int("calls", o.calls),
		zap.Int("keys", o.keys),
		zap.Stringer("strategy", c.Strategy()),
	)
	for i := 0; i < o.calls; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return c.Stats(), err
			}
		}
		k := int(zipf.Uint64())
		v, err := c.Call(k)
		if err != nil {
			return c.Stats(), err
		}
		if v != k*k {
			return c.Stats(), fmt.Errorf("wrong result for %d: %d", k, v)
		}
	}
	return c.Stats(), nil
}
