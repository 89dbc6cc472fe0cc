// Command lmer drives the rotation-canonical k-mer library: it can
// enumerate l-mers, sample random k-mers, rank them densely, partition
// sorted rank sets for piecewise Elias-Fano encoding, and measure hot
// path throughput. The k-mer length is bound at build time in
// pkg/params; regenerate it with cmd/genparams to change K.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/kmerlab/lmer/pkg/kmer"
	"github.com/kmerlab/lmer/pkg/lyndon"
	"github.com/kmerlab/lmer/pkg/necklace"
	"github.com/kmerlab/lmer/pkg/params"
	"github.com/kmerlab/lmer/pkg/partition"
	"github.com/kmerlab/lmer/pkg/rank"
	"github.com/kmerlab/lmer/pkg/report"
)

func main() {
	var configPath string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "lmer",
		Short: fmt.Sprintf("rotation-canonical k-mer toolkit (built for K=%d)", params.K),
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "HuJSON config file (default lmer.json if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// lmers command
	var asNucs bool

	lmersCmd := &cobra.Command{
		Use:   "lmers",
		Short: "Enumerate all distinct l-mers for the built K",
		RunE: func(cmd *cobra.Command, args []string) error {
			if params.K > 13 {
				return fmt.Errorf("enumerating 4^%d k-mers is infeasible; rebuild with a smaller K", params.K)
			}
			set := make(map[uint64]struct{})
			top := uint64(1)<<params.KmerBits - 1
			for x := uint64(0); ; x++ {
				m := kmer.FromInt(params.K, params.Word(x))
				set[lyndon.Lmer(m)] = struct{}{}
				if x == top {
					break
				}
			}
			lmers := sortedKeys(set)
			if verbose {
				fmt.Printf("%d distinct l-mers for K=%d\n", len(lmers), params.K)
			}
			for _, l := range lmers {
				if asNucs {
					fmt.Println(kmer.FromInt(params.K, params.Word(l)))
				} else {
					fmt.Println(l)
				}
			}
			return nil
		},
	}
	lmersCmd.Flags().BoolVar(&asNucs, "nucs", false, "Print l-mers as nucleotides instead of integers")

	// sample command
	var count int
	var seed uint64
	var outDir string

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample random k-mers and write their canonical forms, packed (rank, rotation) pairs, and ranks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				count = cfg.Count
			}
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Seed
			}
			if !cmd.Flags().Changed("out-dir") {
				outDir = cfg.OutDir
			}

			rng := rand.New(rand.NewPCG(seed, seed))
			kmers := kmer.Random[params.Word](rng, params.K, count)

			ranker, rankErr := rank.New[params.Word](params.CanonBits)
			canonSet := make(map[uint64]struct{}, count)
			lmerIdxSet := make(map[uint64]struct{}, count)
			rankSet := make(map[uint64]struct{}, count)
			for _, m := range kmers {
				canonSet[m.Canonical().Int()>>1] = struct{}{}
				if ranker == nil {
					continue
				}
				l, idx := lyndon.LmerIndex(m)
				r := ranker.Rank(l)
				lmerIdxSet[r<<params.RotBits|uint64(idx)] = struct{}{}
				rankSet[r] = struct{}{}
			}

			path := filepath.Join(outDir, fmt.Sprintf("sorted_kmers_%d.txt", params.K))
			if err := writeInts(path, sortedKeys(canonSet)); err != nil {
				return err
			}
			if verbose {
				fmt.Printf("wrote %d canonical forms to %s\n", len(canonSet), path)
			}
			if ranker == nil {
				fmt.Printf("skipping ranked outputs: %v\n", rankErr)
				return nil
			}
			path = filepath.Join(outDir, fmt.Sprintf("sorted_lmers_%d.txt", params.K))
			if err := writeInts(path, sortedKeys(lmerIdxSet)); err != nil {
				return err
			}
			path = filepath.Join(outDir, fmt.Sprintf("sorted_ranks_%d.txt", params.K))
			if err := writeInts(path, sortedKeys(rankSet)); err != nil {
				return err
			}
			if verbose {
				fmt.Printf("wrote %d packed l-mers and %d ranks\n", len(lmerIdxSet), len(rankSet))
			}
			return nil
		},
	}
	sampleCmd.Flags().IntVar(&count, "count", DefaultConfig().Count, "Number of random k-mers")
	sampleCmd.Flags().Uint64Var(&seed, "seed", DefaultConfig().Seed, "RNG seed")
	sampleCmd.Flags().StringVar(&outDir, "out-dir", DefaultConfig().OutDir, "Output directory")

	// ranks command
	var ranksCount int
	var ranksSeed uint64
	var ranksOut string
	var ranksReport string

	ranksCmd := &cobra.Command{
		Use:   "ranks",
		Short: "Write the sorted distinct necklace ranks of random k-mers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				ranksCount = cfg.Count
			}
			if !cmd.Flags().Changed("seed") {
				ranksSeed = cfg.Seed
			}
			if ranksOut == "" {
				ranksOut = filepath.Join(cfg.OutDir, fmt.Sprintf("sorted_ranks_%d.txt", params.K))
			}

			ranker, err := rank.New[params.Word](params.CanonBits)
			if err != nil {
				return fmt.Errorf("ranking needs a smaller K: %w", err)
			}
			rng := rand.New(rand.NewPCG(ranksSeed, ranksSeed))
			set := make(map[uint64]struct{}, ranksCount)
			for _, m := range kmer.Random[params.Word](rng, params.K, ranksCount) {
				set[ranker.Rank(lyndon.Lmer(m))] = struct{}{}
			}
			ranks := sortedKeys(set)
			if err := writeInts(ranksOut, ranks); err != nil {
				return err
			}
			if verbose {
				fmt.Printf("wrote %d ranks to %s\n", len(ranks), ranksOut)
			}
			if ranksReport != "" {
				universe := uint64(ranker.Len())
				rep := report.Ranks{
					K:        params.K,
					Kmers:    ranksCount,
					Distinct: len(ranks),
					Universe: universe,
					Density:  float64(len(ranks)) / float64(universe),
				}
				if err := report.WriteFile(ranksReport, rep); err != nil {
					return err
				}
			}
			return nil
		},
	}
	ranksCmd.Flags().IntVar(&ranksCount, "count", DefaultConfig().Count, "Number of random k-mers")
	ranksCmd.Flags().Uint64Var(&ranksSeed, "seed", DefaultConfig().Seed, "RNG seed")
	ranksCmd.Flags().StringVar(&ranksOut, "out", "", "Output file (default <out-dir>/sorted_ranks_K.txt)")
	ranksCmd.Flags().StringVar(&ranksReport, "report", "", "Write a JSON report to this path")

	// partition command
	var partInput string
	var partEps float64
	var partCount int
	var partSeed uint64
	var partRanked bool
	var partReport string

	partitionCmd := &cobra.Command{
		Use:   "partition",
		Short: "Compute a (1+eps)-approximate minimum-cost partition of a sorted integer set",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("eps") {
				partEps = cfg.Eps
			}
			if !cmd.Flags().Changed("count") {
				partCount = cfg.Count
			}
			if !cmd.Flags().Changed("seed") {
				partSeed = cfg.Seed
			}

			var vals []uint64
			switch {
			case partInput != "":
				vals, err = readInts(partInput)
				if err != nil {
					return err
				}
				for i := 1; i < len(vals); i++ {
					if vals[i] <= vals[i-1] {
						return fmt.Errorf("%s: values must be sorted and distinct (line %d)", partInput, i+1)
					}
				}
			default:
				rng := rand.New(rand.NewPCG(partSeed, partSeed))
				set := make(map[uint64]struct{}, partCount)
				var ranker *rank.Ranker[params.Word]
				if partRanked {
					ranker, err = rank.New[params.Word](params.CanonBits)
					if err != nil {
						return fmt.Errorf("ranking needs a smaller K: %w", err)
					}
				}
				for _, m := range kmer.Random[params.Word](rng, params.K, partCount) {
					l := lyndon.Lmer(m)
					if partRanked {
						set[ranker.Rank(l)] = struct{}{}
					} else {
						set[l] = struct{}{}
					}
				}
				vals = sortedKeys(set)
			}
			if len(vals) == 0 {
				return fmt.Errorf("no values to partition")
			}

			p := partition.New[uint64]()
			n := len(vals)
			plain := p.Cost(vals, 0, n)
			fmt.Printf("K=%d eps=%.2f %d entries\n", params.K, partEps, n)
			fmt.Printf("plain cost/entry: %.2f bits\n", float64(plain)/float64(n))

			bounds, cost := p.Partition(vals, partEps)
			fmt.Printf("partition cost/entry: %.2f bits\n", float64(cost)/float64(n))
			fmt.Printf("using %d block(s)\n", len(bounds))
			if check := p.CostWithPartition(vals, bounds); check != cost {
				return fmt.Errorf("cost accounting mismatch: %d vs %d", check, cost)
			}

			if partReport != "" {
				rep := report.Partition{
					K:             params.K,
					Ranked:        partRanked,
					Epsilon:       partEps,
					Entries:       n,
					Blocks:        len(bounds),
					PlainBits:     plain,
					PartitionBits: cost,
					BitsPerEntry:  float64(cost) / float64(n),
				}
				if err := report.WriteFile(partReport, rep); err != nil {
					return err
				}
				if verbose {
					fmt.Printf("report written to %s\n", partReport)
				}
			}
			return nil
		},
	}
	partitionCmd.Flags().StringVar(&partInput, "input", "", "Sorted newline-delimited integer file (default: sample random k-mers)")
	partitionCmd.Flags().Float64Var(&partEps, "eps", DefaultConfig().Eps, "Approximation factor")
	partitionCmd.Flags().IntVar(&partCount, "count", DefaultConfig().Count, "Number of random k-mers when sampling")
	partitionCmd.Flags().Uint64Var(&partSeed, "seed", DefaultConfig().Seed, "RNG seed when sampling")
	partitionCmd.Flags().BoolVar(&partRanked, "rank", false, "Partition dense ranks instead of raw l-mers")
	partitionCmd.Flags().StringVar(&partReport, "report", "", "Write a JSON report to this path")

	// graph command
	var graphSteps int
	var graphSeed uint64
	var graphOut string

	graphCmd := &cobra.Command{
		Use:   "graph",
		Short: "Dump the necklace successor graph of a random walk as DOT",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				graphSeed = cfg.Seed
			}
			return writeGraph(graphOut, graphSteps, graphSeed, verbose)
		},
	}
	graphCmd.Flags().IntVar(&graphSteps, "steps", 1000, "Length of the random walk")
	graphCmd.Flags().Uint64Var(&graphSeed, "seed", DefaultConfig().Seed, "RNG seed")
	graphCmd.Flags().StringVar(&graphOut, "out", "sample.dot", "Output DOT file")

	// throughput command
	var tpCount int
	var tpSeed uint64

	throughputCmd := &cobra.Command{
		Use:   "throughput",
		Short: "Measure l-mer and rank throughput on random k-mers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				tpCount = cfg.Count
			}
			if !cmd.Flags().Changed("seed") {
				tpSeed = cfg.Seed
			}

			rng := rand.New(rand.NewPCG(tpSeed, tpSeed))
			kmers := kmer.Random[params.Word](rng, params.K, tpCount)
			lmers := make([]params.Word, 0, tpCount)
			fmt.Printf("throughput for K=%d over %d k-mers:\n", params.K, tpCount)

			start := time.Now()
			for _, m := range kmers {
				lmers = append(lmers, lyndon.Lmer(m))
			}
			fmt.Printf("%d ns/kmer to compute necklace\n", time.Since(start).Nanoseconds()/int64(tpCount))

			ranker, err := rank.New[params.Word](params.CanonBits)
			if err != nil {
				fmt.Printf("skipping rank timing: %v\n", err)
				return nil
			}
			var sink uint64
			start = time.Now()
			for _, l := range lmers {
				sink += ranker.Rank(l)
			}
			fmt.Printf("%d ns/lmer to compute rank\n", time.Since(start).Nanoseconds()/int64(tpCount))
			_ = sink
			return nil
		},
	}
	throughputCmd.Flags().IntVar(&tpCount, "count", 100_000, "Number of random k-mers")
	throughputCmd.Flags().Uint64Var(&tpSeed, "seed", DefaultConfig().Seed, "RNG seed")

	rootCmd.AddCommand(lmersCmd, sampleCmd, ranksCmd, partitionCmd, graphCmd, throughputCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// writeGraph replays a random walk over the sliding necklace and emits
// the successor edges between the visited necklaces.
func writeGraph(path string, steps int, seed uint64, verbose bool) error {
	const n = params.CanonBits
	mask := params.Word(1)<<n - 1

	rng := rand.New(rand.NewPCG(seed, seed))
	word := params.Word(rng.Uint64()) & (mask >> 1)
	set := make(map[params.Word]struct{})
	for i := 0; i < steps; i++ {
		word = (word<<1 | params.Word(rng.Uint64()&1)) & mask
		set[necklace.Necklace(word, n)] = struct{}{}
	}
	if verbose {
		fmt.Printf("%d necklaces visited\n", len(set))
	}

	necks := make([]params.Word, 0, len(set))
	for neck := range set {
		necks = append(necks, neck)
	}
	sort.Slice(necks, func(i, j int) bool { return necks[i] < necks[j] })

	var buf []byte
	buf = append(buf, "digraph { node[shape=point]\n"...)
	for _, neck := range necks {
		rot := neck
		for i := 0; i < n; i++ {
			s := rot>>1 | (1-rot&1)<<(n-1)
			if ns := necklace.Necklace(s, n); containsWord(set, ns) {
				buf = append(buf, fmt.Sprintf("%b -> %b\n", neck, ns)...)
			}
			rot = necklace.RotRight(rot, n)
		}
	}
	buf = append(buf, "}\n"...)
	return writeBytes(path, buf)
}

func containsWord(set map[params.Word]struct{}, w params.Word) bool {
	_, ok := set[w]
	return ok
}
