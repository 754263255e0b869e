// Command feedgen emits a synthetic CSV operation stream on stdout, for
// exercising cmd/limitbook end-to-end without a hand-written fixture
// file. The order-construction flags are adapted from the teacher's
// cmd/client/client.go (ticker/side/price/qty); the recent-order-id
// tracking for generating valid cancels is adapted from
// ejyy-femto_go's main.go ring-buffer-of-recent-ids benchmark driver.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
)

const recentIDBufferSize = 256

func main() {
	owner := flag.Uint64("owner", 1, "user id placing every order")
	ticker := flag.String("ticker", "IBM", "symbol to generate")
	count := flag.Int("orders", 1000, "number of operations to emit, creates and cancels together")
	minPrice := flag.Uint64("min-price", 90, "minimum limit price")
	maxPrice := flag.Uint64("max-price", 110, "maximum limit price")
	maxQty := flag.Uint64("max-qty", 100, "maximum order quantity")
	cancelRate := flag.Float64("cancel-rate", 0.1, "fraction of operations that are cancels instead of creates")
	seed := flag.Int64("seed", 1, "deterministic PRNG seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	var recentIDs [recentIDBufferSize]uint64
	recentCount := 0
	var nextOrderID uint64 = 1

	priceSpread := *maxPrice - *minPrice + 1

	for i := 0; i < *count; i++ {
		if recentCount > 0 && rng.Float64() < *cancelRate {
			idx := rng.Intn(min(recentCount, recentIDBufferSize))
			fmt.Fprintf(out, "C,%d,%d\n", *owner, recentIDs[idx])
			continue
		}

		side := "B"
		if rng.Intn(2) == 0 {
			side = "S"
		}
		price := *minPrice + uint64(rng.Int63n(int64(priceSpread)))
		qty := 1 + uint64(rng.Int63n(int64(*maxQty)))

		fmt.Fprintf(out, "N,%d,%s,%d,%d,%s,%d\n", *owner, *ticker, price, qty, side, nextOrderID)

		recentIDs[recentCount%recentIDBufferSize] = nextOrderID
		recentCount++
		nextOrderID++
	}
}
