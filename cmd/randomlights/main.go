/*
randomlights flashes random colours on every rod of a running simulator (or
the sculpture itself).

	randomlights [-addr 127.0.0.1:7654] [-interval 20ms] [rods] [times]
*/
package main

import (
	"context"
	"flag"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spaghettifunk/lumina/engine/core"
	"github.com/spaghettifunk/lumina/engine/network"
)

func main() {
	addr := flag.String("addr", network.DEFAULT_ADDRESS, "update server address")
	interval := flag.Duration("interval", 20*time.Millisecond, "delay between updates")
	flag.Parse()

	rods, err := intArg(0, 14)
	if err != nil {
		core.LogFatal("rods: %s", err)
	}
	times, err := intArg(1, 100)
	if err != nil {
		core.LogFatal("times: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client, err := network.Dial(ctx, *addr, rods)
	if err != nil {
		core.LogFatal("%s", err)
	}
	defer client.Close()

	if err := flashRandomly(ctx, client, times, *interval); err != nil && ctx.Err() == nil {
		core.LogFatal("%s", err)
	}
}

// flashRandomly sets every rod to a random colour times times, sleeping interval between updates.
func flashRandomly(ctx context.Context, client *network.Client, times int, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	colours := make([]network.RGB, client.Len())
	for i := 0; i < times; i++ {
		for j := range colours {
			colours[j] = network.RGB{R: randByte(), G: randByte(), B: randByte()}
		}
		if err := client.SetAll(colours); err != nil {
			return err
		}
		if err := client.Update(false); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

func randByte() uint8 {
	return uint8(rand.IntN(256))
}

func intArg(i, fallback int) (int, error) {
	if flag.NArg() <= i {
		return fallback, nil
	}
	return strconv.Atoi(flag.Arg(i))
}
