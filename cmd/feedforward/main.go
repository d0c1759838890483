// Package main provides the feedforward CLI: it trains a network on a
// two-input logic gate and prints the learned truth table.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/born-ml/feedforward/internal/parallel"
	"github.com/born-ml/feedforward/network"
	"github.com/born-ml/feedforward/nn"
	"github.com/born-ml/feedforward/optim"
)

const version = "v0.1.0-dev"

type config struct {
	gate          string
	lr            float64
	momentum      float64
	target        float64
	policy        string
	maxIterations int
	iterations    int
	random        bool
	hidden        string
	hiddenSize    int
	seed          uint64
	logEvery      int
	jobs          int
	verbose       bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "feedforward:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 && args[0] == "version" {
		fmt.Fprintf(stdout, "feedforward %s\n", version)
		return nil
	}

	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	gates, err := selectGates(cfg.gate)
	if err != nil {
		return err
	}

	// Each gate trains its own network; tables print in gate order.
	outputs := make([]bytes.Buffer, len(gates))
	err = parallel.For(ctx, len(gates), func(ctx context.Context, i int) error {
		if err := trainGate(ctx, cfg, gates[i], logger, &outputs[i]); err != nil {
			return fmt.Errorf("%s: %w", gates[i], err)
		}
		return nil
	}, parallel.Config{Enabled: cfg.jobs > 1, NumWorkers: cfg.jobs})
	for i := range outputs {
		if _, werr := stdout.Write(outputs[i].Bytes()); werr != nil {
			return werr
		}
	}
	return err
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("feedforward", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.gate, "gate", "all", "Logic gate to learn (or, and, xor, nor, xnor, nand, all)")
	fs.Float64Var(&cfg.lr, "lr", 0.8, "Learning rate")
	fs.Float64Var(&cfg.momentum, "momentum", 0.2, "Momentum (0 for plain gradient descent)")
	fs.Float64Var(&cfg.target, "target", 0.004, "Target error")
	fs.StringVar(&cfg.policy, "policy", "individual", "Convergence policy (individual, individual-weighted, total)")
	fs.IntVar(&cfg.maxIterations, "max", 10_000_000, "Give up after this many iterations (0 = never)")
	fs.IntVar(&cfg.iterations, "iterations", 0, "Train a fixed number of iterations instead of to the target")
	fs.BoolVar(&cfg.random, "random", false, "Sample training rows at random")
	fs.StringVar(&cfg.hidden, "hidden", "sine", "Hidden layer activation")
	fs.IntVar(&cfg.hiddenSize, "hidden-size", 2, "Hidden layer neurons")
	fs.Uint64Var(&cfg.seed, "seed", 0, "Weight initialization seed (0 = time based)")
	fs.IntVar(&cfg.logEvery, "log-every", 1000, "Log the cost every N iterations (0 = never)")
	fs.IntVar(&cfg.jobs, "jobs", parallel.DefaultConfig().NumWorkers, "Gates trained concurrently")
	fs.BoolVar(&cfg.verbose, "v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.hiddenSize <= 0 {
		return cfg, fmt.Errorf("hidden-size must be positive, got %d", cfg.hiddenSize)
	}
	return cfg, nil
}

func selectGates(name string) ([]network.Gate, error) {
	if strings.EqualFold(name, "all") {
		return []network.Gate{network.OR, network.AND, network.XOR, network.NOR, network.XNOR, network.NAND}, nil
	}
	g, err := network.ParseGate(name)
	if err != nil {
		return nil, err
	}
	return []network.Gate{g}, nil
}

func newOptimizer(cfg config) (optim.Optimizer, error) {
	if cfg.momentum == 0 {
		opt := optim.NewStaticLearningRate(optim.StaticConfig{LR: cfg.lr})
		return opt, opt.Validate()
	}
	opt := optim.NewMomentum(optim.MomentumConfig{LR: cfg.lr, Momentum: cfg.momentum})
	return opt, opt.Validate()
}

func trainGate(ctx context.Context, cfg config, gate network.Gate, logger *slog.Logger, stdout io.Writer) error {
	hidden, err := nn.ActivationByName(cfg.hidden)
	if err != nil {
		return err
	}
	opt, err := newOptimizer(cfg)
	if err != nil {
		return err
	}

	opts := []network.Option{network.WithLogger(logger.With("gate", gate.String()))}
	if cfg.seed != 0 {
		opts = append(opts, network.WithSeed(cfg.seed))
	}
	net, err := network.New(2, nn.DiffSquared{}, opt, []nn.Layer{
		nn.NewDense(hidden, cfg.hiddenSize, true),
		nn.NewDense(nn.Logistic{}, 1, true),
	}, opts...)
	if err != nil {
		return err
	}

	if cfg.logEvery > 0 {
		net.OnCostChanged(func(_, cost float64, iteration int) {
			if iteration%cfg.logEvery == 0 {
				logger.Info("training", "gate", gate.String(), "iteration", iteration, "cost", cost)
			}
		})
	}

	samples := gate.Samples()
	var res network.Result
	if cfg.iterations > 0 {
		res, err = net.Train(ctx, cfg.iterations, samples)
	} else {
		var policy network.Policy
		policy, err = network.ParsePolicy(cfg.policy)
		if err != nil {
			return err
		}
		res, err = net.TrainToTarget(ctx, network.TargetConfig{
			TargetError:    cfg.target,
			Policy:         policy,
			RandomSampling: cfg.random,
			MaxIterations:  cfg.maxIterations,
		}, samples)
	}
	if err != nil && !errors.Is(err, network.ErrNotConverged) {
		return err
	}
	if err != nil {
		logger.Warn("did not converge", "gate", gate.String(), "iterations", res.Iterations, "cost", res.Cost)
	}

	fmt.Fprintf(stdout, "%s after %d iterations (confidence %.2f%%)\n",
		gate, net.TotalIterationsTrained(), net.ConfidencePercentage())
	for _, s := range samples {
		out, err := net.Calculate(s.Input)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "  %v %v -> %.4f (want %v)\n", s.Input[0], s.Input[1], out[0], s.Output[0])
	}
	return nil
}
