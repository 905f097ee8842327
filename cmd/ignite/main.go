// Command ignite is a small CLI for exercising an ignite store directly
// against a data directory, without embedding it in a Go program.
//
// Usage:
//
//	ignite open --dir <path>
//	ignite set --dir <path> <key> <value>
//	ignite get --dir <path> <key>
//	ignite delete --dir <path> <key>
//	ignite keys --dir <path>
//	ignite merge --dir <path>
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/iamNilotpal/ignite/pkg/ignite"
	"github.com/iamNilotpal/ignite/pkg/options"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New(usage())
	}

	switch args[0] {
	case "open":
		return cmdOpen(args[1:])
	case "set":
		return cmdSet(args[1:])
	case "get":
		return cmdGet(args[1:])
	case "delete", "rm":
		return cmdDelete(args[1:])
	case "keys":
		return cmdKeys(args[1:])
	case "merge":
		return cmdMerge(args[1:])
	case "help", "-h", "--help":
		fmt.Println(usage())
		return nil
	default:
		return fmt.Errorf("unknown command: %s\n%s", args[0], usage())
	}
}

func usage() string {
	return `Usage: ignite <command> --dir <path> [args]

Commands:
  open --dir <path>                 Open (and recover) a store, then close it
  set --dir <path> <key> <value>    Store a string value under key
  get --dir <path> <key>            Print the string value stored under key
  delete --dir <path> <key>         Remove key
  keys --dir <path>                 List every live key
  merge --dir <path>                Run compaction`
}

func openStore(flagSet *flag.FlagSet, args []string) (*ignite.Instance, []string, error) {
	dir := flagSet.String("dir", "", "data directory (required)")
	if err := flagSet.Parse(args); err != nil {
		return nil, nil, err
	}
	if *dir == "" {
		return nil, nil, fmt.Errorf("--dir is required")
	}

	inst, err := ignite.NewInstance(context.Background(), "ignite-cli", options.WithDataDir(*dir))
	if err != nil {
		return nil, nil, err
	}

	return inst, flagSet.Args(), nil
}

func cmdOpen(args []string) error {
	flagSet := flag.NewFlagSet("open", flag.ContinueOnError)
	inst, _, err := openStore(flagSet, args)
	if err != nil {
		return err
	}
	return inst.Close(context.Background())
}

func cmdSet(args []string) error {
	flagSet := flag.NewFlagSet("set", flag.ContinueOnError)
	inst, rest, err := openStore(flagSet, args)
	if err != nil {
		return err
	}
	defer inst.Close(context.Background())

	if len(rest) < 2 {
		return fmt.Errorf("usage: ignite set --dir <path> <key> <value>")
	}
	return inst.Insert(rest[0], rest[1])
}

func cmdGet(args []string) error {
	flagSet := flag.NewFlagSet("get", flag.ContinueOnError)
	inst, rest, err := openStore(flagSet, args)
	if err != nil {
		return err
	}
	defer inst.Close(context.Background())

	if len(rest) < 1 {
		return fmt.Errorf("usage: ignite get --dir <path> <key>")
	}

	var value string
	found, err := inst.Get(rest[0], &value)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("key not found: %s", rest[0])
	}

	fmt.Println(value)
	return nil
}

func cmdDelete(args []string) error {
	flagSet := flag.NewFlagSet("delete", flag.ContinueOnError)
	inst, rest, err := openStore(flagSet, args)
	if err != nil {
		return err
	}
	defer inst.Close(context.Background())

	if len(rest) < 1 {
		return fmt.Errorf("usage: ignite delete --dir <path> <key>")
	}
	return inst.Remove(rest[0])
}

func cmdKeys(args []string) error {
	flagSet := flag.NewFlagSet("keys", flag.ContinueOnError)
	inst, _, err := openStore(flagSet, args)
	if err != nil {
		return err
	}
	defer inst.Close(context.Background())

	for _, key := range inst.Keys() {
		fmt.Println(key)
	}
	return nil
}

func cmdMerge(args []string) error {
	flagSet := flag.NewFlagSet("merge", flag.ContinueOnError)
	inst, _, err := openStore(flagSet, args)
	if err != nil {
		return err
	}
	defer inst.Close(context.Background())

	return inst.Merge()
}
