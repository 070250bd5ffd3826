// Package main выводит числа по одному с паузой между ними.
//
//	printdelay [-delay 1s] [-json '[1,2,3]'] [numbers...]
//
// Без аргументов выводятся числа 1..5. Пауза по умолчанию берётся из PRINTER_DELAY.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/magabrotheeeer/users-table/internal/lib/logger"
	"github.com/magabrotheeeer/users-table/internal/printer"
)

type env struct {
	Env   string        `env:"ENV" env-default:"prod"`
	Delay time.Duration `env:"PRINTER_DELAY" env-default:"1s"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	fmt.Println("Processing complete")
}

func run() error {
	var e env
	if err := cleanenv.ReadEnv(&e); err != nil {
		return err
	}

	delay := flag.Duration("delay", e.Delay, "pause between numbers")
	jsonInput := flag.String("json", "", "JSON array of numbers")
	flag.Parse()

	nums, err := input(*jsonInput, flag.Args())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.NewWithWriter(e.Env, os.Stderr)
	return printer.New(os.Stdout, *delay, log).Process(ctx, nums)
}

func input(jsonInput string, args []string) ([]float64, error) {
	switch {
	case jsonInput != "":
		return printer.ParseJSON([]byte(jsonInput))
	case len(args) > 0:
		return printer.ParseArgs(args)
	default:
		return printer.Default(), nil
	}
}
