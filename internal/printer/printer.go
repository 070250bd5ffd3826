// Package printer выводит последовательность чисел с паузой между ними.
package printer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"
)

// DefaultDelay пауза между выводом чисел по умолчанию.
const DefaultDelay = time.Second

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInterrupted  = errors.New("processing interrupted")
)

// Default входные данные, если пользователь ничего не передал.
func Default() []float64 {
	return []float64{1, 2, 3, 4, 5}
}

// ParseJSON разбирает JSON-массив чисел. Любой элемент, не являющийся числом,
// делает весь ввод недействительным.
func ParseJSON(data []byte) ([]float64, error) {
	const op = "printer.ParseJSON"

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%s: %w: trailing data after array", op, ErrInvalidInput)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w: expected an array of numbers", op, ErrInvalidInput)
	}

	nums := make([]float64, 0, len(items))
	for i, item := range items {
		n, ok := item.(json.Number)
		if !ok {
			return nil, fmt.Errorf("%s: %w: element %d is not a number", op, ErrInvalidInput, i)
		}
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("%s: %w: element %d: %w", op, ErrInvalidInput, i, err)
		}
		nums = append(nums, f)
	}
	return nums, nil
}

// ParseArgs разбирает числа из аргументов командной строки.
func ParseArgs(args []string) ([]float64, error) {
	const op = "printer.ParseArgs"

	nums := make([]float64, 0, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: argument %d (%q) is not a number", op, ErrInvalidInput, i, a)
		}
		nums = append(nums, f)
	}
	return nums, nil
}

// Printer пишет каждое число на отдельной строке в Out.
type Printer struct {
	Delay time.Duration
	Out   io.Writer
	log   *slog.Logger
}

func New(out io.Writer, delay time.Duration, log *slog.Logger) *Printer {
	if delay < 0 {
		delay = 0
	}
	return &Printer{
		Delay: delay,
		Out:   out,
		log:   log,
	}
}

// Process выводит числа по порядку, делая паузу Delay между соседними числами.
// После последнего числа паузы нет. Отмена ctx прерывает вывод с ErrInterrupted.
func (p *Printer) Process(ctx context.Context, nums []float64) error {
	const op = "printer.Process"

	for i, n := range nums {
		if i > 0 && p.Delay > 0 {
			timer := time.NewTimer(p.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("%s: %w: %w", op, ErrInterrupted, ctx.Err())
			case <-timer.C:
			}
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w: %w", op, ErrInterrupted, err)
		}
		if _, err := fmt.Fprintf(p.Out, "%v\n", n); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if p.log != nil {
			p.log.Debug("number printed", slog.Int("index", i), slog.Float64("value", n))
		}
	}
	return nil
}
