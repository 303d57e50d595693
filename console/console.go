// Package console is the interactive menu over a runway session.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"runway/models"
	"runway/services/runway"
	"runway/utils"

	"github.com/fatih/color"
)

const menu = `1. Request a landing time
2. Simulate a plane landing
3. Get Maximum Landing Time
4. Get Minimum Landing Time
5. Get Next Landing Time
6. Search for Landing Time Reservation
7. Check Rank
8. Display the Reservations
9. Exit
`

const conflictMessage = "Requested time conflicts with existing reservations, does not meet the k-minute criteria, or is in the past."

// Console reads whitespace-separated answers from in and writes prompts to out.
type Console struct {
	in   *bufio.Scanner
	out  io.Writer
	ok   *color.Color
	warn *color.Color
}

type Option func(*Console)

// WithColor forces colored output on or off.
func WithColor(enabled bool) Option {
	return func(c *Console) {
		if enabled {
			c.ok.EnableColor()
			c.warn.EnableColor()
		} else {
			c.ok.DisableColor()
			c.warn.DisableColor()
		}
	}
}

func New(in io.Reader, out io.Writer, opts ...Option) *Console {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	c := &Console{
		in:   sc,
		out:  out,
		ok:   color.New(color.FgGreen),
		warn: color.New(color.FgYellow),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// next returns the next answer, or io.EOF once input is exhausted.
func (c *Console) next() (string, error) {
	if c.in.Scan() {
		return c.in.Text(), nil
	}
	if err := c.in.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (c *Console) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	return c.next()
}

// PromptK asks for the minimum separation until a non-negative integer is given.
func (c *Console) PromptK() (int, error) {
	for {
		answer, err := c.ask("Enter the value of k: ")
		if err != nil {
			return 0, err
		}
		k, err := strconv.Atoi(answer)
		if err == nil && k >= 0 {
			return k, nil
		}
		c.warn.Fprintln(c.out, "k must be a non-negative whole number of minutes.")
	}
}

// Run drives svc from the menu until "9. Exit" or end of input.
func (c *Console) Run(ctx context.Context, svc runway.RunwayService) error {
	for {
		fmt.Fprint(c.out, menu)
		answer, err := c.ask("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		choice, convErr := strconv.Atoi(answer)
		if convErr != nil {
			choice = 0
		}

		switch choice {
		case 1:
			err = c.request(ctx, svc)
		case 2:
			c.land(ctx, svc)
		case 3:
			c.peek("Maximum Landing Time: ", svc.PeekMax)
		case 4:
			c.peek("Minimum Landing Time: ", svc.PeekMin)
		case 5:
			c.peek("Next Landing Time: ", svc.NextLanding)
		case 6:
			err = c.search(svc)
		case 7:
			err = c.rank(svc)
		case 8:
			c.display(svc)
		case 9:
			fmt.Fprintln(c.out, "Exiting program.")
			return nil
		default:
			c.warn.Fprintln(c.out, "Invalid choice. Please try again.")
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// askTime reads one "HH:MM" answer. ok is false when the answer was rejected
// and the message already printed.
func (c *Console) askTime(prompt string) (minute int, ok bool, err error) {
	answer, err := c.ask(prompt)
	if err != nil {
		return 0, false, err
	}
	minute, perr := utils.ParseTimeOfDay(answer)
	switch {
	case errors.Is(perr, utils.ErrInvalidTimeFormat):
		c.warn.Fprintln(c.out, "Invalid time format.")
		return 0, false, nil
	case errors.Is(perr, utils.ErrInvalidTimeValue):
		c.warn.Fprintln(c.out, "Invalid time value.")
		return 0, false, nil
	}
	return minute, true, nil
}

func (c *Console) request(ctx context.Context, svc runway.RunwayService) error {
	minute, ok, err := c.askTime("Enter the requested landing time (in 24-hour format, e.g., 21:32): ")
	if err != nil || !ok {
		return err
	}
	if _, err := svc.Request(ctx, minute); err != nil {
		if errors.Is(err, runway.ErrConflict) {
			c.warn.Fprintln(c.out, conflictMessage)
			return nil
		}
		return err
	}
	c.ok.Fprintln(c.out, "Reservation successfully made.")
	return nil
}

func (c *Console) land(ctx context.Context, svc runway.RunwayService) {
	res, err := svc.Land(ctx)
	if err != nil {
		c.warn.Fprintln(c.out, "No reservations to land.")
		return
	}
	c.ok.Fprintf(c.out, "Plane landed successfully at time %s.\n", res.Time)
}

func (c *Console) peek(label string, fn func() (models.Reservation, error)) {
	res, err := fn()
	if err != nil {
		c.warn.Fprintln(c.out, "No reservations made.")
		return
	}
	fmt.Fprintf(c.out, "%s%s\n", label, res.Time)
}

func (c *Console) search(svc runway.RunwayService) error {
	minute, ok, err := c.askTime("Enter the landing time to search (in 24-hour format, e.g., 21:32): ")
	if err != nil || !ok {
		return err
	}
	if svc.Contains(minute) {
		fmt.Fprintln(c.out, "Reservation already made for the requested landing time.")
	} else {
		fmt.Fprintln(c.out, "No reservation at this landing time.")
	}
	return nil
}

func (c *Console) rank(svc runway.RunwayService) error {
	minute, ok, err := c.askTime("Enter the time to get the reservation rank (in 24-hour format, e.g., 21:32): ")
	if err != nil || !ok {
		return err
	}
	n, err := svc.RankBefore(minute)
	if err != nil {
		c.warn.Fprintln(c.out, "No reservation made at this time.")
		return nil
	}
	fmt.Fprintf(c.out, "Number of reservations before %s: %d\n", utils.FormatTimeOfDay(minute), n)
	return nil
}

func (c *Console) display(svc runway.RunwayService) {
	list := svc.List()
	times := make([]string, 0, len(list.Reservations))
	for _, r := range list.Reservations {
		times = append(times, r.Time)
	}
	fmt.Fprintf(c.out, "Landing times reserved at the moment: %s\n", strings.Join(times, " "))
}
