package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"riderdispatch/internal/rider"
)

var errNothingSelected = errors.New("no delivery request is waiting for a decision")

const consoleHelp = `Commands:
  accept     accept the shown delivery request
  decline    decline the shown delivery request
  next       report the next delivery step
  online     start accepting requests
  offline    stop accepting requests
  status     show rider, order and location
  refresh    reload everything
  quit       leave`

// console turns input lines into session calls.
type console struct {
	session   *rider.Session
	presenter rider.Presenter
	out       io.Writer
}

func newConsole(session *rider.Session, presenter rider.Presenter, out io.Writer) *console {
	return &console{session: session, presenter: presenter, out: out}
}

// Loop reads commands until quit, end of input or ctx is done.
func (c *console) Loop(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := c.Handle(ctx, line)
			if quit {
				return nil
			}
			if err != nil {
				c.presenter.Notice(err.Error())
			}
		}
	}
}

// Handle runs one command line.
func (c *console) Handle(ctx context.Context, line string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(c.out, consoleHelp)
		return false, nil
	case "accept":
		n, ok := c.session.Decisions().Selected()
		if !ok {
			return false, errNothingSelected
		}
		return false, c.session.Accept(ctx, n.ID)
	case "decline":
		n, ok := c.session.Decisions().Selected()
		if !ok {
			return false, errNothingSelected
		}
		return false, c.session.Decline(ctx, n.ID)
	case "next":
		o, ok := c.session.Tracker().Current()
		if !ok {
			return false, rider.ErrNoActiveOrder
		}
		action, ok := o.Status.NextAction()
		if !ok {
			return false, rider.ErrActionNotAvailable
		}
		return false, c.session.Advance(ctx, action)
	case "online":
		return false, c.session.SetOnline(ctx, true)
	case "offline":
		return false, c.session.SetOnline(ctx, false)
	case "refresh":
		return false, c.session.Sync(ctx)
	case "status":
		c.printStatus()
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %q, type 'help'", line)
	}
}

func (c *console) printStatus() {
	profile := c.session.Profile()
	fmt.Fprintf(c.out, "%s is %s, %d deliveries\n", profile.Name, onlineLabel(c.session.Online()), profile.TotalDeliveries)

	if o, ok := c.session.Tracker().Current(); ok {
		c.presenter.ShowOrder(&o)
	} else {
		fmt.Fprintln(c.out, "No active delivery.")
	}

	fmt.Fprintf(c.out, "%d pending request(s)\n", len(c.session.Feed().Pending()))

	if pos, ok := c.session.Location().Latest(); ok {
		fmt.Fprintf(c.out, "Location %s (±%.0fm)\n", pos.Point, pos.Accuracy)
	}
}
