package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"riderdispatch/internal/rider"
)

// terminalPresenter prints session changes as they happen.
type terminalPresenter struct {
	mu  sync.Mutex
	out io.Writer
}

func newTerminalPresenter(out io.Writer) *terminalPresenter {
	return &terminalPresenter{out: out}
}

func (p *terminalPresenter) ShowNotification(n rider.Notification) {
	p.printf("\nNew delivery request %s\n  %s -> %s\n  total %s\n  'accept' or 'decline'\n",
		n.ID, n.RestaurantName, n.CustomerAddress, formatMoney(n.Total))
}

func (p *terminalPresenter) ClearNotification() {
	p.printf("Request closed.\n")
}

func (p *terminalPresenter) ShowOrder(o *rider.Order) {
	if o == nil {
		p.printf("No active delivery.\n")
		return
	}

	next := "none"
	if a, ok := o.Status.NextAction(); ok {
		next = a.String()
	}
	p.printf("Order %s [%s]\n  %s -> %s\n  items: %s\n  total %s\n  next: %s\n",
		o.ID, o.Status, o.RestaurantName, o.DeliveryAddress,
		strings.Join(o.Items, ", "), formatMoney(o.Total), next)
}

func (p *terminalPresenter) Notice(message string) {
	p.printf("! %s\n", message)
}

func (p *terminalPresenter) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

// bellAlerter rings the terminal bell.
type bellAlerter struct {
	out io.Writer
}

func (a bellAlerter) Alert(_ context.Context) error {
	_, err := io.WriteString(a.out, "\a")
	return err
}

// formatMoney renders minor units, 350 -> 3.50.
func formatMoney(minor int64) string {
	sign := ""
	if minor < 0 {
		sign, minor = "-", -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
