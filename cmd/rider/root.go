package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpin "riderdispatch/internal/adapters/in/http"
	"riderdispatch/internal/adapters/out/apiclient"
	"riderdispatch/internal/adapters/out/geo"
	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"
	"riderdispatch/internal/rider"

	"github.com/spf13/cobra"
)

// cli carries what every subcommand needs once flags are resolved.
type cli struct {
	config cliConfig
	logger *slog.Logger
	out    io.Writer
}

func newRootCommand() *cobra.Command {
	app := &cli{}

	root := &cobra.Command{
		Use:          "rider",
		Short:        "Terminal client for delivery riders",
		Long:         `rider receives delivery requests, accepts or declines them and walks an order through pickup and delivery.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v, err := newViper(cmd.Flags())
			if err != nil {
				return err
			}
			if app.config, err = loadConfig(v); err != nil {
				return err
			}

			level := slog.LevelInfo
			if app.config.Verbose {
				level = slog.LevelDebug
			}
			app.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			app.out = cmd.OutOrStdout()
			return nil
		},
	}
	registerFlags(root.PersistentFlags())

	root.AddCommand(
		newRunCommand(app),
		newAcceptCommand(app),
		newDeclineCommand(app),
		newAdvanceCommand(app),
		newOnlineCommand(app, true),
		newOnlineCommand(app, false),
		newTokenCommand(app),
	)
	return root
}

func newRunCommand(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start an interactive rider session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			riderID, client, err := app.riderClient()
			if err != nil {
				return err
			}
			locator, err := app.geolocator()
			if err != nil {
				return err
			}

			presenter := newTerminalPresenter(app.out)
			session, err := rider.NewSession(rider.Config{
				RiderID:      riderID,
				PollInterval: app.config.PollInterval,
			}, client, locator, bellAlerter{out: app.out}, presenter, app.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c := newConsole(session, presenter, app.out)
			fmt.Fprintln(app.out, "Type 'help' for commands.")
			return session.Run(ctx, func(ctx context.Context) error {
				return c.Loop(ctx, cmd.InOrStdin())
			})
		},
	}
}

func newAcceptCommand(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "accept NOTIFICATION_ID",
		Short: "Accept a delivery request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			riderID, client, err := app.riderClient()
			if err != nil {
				return err
			}
			notificationID, err := kernel.UUIDFromString(args[0])
			if err != nil {
				return err
			}

			profile, err := client.AcceptNotification(cmd.Context(), riderID, notificationID)
			if err != nil {
				return err
			}
			if profile.CurrentOrderID != nil {
				fmt.Fprintf(app.out, "Accepted. Current order: %s\n", profile.CurrentOrderID)
			}
			return nil
		},
	}
}

func newDeclineCommand(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "decline NOTIFICATION_ID",
		Short: "Decline a delivery request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			riderID, client, err := app.riderClient()
			if err != nil {
				return err
			}
			notificationID, err := kernel.UUIDFromString(args[0])
			if err != nil {
				return err
			}

			if err = client.DeclineNotification(cmd.Context(), riderID, notificationID); err != nil {
				return err
			}
			fmt.Fprintln(app.out, "Declined.")
			return nil
		},
	}
}

func newAdvanceCommand(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:       "advance ORDER_ID ACTION",
		Short:     "Report the next delivery step",
		Long:      "ACTION is one of arrive_at_restaurant, confirm_pickup, arrive_at_customer, complete_delivery.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: actionNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.config.requireClient(); err != nil {
				return err
			}
			client, err := app.client()
			if err != nil {
				return err
			}
			orderID, err := kernel.UUIDFromString(args[0])
			if err != nil {
				return err
			}
			action, err := order.ParseAction(args[1])
			if err != nil {
				return err
			}

			o, err := client.AdvanceOrder(cmd.Context(), orderID, action)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Order %s is now %s\n", o.ID, o.Status)
			return nil
		},
	}
}

func newOnlineCommand(app *cli, online bool) *cobra.Command {
	use, short := "online", "Start accepting delivery requests"
	if !online {
		use, short = "offline", "Stop accepting delivery requests"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			riderID, client, err := app.riderClient()
			if err != nil {
				return err
			}

			profile, err := client.SetOnline(cmd.Context(), riderID, online)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "%s is %s\n", profile.Name, onlineLabel(profile.IsOnline))
			return nil
		},
	}
}

func newTokenCommand(app *cli) *cobra.Command {
	var (
		role string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development token signed with --jwt-secret",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			var riderID *kernel.UUID
			if app.config.RiderID != "" {
				id, err := kernel.UUIDFromString(app.config.RiderID)
				if err != nil {
					return err
				}
				riderID = &id
			}

			token, err := httpin.IssueToken(app.config.JWTSecret, riderID, role, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(app.out, token)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", httpin.RoleRider, "token role: rider or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

func (app *cli) client() (*apiclient.Client, error) {
	return apiclient.New(app.config.BaseURL, app.config.Token, app.config.Timeout)
}

func (app *cli) riderClient() (kernel.UUID, *apiclient.Client, error) {
	if err := app.config.requireRider(); err != nil {
		return kernel.UUID{}, nil, err
	}
	riderID, err := kernel.UUIDFromString(app.config.RiderID)
	if err != nil {
		return kernel.UUID{}, nil, err
	}
	client, err := app.client()
	if err != nil {
		return kernel.UUID{}, nil, err
	}
	return riderID, client, nil
}

func (app *cli) geolocator() (*geo.Simulator, error) {
	start := geo.RandomStart()
	if len(app.config.StartPosition) == 2 {
		p, err := kernel.NewGeoPoint(app.config.StartPosition[0], app.config.StartPosition[1])
		if err != nil {
			return nil, err
		}
		start = p
	}

	interval := app.config.LocationInterval
	if interval <= 0 {
		interval = geo.DefaultInterval
	}
	return geo.NewSimulator(start, interval, uint64(time.Now().UnixNano()))
}

func actionNames() []string {
	names := make([]string, 0, len(order.Actions()))
	for _, a := range order.Actions() {
		names = append(names, a.String())
	}
	return names
}

func onlineLabel(online bool) string {
	if online {
		return "online"
	}
	return "offline"
}
