package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vendaflow/backoffice/pkg/client"
)

func newLoginCommand() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = env().GetString("password")
			}
			c, store, err := newClient()
			if err != nil {
				return err
			}
			sess, err := c.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if sess.User != nil {
				fmt.Fprintf(out, "signed in as %s (%s)\n", sess.User.Username, sess.User.Role)
			}
			fmt.Fprintf(out, "session expires at %s\n", sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
			if c.Mode() == client.ModeFrontend {
				fmt.Fprintln(out, "demo session: the API is not being used")
			}
			fmt.Fprintf(out, "state saved to %s\n", store.Path())
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "user name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (env BACKOFFICE_PASSWORD)")
	_ = cmd.MarkFlagRequired("username")
	return withGlobalFlags(cmd)
}

func newLogoutCommand() *cobra.Command {
	return withGlobalFlags(&cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and forget the local token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := newClient()
			if err != nil {
				return err
			}
			if err := c.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	})
}

func newMeCommand() *cobra.Command {
	return withGlobalFlags(&cobra.Command{
		Use:   "me",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := newClient()
			if err != nil {
				return err
			}
			user, src, err := c.Me(cmd.Context())
			if err != nil {
				return explain(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", user.FullName, user.Username)
			fmt.Fprintf(out, "role: %s  tenant: %d\n", user.Role, user.TenantID)
			printSource(out, src)
			return nil
		},
	})
}

func newDashboardCommand() *cobra.Command {
	return withGlobalFlags(&cobra.Command{
		Use:   "dashboard",
		Short: "Show today's figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := newClient()
			if err != nil {
				return err
			}
			summary, src, err := c.Dashboard(cmd.Context())
			if err != nil {
				return explain(err)
			}
			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "products\t%d\n", summary.ProductCount)
			fmt.Fprintf(w, "low stock\t%d\n", summary.LowStockCount)
			fmt.Fprintf(w, "sales today\t%d\n", summary.TodaySalesCount)
			fmt.Fprintf(w, "revenue today\tR$ %s\n", summary.TodayRevenue.StringFixed(2))
			fmt.Fprintf(w, "unread notifications\t%d\n", summary.UnreadNotifications)
			if err := w.Flush(); err != nil {
				return err
			}
			if len(summary.RecentSales) > 0 {
				fmt.Fprintln(out, "\nrecent sales:")
				w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "CODE\tTOTAL\tITEMS\tPAYMENT\tSTATUS")
				for _, s := range summary.RecentSales {
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", deref(s.SaleCode), s.TotalAmount.StringFixed(2), s.TotalItems, s.PaymentMethod, s.Status)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}
			printSource(out, src)
			return nil
		},
	})
}

func newProductsCommand() *cobra.Command {
	var lowStock bool
	var limit int
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List active products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := newClient()
			if err != nil {
				return err
			}
			products, src, err := c.Products(cmd.Context(), lowStock, limit)
			if err != nil {
				return explain(err)
			}
			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tMIN")
			for _, p := range products {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\n", p.ID, p.Name, deref(p.Category), p.Price.StringFixed(2), p.StockQuantity, p.MinStock)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			printSource(out, src)
			return nil
		},
	}
	cmd.Flags().BoolVar(&lowStock, "low-stock", false, "only products at or below their minimum stock")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of products (1-200)")
	return withGlobalFlags(cmd)
}

func newModeCommand() *cobra.Command {
	return withGlobalFlags(&cobra.Command{
		Use:       "mode [frontend|backend|auto]",
		Short:     "Show or persist the data mode",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(client.ModeFrontend), string(client.ModeBackend), string(client.ModeAuto)},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				c, _, err := newClient()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, c.Mode())
				return nil
			}

			mode, err := client.ParseMode(args[0])
			if err != nil {
				return err
			}
			store := client.NewFileStore(statePath(env()))
			st, err := store.Load()
			if err != nil {
				return err
			}
			st.Mode = mode
			if err := store.Save(st); err != nil {
				return err
			}
			fmt.Fprintf(out, "mode set to %s\n", mode)
			return nil
		},
	})
}

func printSource(w io.Writer, src client.Source) {
	switch src {
	case client.SourceDemo:
		fmt.Fprintln(w, "\n(demo data: the API is not being used)")
	case client.SourceLocal:
		fmt.Fprintln(w, "\n(local data)")
	case client.SourceCache:
		fmt.Fprintln(w, "\n(cached)")
	}
}

func explain(err error) error {
	if client.IsUnauthorized(err) {
		return errors.New("not signed in or session expired; run \"backoffice login\"")
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && len(apiErr.Details) > 0 {
		return fmt.Errorf("%w (%s)", err, strings.TrimSpace(string(apiErr.Details)))
	}
	return err
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
