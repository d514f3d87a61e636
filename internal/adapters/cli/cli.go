package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"smart-erp/internal/adapters/web"
	"smart-erp/internal/app"
	"smart-erp/internal/config"
	"smart-erp/internal/logger"
	"smart-erp/internal/persist"
	"smart-erp/internal/store"
)

var version = "1.0.0"

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "erp",
		Short:   "Ledger and inventory management for a small trading business",
		Version: version,
		Long: `erp manages parties, products, invoices, treasury transactions, and
account transfers, and computes balances, statements, and period reports
from them. State lives in a local SQLite file by default; set
DATABASE_URL to use Postgres instead.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "Path to a TOML config file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newTotalsCmd())
	root.AddCommand(newStatementCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newStockCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newSchemaCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newService opens storage per the config and returns a loaded service,
// the resolved config, and a cleanup func.
func newService(cmd *cobra.Command) (*app.Service, config.Config, func(), error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, config.Config{}, nil, err
	}

	ctx := cmd.Context()
	ps, err := persist.Open(ctx, cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return nil, config.Config{}, nil, fmt.Errorf("open storage: %w", err)
	}
	svc := app.NewService(store.New(), ps)
	if err := svc.LoadState(ctx); err != nil {
		ps.Close()
		return nil, config.Config{}, nil, err
	}
	svc.EnableAutosave(ctx)
	return svc, cfg, func() { ps.Close() }, nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")

			svc, cfg, cleanup, err := newService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if addr == "" {
				addr = cfg.Server.Addr
			}

			log := logger.WithComponent("serve")
			srv := &http.Server{
				Addr:              addr,
				Handler:           web.NewHandler(svc, os.Getenv("ALLOWED_ORIGINS")),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				log.Info().Str("addr", addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error().Err(err).Msg("server")
					stop()
				}
			}()

			<-ctx.Done()
			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides config)")
	return cmd
}

func newTotalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Print the dashboard aggregates",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := newService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			t := svc.GetTotals(cmd.Context())
			fmt.Println()
			fmt.Println(strings.Repeat("=", 44))
			fmt.Printf("  %-24s %15s\n", "Customer debt", t.CustomerDebt.StringFixed(2))
			fmt.Printf("  %-24s %15s\n", "Supplier debt", t.SupplierDebt.StringFixed(2))
			fmt.Printf("  %-24s %15s\n", "Inventory value", t.InventoryValue.StringFixed(2))
			fmt.Println(strings.Repeat("=", 44))
			return nil
		},
	}
}

func newStatementCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statement <party-code>",
		Short: "Print the running-balance statement for one party",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := newService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := svc.GetStatement(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printStatement(result)
			return nil
		},
	}
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the period rollup for an inclusive date window",
		Example: `  erp report --from 2026-01-01 --to 2026-01-31
  erp report --to 2026-06-30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")

			svc, _, cleanup, err := newService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			r, err := svc.GetReport(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Println(strings.Repeat("=", 48))
			fmt.Printf("  REPORT  %s .. %s\n", orAny(r.From), orAny(r.To))
			fmt.Println(strings.Repeat("-", 48))
			fmt.Printf("  %-26s %15s\n", "Sales", r.TotalSales.StringFixed(2))
			fmt.Printf("  %-26s %15s\n", "Purchases", r.TotalPurchases.StringFixed(2))
			fmt.Printf("  %-26s %15s\n", "Sale returns", r.TotalSaleReturns.StringFixed(2))
			fmt.Printf("  %-26s %15s\n", "Purchase returns", r.TotalPurchaseReturns.StringFixed(2))
			fmt.Printf("  %-26s %15s\n", "Cash in", r.CashIn.StringFixed(2))
			fmt.Printf("  %-26s %15s\n", "Cash out", r.CashOut.StringFixed(2))
			fmt.Println(strings.Repeat("-", 48))
			fmt.Printf("  %-26s %15s\n", "Net profit", r.NetProfit.StringFixed(2))
			fmt.Println(strings.Repeat("=", 48))
			return nil
		},
	}
	cmd.Flags().String("from", "", "Window start (YYYY-MM-DD, empty for open)")
	cmd.Flags().String("to", "", "Window end (YYYY-MM-DD, empty for open)")
	return cmd
}

func newStockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stock",
		Short: "Print computed stock levels per product",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := newService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.GetStockLevels(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Println(strings.Repeat("=", 70))
			fmt.Printf("  %-10s %-28s %8s %15s\n", "CODE", "NAME", "QTY", "VALUE")
			fmt.Println(strings.Repeat("-", 70))
			for _, l := range res.Levels {
				mark := ""
				if l.Negative {
					mark = " !"
				}
				fmt.Printf("  %-10s %-28s %8d %15s%s\n",
					l.Product.Code, l.Product.Name, l.Quantity, l.Value.StringFixed(2), mark)
			}
			fmt.Println(strings.Repeat("=", 70))
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write a full JSON backup (dated filename if omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := newService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			res, err := svc.ExportBackup(cmd.Context(), path)
			if err != nil {
				return err
			}
			fmt.Println("Backup written to", res.Path)
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all state from a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := newService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.ImportBackup(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Backup imported from", args[0])
			return nil
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the backup document",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := persist.SnapshotSchema()
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func printStatement(result *app.StatementResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 92))
	fmt.Printf("  STATEMENT  %s — %s\n", result.Party.Code, result.Party.Name)
	fmt.Printf("  Opening balance: %s\n", result.Party.InitialBalance.StringFixed(2))
	fmt.Println(strings.Repeat("=", 92))
	fmt.Printf("  %-12s %-40s %10s %10s %12s\n", "DATE", "DESCRIPTION", "DEBIT", "CREDIT", "BALANCE")
	fmt.Println(strings.Repeat("-", 92))
	for _, l := range result.Lines {
		fmt.Printf("  %-12s %-40s %10s %10s %12s\n",
			l.Date, truncate(l.Description, 40),
			l.Debit.StringFixed(2), l.Credit.StringFixed(2), l.Balance.StringFixed(2))
	}
	fmt.Println(strings.Repeat("-", 92))
	fmt.Printf("  %-53s %22s\n", "CLOSING BALANCE", result.Balance.StringFixed(2))
	fmt.Println(strings.Repeat("=", 92))
}

// truncate shortens s to at most n display runes. Byte slicing would split
// multibyte characters; descriptions are routinely non-ASCII.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func orAny(s string) string {
	if s == "" {
		return "(open)"
	}
	return s
}
