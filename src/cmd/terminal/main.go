package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quantfx/fxterm/src/actions"
	"github.com/quantfx/fxterm/src/dbutils"
	"github.com/quantfx/fxterm/src/eventpubsub"
	"github.com/quantfx/fxterm/src/liaison"
	"github.com/quantfx/fxterm/src/logger"
	"github.com/quantfx/fxterm/src/models"
	"github.com/quantfx/fxterm/src/report"
	"github.com/quantfx/fxterm/src/services"
	"github.com/quantfx/fxterm/src/utils"
)

var rootCmd = &cobra.Command{
	Use:   "terminal --config fxterm.yaml",
	Short: "Connect to the trading server and run the desk until interrupted",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		if err := run(configPath); err != nil {
			log.Fatalf("terminal: %v", err)
		}
	},
}

func run(configPath string) error {
	logger.Init()

	if err := utils.InitEnvironmentVariables(); err != nil {
		log.Warnf("terminal: %v", err)
	}

	cfg, err := utils.LoadConfig(configPath)
	if err != nil {
		return err
	}

	store, err := dbutils.OpenHistoryStore(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	desk := services.NewDesk()
	seedDesk(desk, cfg)

	summaries := services.NewSummaryService(desk)
	defer summaries.Stop()

	bars := services.NewBarService(desk, []models.Interval{models.IntervalM1, models.IntervalM5, models.IntervalH1})
	defer bars.Stop()

	session := liaison.NewSession()
	session.OnStatus(func(status liaison.SessionStatus) {
		log.Infof("session status: %s", status)
	})

	ws := liaison.NewWSLiaison(cfg.ServerURL, session, desk)
	registry := actions.NewRegistry(desk, ws, session, report.Write)
	defer registry.Stop()
	for _, action := range registry.All() {
		action.OnEffectiveEnabled(func(enabled bool) {
			log.Debugf("action %s enabled=%v", action.Name(), enabled)
		})
	}

	// persist server messages as they arrive
	msgSub := desk.Messages.Subscribe(eventpubsub.SignalAdd, func(sig eventpubsub.Signal) {
		if m, ok := sig.Item.(*models.Message); ok {
			if err := store.SaveMessage(m); err != nil {
				log.Errorf("terminal: %v", err)
			}
		}
	})
	defer msgSub.Cancel()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ws.Connect(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("terminal: shutting down")

	// give the read loop a moment to close the connection
	time.Sleep(250 * time.Millisecond)

	return report.Write(os.Stdout, desk)
}

// seedDesk loads the configured accounts and instruments so the desk is
// usable before the first server snapshot arrives.
func seedDesk(desk *services.Desk, cfg *utils.Config) {
	for _, ac := range cfg.Accounts {
		a := models.NewAccount(ac.Name)
		a.SetBalance(ac.Balance)
		a.SetEquity(ac.Balance)
		a.SetUsableMargin(ac.Balance)
		a.SetHedging(ac.Hedging)
		if err := desk.Accounts.Add(a); err != nil {
			log.Warnf("terminal: %v", err)
		}
	}

	for i, inst := range cfg.Instruments {
		o := models.NewOffer("cfg-"+strconv.Itoa(i+1), inst.Symbol, inst.PointSize, inst.Digits)
		if err := desk.Offers.Add(o); err != nil {
			log.Warnf("terminal: %v", err)
		}
	}
}

func main() {
	rootCmd.Flags().String("config", "fxterm.yaml", "Path to the terminal's yaml config")

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("error executing terminal: %v", err)
	}
}
