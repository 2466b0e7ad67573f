package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"example.com/fitnessclient/internal/domain"
	"example.com/fitnessclient/internal/notify"
	"example.com/fitnessclient/internal/viewstate"
)

func newActivitiesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activities",
		Aliases: []string{"activity"},
		Short:   "List, log and inspect activities",
	}
	cmd.AddCommand(newActivitiesListCmd(a), newActivitiesAddCmd(a), newActivitiesShowCmd(a), newActivitiesWatchCmd(a))
	return cmd
}

func newActivitiesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := viewstate.NewListController(a.activities, viewstate.WithLogger(a.logger))
			defer list.Close()

			st := list.Load(cmd.Context())
			printActivities(a.out, st, time.Now())
			return stateErr(st.Phase, st.Message)
		},
	}
}

type addFlags struct {
	activityType string
	duration     string
	calories     string
	startTime    string
	metrics      map[string]string
}

func newActivitiesAddCmd(a *app) *cobra.Command {
	flags := &addFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a new activity",
		Long: `Log a new activity and show the refreshed list.

Examples:
  fitness activities add --type running --duration 30 --calories 300
  fitness activities add --type cycling --duration 45 --calories 410 \
    --start-time 2026-10-18T07:30:00Z --metric distance_km=18.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := flags.form()
			if err != nil {
				return err
			}

			list := viewstate.NewListController(a.activities, viewstate.WithLogger(a.logger))
			defer list.Close()
			creation := viewstate.NewCreationController(a.activities, list, viewstate.WithLogger(a.logger))
			defer creation.Close()

			creation.Edit(form)
			st := creation.Submit(cmd.Context())
			if st.Error != "" {
				return errors.New(st.Error)
			}
			fmt.Fprintf(a.out, "Added %s activity %s\n\n", strings.ToLower(string(st.Created.Type)), st.Created.ID)
			printActivities(a.out, list.State(), time.Now())
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.activityType, "type", "running", "activity type: running, walking or cycling")
	cmd.Flags().StringVar(&flags.duration, "duration", "", "duration in minutes")
	cmd.Flags().StringVar(&flags.calories, "calories", "", "calories burned")
	cmd.Flags().StringVar(&flags.startTime, "start-time", "", "start time (RFC 3339)")
	cmd.Flags().StringToStringVar(&flags.metrics, "metric", nil, "additional metric as key=value (repeatable)")
	return cmd
}

// form maps flags onto the creation form. Empty duration or calories are left
// for the controller to report.
func (f *addFlags) form() (viewstate.Form, error) {
	form := viewstate.DefaultForm()
	if strings.TrimSpace(f.activityType) != "" {
		t, err := domain.ParseActivityType(f.activityType)
		if err != nil {
			return form, err
		}
		form.Type = t
	}
	form.Duration = f.duration
	form.CaloriesBurned = f.calories

	if f.startTime != "" {
		start, err := time.Parse(time.RFC3339, f.startTime)
		if err != nil {
			return form, &domain.ValidationError{Field: "startTime", Reason: "must be RFC 3339, e.g. 2026-10-18T07:30:00Z"}
		}
		form.StartTime = &start
	}
	if len(f.metrics) > 0 {
		form.Metrics = make(map[string]any, len(f.metrics))
		for k, v := range f.metrics {
			form.Metrics[k] = metricValue(v)
		}
	}
	return form, nil
}

// metricValue sends numbers as JSON numbers and everything else as text.
func metricValue(raw string) any {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}

func newActivitiesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <activity-id>",
		Short: "Show an activity with its AI recommendation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := viewstate.NewDetailController(a.details, viewstate.WithLogger(a.logger))
			defer ctrl.Close()

			st := ctrl.SetID(cmd.Context(), args[0])
			printDetail(a.out, st)
			return stateErr(st.Phase, st.Message)
		},
	}
}

func newActivitiesWatchCmd(a *app) *cobra.Command {
	var follow bool
	cmd := &cobra.Command{
		Use:   "watch <activity-id>",
		Short: "Show an activity and reload it when its recommendation is generated",
		Long: `Show an activity, then listen on Kafka for recommendation.generated events
and reload the activity when one arrives for it. Without --follow the command
exits once a recommendation is shown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.Context(), args[0], follow)
		},
	}
	cmd.Flags().BoolVar(&follow, "follow", false, "keep listening after a recommendation is shown")
	return cmd
}

func (a *app) watch(ctx context.Context, id string, follow bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctrl := viewstate.NewDetailController(a.details, viewstate.WithLogger(a.logger))
	defer ctrl.Close()
	ctrl.Subscribe(func(st viewstate.DetailState) {
		if st.Phase == viewstate.PhaseLoading {
			return
		}
		printDetail(a.out, st)
		fmt.Fprintln(a.out)
	})

	st := ctrl.SetID(ctx, id)
	if err := stateErr(st.Phase, st.Message); err != nil {
		return err
	}
	if st.Data.HasRecommendation() && !follow {
		return nil
	}

	if a.cfg.Metrics.Address != "" {
		stopMetrics := a.serveMetrics()
		defer stopMetrics()
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        a.cfg.Kafka.Brokers,
		GroupID:        a.cfg.Kafka.GroupID,
		Topic:          a.cfg.Kafka.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})
	defer reader.Close()

	refresh := notify.NewRefreshHandler(ctrl, a.logger.Named("notify"))
	handler := notify.HandlerFunc(func(ctx context.Context, msg notify.Message) error {
		if err := refresh.Handle(ctx, msg); err != nil {
			return err
		}
		if !follow && ctrl.State().Data.HasRecommendation() {
			cancel()
		}
		return nil
	})

	fmt.Fprintln(a.errOut, "Waiting for a recommendation (Ctrl+C to stop)...")
	proc := notify.NewProcessor(reader, handler, notify.WithLogger(a.logger.Named("notify")))
	if err := proc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *app) serveMetrics() func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: a.cfg.Metrics.Address, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		a.logger.Info("metrics listening", zap.String("address", a.cfg.Metrics.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Warn("metrics server error", zap.Error(err))
		}
	}()
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("metrics shutdown error", zap.Error(err))
		}
	}
}

// stateErr turns a failed view state into the command's error so the exit
// status is non-zero. The message itself has already been printed.
func stateErr(phase viewstate.Phase, message string) error {
	if phase != viewstate.PhaseFailed {
		return nil
	}
	return reportedError{message}
}

// reportedError is an error whose message the command already printed.
type reportedError struct{ msg string }

func (e reportedError) Error() string { return e.msg }
