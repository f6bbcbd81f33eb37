package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-recommender/internal/ai"
	"github.com/spigell/job-recommender/internal/ai/gemini"
	"github.com/spigell/job-recommender/internal/board"
	"github.com/spigell/job-recommender/internal/filtering"
	"github.com/spigell/job-recommender/internal/logger"
	"github.com/spigell/job-recommender/internal/metrics"
	"github.com/spigell/job-recommender/internal/recommend"
	"github.com/spigell/job-recommender/internal/report"
	"github.com/spigell/job-recommender/internal/secrets"
)

const (
	PromptShow                = "Show recommendations"
	PromptReportByJobs        = "Report by jobs"
	PromptMemberDetails       = "Show member details"
	PromptResultsToFile       = "Dump results to file"
	PromptAppendToExcludeFile = "Append recommended jobs to exclude file"
	PromptExit                = "Exit"
	PromptBack                = "back"

	memberDetailsTop = 5
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch jobs and members and recommend a job to every member",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("interactive", "i", false, "choose what to do with the results from a menu")
	runCmd.Flags().StringP("output", "o", "", "output format: console, json or yaml")
	runCmd.Flags().StringP("exclude-file", "e", "", "special file with jobs to exclude. Default is unset.")
	runCmd.Flags().String("metrics-file", "", "write prometheus metrics of the run to this file")
	runCmd.Flags().String("base-url", "", "job board base url")

	viper.BindPFlag("output", runCmd.Flags().Lookup("output"))
	viper.BindPFlag("exclude-file", runCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("metrics-file", runCmd.Flags().Lookup("metrics-file"))
	viper.BindPFlag("base-url", runCmd.Flags().Lookup("base-url"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()
	runID := ulid.Make().String()

	base, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer base.Sync()

	logger := logger.WithRunID(base, runID)

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	logger.Info("starting the job-recommender", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	recorder := metrics.New()

	client := board.New(ctx, logger, config.BaseURL)
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}
	if config.Timeout > 0 {
		client.HTTPClient.Timeout = config.Timeout
	}

	jobs, err := client.GetJobs()
	if err != nil {
		fetchFailed(recorder, config.MetricsFile, logger, err)
		logger.Fatal("getting jobs", zap.Error(err))
	}
	logger.Info("getting jobs", zap.Int("count", jobs.Len()))

	members, err := client.GetMembers()
	if err != nil {
		fetchFailed(recorder, config.MetricsFile, logger, err)
		logger.Fatal("getting members", zap.Error(err))
	}
	logger.Info("getting members", zap.Int("count", members.Len()))

	steps := filtering.Default()
	if strings.TrimSpace(config.ExcludeFile) == "" {
		filtering.DisableByName(steps, "exclude_file", "exclude file is not configured")
	}

	jobs, err = filtering.Run(ctx, filterConfig(config), filtering.Deps{Logger: logger}, steps, jobs)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}
	logger.Debug("filters", zap.Any("steps", filtering.Describe(steps)))

	engine, err := recommend.New(config.scoringConfig(),
		recommend.WithLogger(logger),
		recommend.WithObserver(recorder),
	)
	if err != nil {
		logger.Fatal("building the recommendation engine", zap.Error(err))
	}

	engine.Recommend(members, jobs)

	explain(ctx, config.AI, members, logger)

	recorder.Finish()
	writeMetrics(recorder, config.MetricsFile, logger)

	interactive, _ := cmd.Flags().GetBool("interactive")
	if !interactive {
		if err := report.Write(cmd.OutOrStdout(), config.Output, runID, members); err != nil {
			logger.Fatal("writing results", zap.Error(err))
		}
		return
	}

	prompt := promptui.Select{
		Label: "What next?",
		Items: []string{PromptShow, PromptReportByJobs, PromptMemberDetails, PromptResultsToFile, PromptAppendToExcludeFile, PromptExit},
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, cmd.OutOrStdout(), logger, config, runID, members, jobs); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, w io.Writer, logger *zap.Logger, config *Config, runID string, members *board.Members, jobs *board.Jobs) error {
	switch action {
	case PromptShow:
		return report.Write(w, config.Output, runID, members)
	case PromptReportByJobs:
		pretty, _ := json.MarshalIndent(report.ByJob(members), "", "  ")
		logger.Info(string(pretty), zap.Int("recommended", members.Recommended()))
		return nil
	case PromptMemberDetails:
		return memberDetails(w, members, jobs)
	case PromptResultsToFile:
		filename, err := report.DumpToTmpFile(runID, members)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(config.ExcludeFile, members, logger)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func memberDetails(w io.Writer, members *board.Members, jobs *board.Jobs) error {
	memberPrompt := promptui.Select{
		Label: "Choose a member and press ENTER",
		Items: append(members.Names(), PromptBack),
	}

	_, selected, err := memberPrompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptBack {
		return nil
	}

	member := members.FindByName(selected)
	if member == nil {
		return fmt.Errorf("there is no such member %s", selected)
	}

	return report.WriteMember(w, member, jobs, memberDetailsTop)
}

// appendToExcludeFile stores every recommended job so the next run skips it.
func appendToExcludeFile(path string, members *board.Members, logger *zap.Logger) error {
	if strings.TrimSpace(path) == "" {
		logger.Warn("exclude file is not configured", zap.String("hint", "use --exclude-file or the 'exclude-file' key"))
		return nil
	}

	excluded, err := board.GetExcludedJobsFromFile(path)
	if err != nil {
		return err
	}

	recommended := &board.Jobs{}
	seen := make(map[string]struct{})
	for _, member := range members.Items {
		if member.RecommendedJob == nil {
			continue
		}
		if _, ok := seen[member.RecommendedJob.Key()]; ok {
			continue
		}
		seen[member.RecommendedJob.Key()] = struct{}{}
		recommended.Items = append(recommended.Items, member.RecommendedJob)
	}

	excluded.Append(recommended.ToExcluded())
	if err := excluded.ToFile(path); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", path), zap.Int("jobs", recommended.Len()))
	return nil
}

func filterConfig(config *Config) *filtering.Config {
	cfg := &filtering.Config{ExcludeFile: config.ExcludeFile}
	if config.Exclude != nil {
		cfg.Locations = config.Exclude.Locations
		cfg.Titles = config.Exclude.Titles
	}
	return cfg
}

func fetchFailed(recorder *metrics.Recorder, path string, logger *zap.Logger, err error) {
	var fetchErr *board.FetchError
	if errors.As(err, &fetchErr) {
		recorder.FetchFailed(fetchErr.Resource)
	}
	recorder.Finish()
	writeMetrics(recorder, path, logger)
}

func writeMetrics(recorder *metrics.Recorder, path string, logger *zap.Logger) {
	if strings.TrimSpace(path) == "" {
		return
	}

	if err := recorder.WriteTextfile(path); err != nil {
		logger.Warn("writing metrics file", zap.String("filename", path), zap.Error(err))
		return
	}
	logger.Debug("metrics written", zap.String("filename", path))
}

// explain annotates recommendations with AI written notes. Failures never stop the run.
func explain(ctx context.Context, cfg *AIConfig, members *board.Members, logger *zap.Logger) {
	if cfg == nil || !cfg.Enabled {
		return
	}

	explainer, err := newExplainer(ctx, cfg, logger)
	if err != nil {
		logger.Warn("skipping AI explanations", zap.Error(err))
		return
	}

	annotated, err := ai.Annotate(ctx, logger, explainer, members)
	if err != nil {
		logger.Warn("AI explanations interrupted", zap.Error(err))
	}
	logger.Info("AI explanations done", zap.Int("annotated", annotated))
}

func newExplainer(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Explainer, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, logger)
	if err != nil {
		return nil, err
	}

	return gemini.NewExplainer(generator, cfg.Gemini.MaxLogLength, logger), nil
}
