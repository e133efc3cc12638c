package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv-ranker/internal/candidate"
	"github.com/spigell/cv-ranker/internal/export"
	"github.com/spigell/cv-ranker/internal/jobdesc"
	"github.com/spigell/cv-ranker/internal/logger"
	"github.com/spigell/cv-ranker/internal/ranking"
	"github.com/spigell/cv-ranker/internal/report"
	"github.com/spigell/cv-ranker/internal/scoring"
	"github.com/spigell/cv-ranker/internal/shortlist"
)

const (
	PromptExportJSON          = "Export rankings (JSON)"
	PromptExportXLSX          = "Export report (XLSX)"
	PromptStatistics          = "Show statistics"
	PromptDetails             = "Show candidate details"
	PromptAppendToExcludeFile = "Append shortlist to exclude file"
	PromptExit                = "Exit"
	PromptBack                = "back"

	defaultXLSXFile = "candidate_rankings.xlsx"
)

var errExit = errors.New("exit requested")

var rankCmd = &cobra.Command{
	Use:   "rank [candidates.json]",
	Short: "Rank candidates from a batch file against its job description",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rank(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("input", "i", "", "candidates batch file")
	rankCmd.Flags().String("job-description", "", "rank against this job description instead of the one in the batch")
	rankCmd.Flags().String("job-description-file", "", "read the job description from this file. Takes precedence over --job-description")
	rankCmd.Flags().BoolP("yes", "y", false, "export without asking")
	rankCmd.Flags().StringP("output", "o", export.DefaultJSONFile, "JSON rankings file")
	rankCmd.Flags().String("xlsx", "", "also write an Excel report to this file")
	rankCmd.Flags().Bool("include-reasoning", false, "include reasoning in the JSON export")
	rankCmd.Flags().Bool("include-skills", false, "include skills in the JSON export")
	rankCmd.Flags().Bool("include-experience", false, "include experience in the JSON export")
	rankCmd.Flags().Int("minimum-score", 0, "hide candidates scoring below this value")
	rankCmd.Flags().Int("top", 0, "show only the best N candidates. 0 shows all")
	rankCmd.Flags().StringP("exclude-file", "e", "", "file with candidates to hide. Default is unset.")
	rankCmd.Flags().Bool("ignore-exclude-file", false, "do not hide candidates listed in the exclude file")

	bindings := map[string]string{
		"input":                     "input",
		"job-description":           "job-description",
		"job-description-file":      "job-description-file",
		"export.json":               "output",
		"export.xlsx":               "xlsx",
		"export.include-reasoning":  "include-reasoning",
		"export.include-skills":     "include-skills",
		"export.include-experience": "include-experience",
		"shortlist.minimum-score":   "minimum-score",
		"shortlist.top":             "top",
		"shortlist.exclude-file":    "exclude-file",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, rankCmd.Flags().Lookup(flag)); err != nil {
			log.Fatalf("binding %s flag: %v", flag, err)
		}
	}
}

// rank is the main command for the cli.
func rank(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if len(args) > 0 {
		config.Input = args[0]
	}

	logger.Info("starting the cv-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	batch, err := loadBatch(config)
	if err != nil {
		logger.Fatal("loading candidates",
			zap.Error(err),
			zap.String("hint", "run 'cv-ranker sample' to get an example batch"),
		)
	}

	logger.Info("candidates loaded", zap.Int("count", batch.Len()))

	ranker := ranking.New(scoring.New(), config.Input, logger)
	outcome := <-ranker.RankAsync(batch.Resumes, batch.JobDescription)
	if outcome.Err != nil {
		logger.Fatal("ranking failed", zap.Error(outcome.Err), zap.String("hint", "run the command again"))
	}

	steps := shortlist.Default()
	if ignore, _ := cmd.Flags().GetBool("ignore-exclude-file"); ignore {
		shortlist.DisableByName(steps, "exclude_file", "skip requested via flag")
	}

	shortlisted, err := shortlist.Run(ctx, config.Shortlist, shortlist.Deps{Logger: logger}, steps, outcome.Ranking)
	if err != nil {
		logger.Fatal("shortlisting failed", zap.Error(err))
	}

	for _, status := range shortlist.Describe(steps) {
		logger.Debug("shortlist step status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	if shortlisted.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after shortlisting"))
		return
	}

	printRanking(logger, shortlisted)

	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		if err := exportAll(logger, config.Export, shortlisted); err != nil {
			logger.Fatal("exporting rankings", zap.Error(err))
		}
		return
	}

	for {
		items := []string{PromptExportJSON, PromptExportXLSX, PromptStatistics, PromptDetails}
		if strings.TrimSpace(config.Shortlist.ExcludeFile) != "" {
			items = append(items, PromptAppendToExcludeFile)
		}

		prompt := promptui.Select{
			Label: "What next?",
			Items: append(items, PromptExit),
		}

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, config, shortlisted); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func loadBatch(config *Config) (*candidate.Batch, error) {
	if strings.TrimSpace(config.Input) == "" {
		return nil, errors.New("candidates file is required: pass it as an argument or set 'input'")
	}

	batch, err := candidate.Load(config.Input)
	if err != nil {
		return nil, err
	}

	batch.JobDescription, err = jobdesc.Resolve(jobdesc.Source{
		File:   config.JobDescriptionFile,
		Inline: config.JobDescription,
		Batch:  batch.JobDescription,
	})
	if err != nil {
		return nil, err
	}

	if err := batch.Validate(); err != nil {
		return nil, err
	}

	return batch, nil
}

func handleAction(action string, logger *zap.Logger, config *Config, shortlisted *ranking.Ranking) error {
	switch action {
	case PromptExportJSON:
		path, err := export.ToJSONFile(config.Export.JSON, shortlisted, config.Export.Options)
		if err != nil {
			return err
		}
		logger.Info("rankings exported", zap.String("filename", path))
		return nil
	case PromptExportXLSX:
		target := config.Export.XLSX
		if target == "" {
			target = defaultXLSXFile
		}
		path, err := export.ToExcel(shortlisted, target, time.Now())
		if err != nil {
			return err
		}
		logger.Info("report exported", zap.String("filename", path))
		return nil
	case PromptStatistics:
		pretty, _ := json.MarshalIndent(report.Summarize(shortlisted), "", "  ")
		logger.Info(string(pretty), zap.String("run_id", shortlisted.RunID))
		return nil
	case PromptDetails:
		return showDetails(logger, shortlisted)
	case PromptAppendToExcludeFile:
		if err := appendToExcludeFile(logger, config.Shortlist.ExcludeFile, shortlisted); err != nil {
			return err
		}
		if shortlisted.Len() == 0 {
			logger.Info("exiting", zap.String("reason", "no candidates left after shortlisting"))
			return errExit
		}
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func exportAll(logger *zap.Logger, cfg *ExportConfig, shortlisted *ranking.Ranking) error {
	path, err := export.ToJSONFile(cfg.JSON, shortlisted, cfg.Options)
	if err != nil {
		return err
	}
	logger.Info("rankings exported", zap.String("filename", path))

	if strings.TrimSpace(cfg.XLSX) == "" {
		return nil
	}

	path, err = export.ToExcel(shortlisted, cfg.XLSX, time.Now())
	if err != nil {
		return err
	}
	logger.Info("report exported", zap.String("filename", path))
	return nil
}

func printRanking(logger *zap.Logger, r *ranking.Ranking) {
	summary := report.Summarize(r)
	logger.Info("current ranking",
		zap.Int("count", summary.Total),
		zap.Int("excellent", summary.Excellent),
		zap.Int("good", summary.Good),
		zap.Int("average", summary.Average),
		zap.Int("fallbacks", summary.Fallbacks),
	)

	for i, item := range r.Items {
		logger.Info(strings.TrimSpace(fmt.Sprintf("#%d %s %s", i+1, item.Name, report.Medal(i))),
			zap.Int64("candidate_id", item.CandidateID),
			zap.Int("score", item.Score),
			zap.String("tier", report.Tier(item.Score)),
			zap.String("reasoning", item.Reasoning),
		)
	}
}

func showDetails(logger *zap.Logger, r *ranking.Ranking) error {
	for {
		items := make([]string, 0, r.Len()+1)
		for _, item := range r.Items {
			items = append(items, fmt.Sprintf("%d %s / %d", item.CandidateID, item.Name, item.Score))
		}

		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: append(items, PromptBack),
		}

		_, selected, err := candidatePrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		id, err := strconv.ParseInt(strings.Split(selected, " ")[0], 10, 64)
		if err != nil {
			return fmt.Errorf("parse candidate id from %q: %w", selected, err)
		}

		item := r.FindByID(id)
		if item == nil {
			return fmt.Errorf("there is no such candidate id %d", id)
		}

		logger.Info(candidateDetails(item), zap.Int64("candidate_id", id), zap.Bool("fallback", item.Fallback))
	}
}

// candidateDetails renders a ranked candidate together with the record as it
// was uploaded and the reason it could not be scored, if any.
func candidateDetails(item *ranking.ScoredCandidate) string {
	details := struct {
		*ranking.ScoredCandidate
		Uploaded map[string]any `json:"uploaded,omitempty"`
		Error    string         `json:"error,omitempty"`
	}{
		ScoredCandidate: item,
		Uploaded:        item.Candidate.Raw,
	}
	if item.Candidate.Malformed != nil {
		details.Error = item.Candidate.Malformed.Error()
	}

	// do not bother error since the record came from a decoded document
	pretty, _ := json.MarshalIndent(details, "", "  ")
	return string(pretty)
}

func appendToExcludeFile(logger *zap.Logger, path string, r *ranking.Ranking) error {
	excluded, err := shortlist.GetExcludedCandidatesFromFile(path)
	if err != nil {
		return err
	}

	excluded.Append(shortlist.ToExcluded(r, time.Now()))

	if err := excluded.ToFile(path); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", path), zap.Int("count", r.Len()))

	r.Exclude(excluded.IDs())
	return nil
}
