package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv-ranker/internal/candidate"
	"github.com/spigell/cv-ranker/internal/logger"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write a sample candidates batch to try the ranking with",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		output, _ := cmd.Flags().GetString("output")
		if err := candidate.WriteSample(output); err != nil {
			logger.Fatal("writing sample batch", zap.Error(err))
		}

		logger.Info("sample batch written",
			zap.String("filename", output),
			zap.String("hint", "run 'cv-ranker rank "+output+"'"),
		)
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().StringP("output", "o", candidate.DefaultSampleFile, "where to write the sample batch")
}
