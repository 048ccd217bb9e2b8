package cmd

import (
	"errors"
	"io/fs"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zeekwatch/ja4extract/internal/export"
	"github.com/zeekwatch/ja4extract/internal/httplog"
	"github.com/zeekwatch/ja4extract/internal/model"
)

var httpCmd = &cobra.Command{
	Use:   "http [input] [output-dir]",
	Short: "Extract JA4H records from a Zeek http.log",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runHTTP,
}

func init() {
	rootCmd.AddCommand(httpCmd)
}

func runHTTP(cmd *cobra.Command, args []string) error {
	input := viper.GetString("http.input")
	outDir := viper.GetString("http.output_dir")
	if len(args) > 0 {
		input = args[0]
	}
	if len(args) > 1 {
		outDir = args[1]
		logrus.Infof("Using custom output directory: %s", outDir)
	}

	result, err := httplog.ReadRecords(input, nil)
	if err != nil {
		reportReadError(input, err)
		result = &httplog.ReadResult{}
	}

	if result.Count == 0 {
		logrus.Warn("No HTTP records parsed. Check input file or parsing errors.")
		return nil
	}

	logrus.Infof("Parsed %d HTTP entries from %s", result.Count+result.Duplicates, input)
	logrus.Infof("Removed %d duplicate records. Total unique records: %d", result.Duplicates, result.Count)

	if err := export.EnsureDir(outDir); err != nil {
		logrus.Errorf("%v", err)
		return nil
	}

	ts := export.Timestamp()

	rows := make([][]string, len(result.Records))
	for i, r := range result.Records {
		rows[i] = r.Row()
	}

	csvPath := export.Path(outDir, "parsed_http_logs", ts, "csv")
	if err := export.WriteCSV(csvPath, model.HTTPFields, rows); err != nil {
		logrus.Errorf("Saving HTTP CSV file: %v", err)
	} else {
		logrus.Infof("HTTP data exported to CSV: %s", csvPath)
	}

	jsonPath := export.Path(outDir, "parsed_http_logs", ts, "json")
	if err := export.WriteJSON(jsonPath, result.Records, 4); err != nil {
		logrus.Errorf("Saving HTTP JSON file: %v", err)
	} else {
		logrus.Infof("HTTP data exported to JSON: %s", jsonPath)
	}

	if st := openStore(); st != nil {
		defer st.Close()
		if n, err := st.InsertHTTP(result.Records, nil); err != nil {
			logrus.Errorf("Inserting HTTP records into database: %v", err)
		} else {
			logrus.Infof("Inserted %d HTTP records into %s", n, st.Path())
		}
	}

	return nil
}

// reportReadError logs a read failure in the taxonomy the extractors share:
// a missing input file is called out distinctly from other read errors.
func reportReadError(input string, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		logrus.Errorf("Input file %s not found", input)
		return
	}
	logrus.Errorf("Reading or parsing %s: %v", input, err)
}
