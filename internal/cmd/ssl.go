package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zeekwatch/ja4extract/internal/export"
	"github.com/zeekwatch/ja4extract/internal/model"
	"github.com/zeekwatch/ja4extract/internal/ssllog"
)

var sslCmd = &cobra.Command{
	Use:   "ssl [input] [output-dir]",
	Short: "Extract JA4/JA4S records from a Zeek ssl.log",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runSSL,
}

func init() {
	rootCmd.AddCommand(sslCmd)
}

func runSSL(cmd *cobra.Command, args []string) error {
	input := viper.GetString("ssl.input")
	outDir := viper.GetString("ssl.output_dir")
	if len(args) > 0 {
		input = args[0]
	}
	if len(args) > 1 {
		outDir = args[1]
		logrus.Infof("Using custom output directory: %s", outDir)
	}

	result, err := ssllog.ReadRecords(input, nil)
	if err != nil {
		reportReadError(input, err)
		result = &ssllog.ReadResult{}
	}

	if result.Count == 0 {
		logrus.Warn("No SSL records parsed. Check input file or parsing errors.")
		return nil
	}

	logrus.Infof("Parsed %d SSL entries from %s", result.Count+result.Duplicates, input)
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

	csvPath := export.Path(outDir, "parsed_ssl_logs", ts, "csv")
	if err := export.WriteCSV(csvPath, model.TLSFields, rows); err != nil {
		logrus.Errorf("Saving SSL CSV file: %v", err)
	} else {
		logrus.Infof("SSL data exported to CSV: %s", csvPath)
	}

	jsonPath := export.Path(outDir, "parsed_ssl_logs", ts, "json")
	if err := export.WriteJSON(jsonPath, result.Records, 4); err != nil {
		logrus.Errorf("Saving SSL JSON file: %v", err)
	} else {
		logrus.Infof("SSL data exported to JSON: %s", jsonPath)
	}

	if st := openStore(); st != nil {
		defer st.Close()
		if n, err := st.InsertTLS(result.Records, nil); err != nil {
			logrus.Errorf("Inserting SSL records into database: %v", err)
		} else {
			logrus.Infof("Inserted %d SSL records into %s", n, st.Path())
		}
	}

	return nil
}
