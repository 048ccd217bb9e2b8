package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zeekwatch/ja4extract/internal/connlog"
	"github.com/zeekwatch/ja4extract/internal/export"
	"github.com/zeekwatch/ja4extract/internal/model"
)

var tcpCmd = &cobra.Command{
	Use:   "tcp [input] [output-dir]",
	Short: "Extract JA4T/JA4TS records from a Zeek conn.log",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runTCP,
}

func init() {
	rootCmd.AddCommand(tcpCmd)
}

func runTCP(cmd *cobra.Command, args []string) error {
	input := viper.GetString("tcp.input")
	outDir := viper.GetString("tcp.output_dir")
	if len(args) > 0 {
		input = args[0]
	}
	if len(args) > 1 {
		outDir = args[1]
		logrus.Infof("Using custom output directory: %s", outDir)
	}

	result, err := connlog.ReadRecords(input, nil)
	if err != nil {
		reportReadError(input, err)
		result = &connlog.ReadResult{}
	}

	if result.Count == 0 {
		logrus.Warn("No TCP records parsed. Check input file or parsing errors.")
		return nil
	}

	logrus.Infof("Parsed %d TCP entries from %s", result.Count, input)

	if err := export.EnsureDir(outDir); err != nil {
		logrus.Errorf("%v", err)
		return nil
	}

	ts := export.Timestamp()

	rows := make([][]string, len(result.Records))
	for i, r := range result.Records {
		rows[i] = r.Row()
	}

	csvPath := export.Path(outDir, "parsed_tcp_logs", ts, "csv")
	if err := export.WriteCSV(csvPath, model.TCPFields, rows); err != nil {
		logrus.Errorf("Saving TCP CSV file: %v", err)
	} else {
		logrus.Infof("TCP data exported to CSV: %s", csvPath)
	}

	jsonPath := export.Path(outDir, "parsed_tcp_logs", ts, "json")
	if err := export.WriteJSON(jsonPath, result.Records, 4); err != nil {
		logrus.Errorf("Saving TCP JSON file: %v", err)
	} else {
		logrus.Infof("TCP data exported to JSON: %s", jsonPath)
	}

	if st := openStore(); st != nil {
		defer st.Close()
		if n, err := st.InsertTCP(result.Records, nil); err != nil {
			logrus.Errorf("Inserting TCP records into database: %v", err)
		} else {
			logrus.Infof("Inserted %d TCP records into %s", n, st.Path())
		}
	}

	return nil
}
