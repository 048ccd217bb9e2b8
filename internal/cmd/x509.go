package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zeekwatch/ja4extract/internal/export"
	"github.com/zeekwatch/ja4extract/internal/x509log"
)

var x509Cmd = &cobra.Command{
	Use:   "x509",
	Short: "Extract JA4X certificate records from a Zeek x509.log",
	Args:  cobra.NoArgs,
	RunE:  runX509,
}

func init() {
	x509Cmd.Flags().String("input", "", "path to the Zeek x509.log file")
	viper.BindPFlag("x509.input", x509Cmd.Flags().Lookup("input"))
	rootCmd.AddCommand(x509Cmd)
}

func runX509(cmd *cobra.Command, args []string) error {
	input := viper.GetString("x509.input")
	outDir := viper.GetString("x509.output_dir")

	result, err := x509log.ReadRecords(input, nil)
	if err != nil {
		reportReadError(input, err)
		result = &x509log.ReadResult{}
	}

	if result.Count == 0 {
		logrus.Warn("No X.509 records parsed. Check input file or parsing errors.")
		return nil
	}

	logrus.Infof("Parsed %d X.509 entries from %s", result.Count, input)

	if err := export.EnsureDir(outDir); err != nil {
		logrus.Errorf("%v", err)
		return nil
	}

	// The x506 stem is a long-standing artifact name consumers already
	// glob for; keep it.
	jsonPath := export.Path(outDir, "parsed_x506_logs", export.Timestamp(), "json")
	if err := export.WriteJSON(jsonPath, result.Records, 2); err != nil {
		logrus.Errorf("Saving X.509 JSON file: %v", err)
	} else {
		logrus.Infof("X.509 data exported to JSON: %s", jsonPath)
	}

	if st := openStore(); st != nil {
		defer st.Close()
		if n, err := st.InsertX509(result.Records, nil); err != nil {
			logrus.Errorf("Inserting X.509 records into database: %v", err)
		} else {
			logrus.Infof("Inserted %d X.509 records into %s", n, st.Path())
		}
	}

	return nil
}
