package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zeekwatch/ja4extract/internal/query"
	"github.com/zeekwatch/ja4extract/internal/store"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query fingerprint records previously inserted into a database",
	Long: `query reads back records from a database populated by the extractors.
Filters are column=value pairs; --where matches exactly, --like matches as
a substring. Results print as CSV on stdout.

  ja4extract query --db ja4.db --family ssl --like server_name=example --order-by ja4`,
	RunE: runQuery,
}

var (
	queryFamily  string
	queryWhere   []string
	queryLike    []string
	queryAny     bool
	queryOrderBy string
	queryLimit   int
	queryPage    int
	queryCount   bool
)

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&queryFamily, "family", "http", "record family: http, ssl, tcp, x509")
	queryCmd.Flags().StringArrayVar(&queryWhere, "where", nil, "column=value equality filter (repeatable)")
	queryCmd.Flags().StringArrayVar(&queryLike, "like", nil, "column=value substring filter (repeatable)")
	queryCmd.Flags().BoolVar(&queryAny, "any", false, "combine filters with OR instead of AND")
	queryCmd.Flags().StringVar(&queryOrderBy, "order-by", "", "column to sort results by")
	queryCmd.Flags().IntVar(&queryLimit, "limit", 0, "page size, 0 for all rows")
	queryCmd.Flags().IntVar(&queryPage, "page", 1, "page number when --limit is set")
	queryCmd.Flags().BoolVar(&queryCount, "count", false, "print only the number of matching records")
}

func runQuery(cmd *cobra.Command, args []string) error {
	st := openStore()
	if st == nil {
		logrus.Error("query requires a database; pass --db or set db.dsn in the config")
		return nil
	}
	defer st.Close()

	b, err := buildQuery()
	if err != nil {
		logrus.Errorf("%v", err)
		return nil
	}

	if queryCount {
		n, err := st.SelectCount(b)
		if err != nil {
			logrus.Errorf("Counting records: %v", err)
			return nil
		}
		fmt.Println(n)
		return nil
	}

	rows, err := st.Select(b)
	if err != nil {
		logrus.Errorf("Querying records: %v", err)
		return nil
	}

	w := csv.NewWriter(os.Stdout)
	w.Write(b.Columns())
	for _, row := range rows {
		w.Write(row)
	}
	w.Flush()
	return w.Error()
}

// buildQuery translates the command flags into a query over the selected
// family's table.
func buildQuery() (*query.Builder, error) {
	table, columns, err := store.Table(queryFamily)
	if err != nil {
		return nil, err
	}

	b := query.NewBuilder(table, columns, queryLimit)
	if queryAny {
		b.SetLogic(query.OR)
	}
	b.SetPage(queryPage)

	if err := addFilters(b, queryWhere, query.Equal); err != nil {
		return nil, err
	}
	if err := addFilters(b, queryLike, query.Like); err != nil {
		return nil, err
	}

	if queryOrderBy != "" {
		if err := b.OrderBy(queryOrderBy); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func addFilters(b *query.Builder, filters []string, op query.Operator) error {
	for _, f := range filters {
		column, value, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("filter %q is not column=value", f)
		}
		if err := b.AddPredicate(query.Simple(column, op, value)); err != nil {
			return err
		}
	}
	return nil
}
