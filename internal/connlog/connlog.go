// Package connlog extracts JA4T/JA4TS-fingerprinted connections from Zeek
// conn.log files.
package connlog

import (
	"github.com/sirupsen/logrus"

	"github.com/zeekwatch/ja4extract/internal/model"
	"github.com/zeekwatch/ja4extract/internal/zeeklog"
)

// Columns is the column order of a stock Zeek conn.log with link-layer
// address logging and the JA4 package loaded. A #fields directive in the
// file takes precedence.
var Columns = []string{
	"ts", "uid", "id.orig_h", "id.orig_p", "id.resp_h", "id.resp_p",
	"proto", "service", "duration", "orig_bytes", "resp_bytes",
	"conn_state", "local_orig", "local_resp", "missed_bytes", "history",
	"orig_pkts", "orig_ip_bytes", "resp_pkts", "resp_ip_bytes",
	"tunnel_parents", "orig_l2_addr", "resp_l2_addr",
	"ja4t", "ja4ts",
}

// required lists the source columns a data line must reach. With the stock
// schema the widest is ja4ts at index 24.
var required = []string{
	"uid", "id.orig_h", "id.orig_p", "id.resp_h", "id.resp_p",
	"ja4t", "ja4ts",
}

// Policy keeps connections carrying either TCP fingerprint. conn.log is
// one line per connection, so there is nothing to deduplicate.
var Policy = zeeklog.Policy{
	Fingerprints: []string{"ja4t", "ja4ts"},
	Dedup:        false,
}

// ReadResult contains the outcome of a conn.log extraction.
type ReadResult struct {
	Records  []*model.TCPRecord
	Count    int
	Excluded int
	Skipped  int
}

// ReadRecords reads all JA4T/JA4TS records from a conn.log file.
func ReadRecords(path string, onProgress func(count int)) (*ReadResult, error) {
	r, err := zeeklog.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	fallback := zeeklog.NewSchema(Columns)
	result := &ReadResult{}

	for {
		row, lineNum, ok := r.Next()
		if !ok {
			break
		}

		schema := r.Schema()
		if schema == nil {
			schema = fallback
		}

		if want := schema.Width(required); len(row) < want {
			logrus.Warnf("conn.log line %d has %d fields, expected at least %d; skipping",
				lineNum, len(row), want)
			result.Skipped++
			continue
		}

		if !Policy.Keep(r, schema, row) {
			result.Excluded++
			continue
		}

		rec := &model.TCPRecord{
			UID:     r.Normalize(schema.Value(row, "uid")),
			SrcIP:   r.Normalize(schema.Value(row, "id.orig_h")),
			SrcPort: r.Normalize(schema.Value(row, "id.orig_p")),
			DstIP:   r.Normalize(schema.Value(row, "id.resp_h")),
			DstPort: r.Normalize(schema.Value(row, "id.resp_p")),
			JA4T:    r.Normalize(schema.Value(row, "ja4t")),
			JA4TS:   r.Normalize(schema.Value(row, "ja4ts")),
		}

		result.Records = append(result.Records, rec)
		result.Count++

		if onProgress != nil && result.Count%10000 == 0 {
			onProgress(result.Count)
		}
	}

	if err := r.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
