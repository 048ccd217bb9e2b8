// Package ssllog extracts JA4/JA4S-fingerprinted handshakes from Zeek
// ssl.log files.
package ssllog

import (
	"github.com/sirupsen/logrus"

	"github.com/zeekwatch/ja4extract/internal/model"
	"github.com/zeekwatch/ja4extract/internal/zeeklog"
)

// Columns is the column order of a stock Zeek ssl.log with the JA4 package
// loaded. A #fields directive in the file takes precedence.
var Columns = []string{
	"ts", "uid", "id.orig_h", "id.orig_p", "id.resp_h", "id.resp_p",
	"version", "cipher", "curve", "server_name", "resumed", "last_alert",
	"next_protocol", "established", "ssl_history", "cert_chain_fps",
	"client_cert_chain_fps", "sni_matches_cert", "validation_status",
	"ja4", "ja4s",
}

// required lists the source columns a data line must reach. With the stock
// schema the widest is ja4s at index 20.
var required = []string{
	"uid", "id.orig_h", "id.orig_p", "id.resp_h", "id.resp_p",
	"version", "cipher", "server_name", "ja4", "ja4s",
}

// Policy keeps handshakes carrying either fingerprint and removes exact
// duplicates.
var Policy = zeeklog.Policy{
	Fingerprints: []string{"ja4", "ja4s"},
	Dedup:        true,
}

// ReadResult contains the outcome of an ssl.log extraction.
type ReadResult struct {
	Records    []*model.TLSRecord
	Count      int
	Excluded   int
	Skipped    int
	Duplicates int
}

// ReadRecords reads all JA4/JA4S records from an ssl.log file.
func ReadRecords(path string, onProgress func(count int)) (*ReadResult, error) {
	r, err := zeeklog.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	fallback := zeeklog.NewSchema(Columns)
	result := &ReadResult{}
	dedup := zeeklog.NewDeduper()

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
			logrus.Warnf("ssl.log line %d has %d fields, expected at least %d; skipping",
				lineNum, len(row), want)
			result.Skipped++
			continue
		}

		if !Policy.Keep(r, schema, row) {
			result.Excluded++
			continue
		}

		rec := &model.TLSRecord{
			UID:        r.Normalize(schema.Value(row, "uid")),
			SrcIP:      r.Normalize(schema.Value(row, "id.orig_h")),
			SrcPort:    r.Normalize(schema.Value(row, "id.orig_p")),
			DstIP:      r.Normalize(schema.Value(row, "id.resp_h")),
			DstPort:    r.Normalize(schema.Value(row, "id.resp_p")),
			Version:    r.Normalize(schema.Value(row, "version")),
			Cipher:     r.Normalize(schema.Value(row, "cipher")),
			ServerName: r.Normalize(schema.Value(row, "server_name")),
			JA4:        r.Normalize(schema.Value(row, "ja4")),
			JA4S:       r.Normalize(schema.Value(row, "ja4s")),
		}

		if Policy.Dedup && dedup.Seen(rec.Row()) {
			continue
		}

		result.Records = append(result.Records, rec)
		result.Count++

		if onProgress != nil && result.Count%10000 == 0 {
			onProgress(result.Count)
		}
	}

	result.Duplicates = dedup.Removed()

	if err := r.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
