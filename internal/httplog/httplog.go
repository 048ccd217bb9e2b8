// Package httplog extracts JA4H-fingerprinted transactions from Zeek
// http.log files.
package httplog

import (
	"github.com/sirupsen/logrus"

	"github.com/zeekwatch/ja4extract/internal/model"
	"github.com/zeekwatch/ja4extract/internal/zeeklog"
)

// Columns is the column order of a stock Zeek http.log with the JA4
// package loaded. It is the fallback schema for files whose preamble has
// been stripped; a #fields directive in the file takes precedence.
var Columns = []string{
	"ts", "uid", "id.orig_h", "id.orig_p", "id.resp_h", "id.resp_p",
	"trans_depth", "method", "host", "uri", "referrer", "version",
	"user_agent", "origin", "request_body_len", "response_body_len",
	"status_code", "status_msg", "info_code", "info_msg", "tags",
	"username", "password", "proxied", "orig_fuids", "orig_filenames",
	"orig_mime_types", "resp_fuids", "resp_filenames", "resp_mime_types",
	"ja4h",
}

// required lists the source columns a data line must reach to produce a
// usable record. With the stock schema the widest is ja4h at index 30.
var required = []string{
	"uid", "id.orig_h", "id.orig_p", "id.resp_h", "id.resp_p",
	"method", "host", "uri", "user_agent", "status_code", "ja4h",
}

// Policy keeps only transactions carrying a JA4H fingerprint and removes
// exact duplicates.
var Policy = zeeklog.Policy{
	Fingerprints: []string{"ja4h"},
	Dedup:        true,
}

// ReadResult contains the outcome of an http.log extraction.
type ReadResult struct {
	Records    []*model.HTTPRecord
	Count      int // records kept after filter and dedup
	Excluded   int // records without a JA4H fingerprint
	Skipped    int // malformed lines (too few columns)
	Duplicates int // exact duplicates removed
}

// ReadRecords reads all JA4H records from an http.log file.
// Malformed lines are warned about and skipped; the rest of the file still
// parses. The onProgress callback fires every 10,000 kept records if
// non-nil.
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
			logrus.Warnf("http.log line %d has %d fields, expected at least %d; skipping",
				lineNum, len(row), want)
			result.Skipped++
			continue
		}

		if !Policy.Keep(r, schema, row) {
			result.Excluded++
			continue
		}

		rec := &model.HTTPRecord{
			UID:        r.Normalize(schema.Value(row, "uid")),
			SrcIP:      r.Normalize(schema.Value(row, "id.orig_h")),
			SrcPort:    r.Normalize(schema.Value(row, "id.orig_p")),
			DstIP:      r.Normalize(schema.Value(row, "id.resp_h")),
			DstPort:    r.Normalize(schema.Value(row, "id.resp_p")),
			Method:     r.Normalize(schema.Value(row, "method")),
			Host:       r.Normalize(schema.Value(row, "host")),
			URI:        r.Normalize(schema.Value(row, "uri")),
			UserAgent:  r.Normalize(schema.Value(row, "user_agent")),
			StatusCode: r.Normalize(schema.Value(row, "status_code")),
			JA4H:       r.Normalize(schema.Value(row, "ja4h")),
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
