// Package x509log extracts certificate records with JA4X fingerprints from
// Zeek x509.log files.
//
// Unlike the other families, x509.log has no compiled-in column table: the
// schema comes from the file's own #fields header, which must appear within
// the first 8 lines. Every parsed line becomes a record; the JA4X
// fingerprint is a certificate attribute, not a retention gate.
package x509log

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/zeekwatch/ja4extract/internal/model"
	"github.com/zeekwatch/ja4extract/internal/zeeklog"
)

// headerWindow is how deep into the file the #fields directive may appear.
// The standard Zeek preamble declares it by line 7.
const headerWindow = 8

// required lists the source columns a data line must reach, among those the
// header actually declares. Names the header omits simply leave the record
// attribute empty.
var required = []string{
	"uid", "fuid", "id.orig_h", "id.resp_h",
	"ja4x", "version", "serial", "subject", "issuer",
	"validity.not_before", "validity.not_after", "key_type", "sig_alg",
}

// Policy retains every certificate record and performs no deduplication:
// x509.log is one line per observed certificate.
var Policy = zeeklog.Policy{}

// ReadResult contains the outcome of an x509.log extraction.
type ReadResult struct {
	Records []*model.X509Record
	Count   int
	Skipped int
}

// ReadRecords reads all certificate records from an x509.log file.
// It fails outright when the file is shorter than the preamble window or
// carries no #fields header, since nothing can be mapped without one.
func ReadRecords(path string, onProgress func(count int)) (*ReadResult, error) {
	r, err := zeeklog.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	result := &ReadResult{}

	for {
		row, lineNum, ok := r.Next()
		if !ok {
			break
		}

		schema := r.Schema()
		if schema == nil {
			return nil, fmt.Errorf("x509.log has data before any #fields header (line %d)", lineNum)
		}

		if want := schema.Width(required); len(row) < want {
			logrus.Warnf("x509.log line %d has %d fields, expected at least %d; skipping",
				lineNum, len(row), want)
			result.Skipped++
			continue
		}

		rec := &model.X509Record{
			UID:     r.Normalize(schema.Value(row, "uid")),
			LogType: "x509_log",
			FUID:    r.Normalize(schema.Value(row, "fuid")),
			ID: model.ConnID{
				OrigH: r.Normalize(schema.Value(row, "id.orig_h")),
				RespH: r.Normalize(schema.Value(row, "id.resp_h")),
			},
			CertInfo: model.CertInfo{
				JA4X:    r.Normalize(schema.Value(row, "ja4x")),
				Version: r.Normalize(schema.Value(row, "version")),
				Serial:  r.Normalize(schema.Value(row, "serial")),
				Subject: r.Normalize(schema.Value(row, "subject")),
				Issuer:  r.Normalize(schema.Value(row, "issuer")),
				Validity: model.Validity{
					NotBefore: r.Normalize(schema.Value(row, "validity.not_before")),
					NotAfter:  r.Normalize(schema.Value(row, "validity.not_after")),
				},
				KeyType:      r.Normalize(schema.Value(row, "key_type")),
				SignatureAlg: r.Normalize(schema.Value(row, "sig_alg")),
			},
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

	if r.LinesRead() < headerWindow {
		return nil, fmt.Errorf("x509.log too short: %d lines, expected at least %d", r.LinesRead(), headerWindow)
	}
	if r.Schema() == nil {
		return nil, fmt.Errorf("x509.log has no #fields header")
	}

	return result, nil
}
