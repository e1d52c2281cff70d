// Package httpcsv writes exports as CSV HTTP responses.
package httpcsv

import (
	"bytes"
	"mime"
	"net/http"
	"strconv"

	"github.com/domonda/go-comma"
)

// ContentType of CSV responses.
const ContentType = "text/csv; charset=utf-8"

// Write exports subject with view using exporter
// and writes the CSV as response to w.
// If filename is not empty, then the response is
// served as attachment with that filename.
// On export errors nothing is written to w
// and the error is returned to the caller.
func Write(w http.ResponseWriter, exporter *comma.Exporter, subject any, view, filename string) error {
	data, err := export(exporter, subject, view)
	if err != nil {
		return err
	}
	return writeResponse(w, data, filename)
}

// Handler returns an http.Handler that exports the subject
// returned by load with view.
// Load and export errors are answered with status 500.
func Handler(exporter *comma.Exporter, view, filename string, load func(*http.Request) (any, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, err := load(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data, err := export(exporter, subject, view)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		// The status is already sent, a failing
		// write means the client went away
		_ = writeResponse(w, data, filename)
	})
}

func export(exporter *comma.Exporter, subject any, view string) ([]byte, error) {
	var buf bytes.Buffer
	err := exporter.ExportTo(&buf, subject, view)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeResponse(w http.ResponseWriter, data []byte, filename string) error {
	header := w.Header()
	header.Set("Content-Type", ContentType)
	header.Set("Content-Length", strconv.Itoa(len(data)))
	if filename != "" {
		header.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	}
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(data)
	return err
}
