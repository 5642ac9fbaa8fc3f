// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthfmt

import (
	"fmt"
	"io"
	"os"
)

// A Dataset is an in-memory snapshot of a dataset file, in file order.
//
// Datasets are passed explicitly between the store and the
// aggregation stages; there is no process-wide current dataset.
type Dataset struct {
	Records []*Record
}

// Len returns the number of records in d.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Read reads a complete dataset from r. Any malformed row fails the
// whole read.
func Read(r io.Reader, fileName string) (*Dataset, error) {
	rd := NewReader(r, fileName)
	ds := new(Dataset)
	for rd.Scan() {
		ds.Records = append(ds.Records, rd.Record())
	}
	if err := rd.Err(); err != nil {
		return nil, err
	}
	return ds, nil
}

// ReadFile reads the dataset file at path.
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, path)
}

// WriteAll writes the header row and then every record to w.
func WriteAll(w io.Writer, recs []*Record) error {
	wr := NewWriter(w)
	for _, rec := range recs {
		if err := wr.Write(rec); err != nil {
			return err
		}
	}
	return wr.Flush()
}

// WriteFile writes recs to path, replacing any existing file.
func WriteFile(path string, recs []*Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := WriteAll(f, recs); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
