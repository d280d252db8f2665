package sheetarrow

import (
	"bytes"
	"fmt"
	"unsafe"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/cdata"
	"github.com/apache/arrow/go/v18/arrow/ipc"
)

// ExportRecordBatch moves a record batch across the runtime boundary through
// the Arrow C Data Interface. arrayPtr and schemaPtr must point at C-ABI
// ArrowArray and ArrowSchema structs allocated by the receiver; the batch's
// buffers are handed over without copying element data, and the receiver
// reclaims them through the release callbacks.
//
// The export consumes rec: its reference is released here and the caller
// must not touch the record afterwards.
func ExportRecordBatch(rec arrow.Record, arrayPtr, schemaPtr uintptr) {
	out := (*cdata.CArrowArray)(unsafe.Pointer(arrayPtr))
	outSchema := (*cdata.CArrowSchema)(unsafe.Pointer(schemaPtr))
	cdata.ExportArrowRecordBatch(rec, out, outSchema)
	rec.Release()
}

// ExportColumn moves a single column array across the boundary, including
// its type descriptor and null bitmap. Like ExportRecordBatch it consumes
// the origin-side array.
func ExportColumn(arr arrow.Array, arrayPtr, schemaPtr uintptr) {
	out := (*cdata.CArrowArray)(unsafe.Pointer(arrayPtr))
	outSchema := (*cdata.CArrowSchema)(unsafe.Pointer(schemaPtr))
	cdata.ExportArrowArray(arr, out, outSchema)
	arr.Release()
}

// ExportTo materializes the sheet's record batch and hands it across the
// boundary zero-copy. See ExportRecordBatch for the pointer contract.
func (s *Sheet) ExportTo(arrayPtr, schemaPtr uintptr) error {
	rec, err := s.RecordBatch()
	if err != nil {
		return err
	}
	ExportRecordBatch(rec, arrayPtr, schemaPtr)
	return nil
}

// marshalIPC serializes a record batch into a self-contained Arrow IPC
// stream (schema message followed by the batch). This path copies and is
// meant for callers with no shared-memory boundary.
func marshalIPC(rec arrow.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithSchema(rec.Schema()))
	if err := w.Write(rec); err != nil {
		w.Close()
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}
	return buf.Bytes(), nil
}

// MarshalIPC materializes the sheet's record batch and serializes it as an
// Arrow IPC stream.
func (s *Sheet) MarshalIPC() ([]byte, error) {
	rec, err := s.RecordBatch()
	if err != nil {
		return nil, fmt.Errorf("could not create record batch from sheet %q: %w", s.name, err)
	}
	defer rec.Release()
	data, err := marshalIPC(rec)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", s.name, err)
	}
	return data, nil
}

// WriteIPCFile writes the sheet's record batch as an Arrow IPC stream to
// path, compressing the output when path carries a recognized compression
// extension (.gz, .xz, .zst, .lz4).
func (s *Sheet) WriteIPCFile(path string) error {
	data, err := s.MarshalIPC()
	if err != nil {
		return err
	}
	factory := NewCompressionFactory()
	w, cleanup, err := factory.CreateWriterForFile(path, factory.DetectCompressionType(path))
	if err != nil {
		return fmt.Errorf("sheet %q: %w", s.name, err)
	}
	if _, err := w.Write(data); err != nil {
		_ = cleanup()
		return fmt.Errorf("sheet %q: %w", s.name, err)
	}
	return cleanup()
}
