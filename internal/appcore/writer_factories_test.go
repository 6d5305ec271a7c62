package appcore

import "testing"

func TestRecordWriterFactory_Streams(t *testing.T) {
	if !NewRecordWriterFactory("text", false, true).Streams() {
		t.Fatal("unsorted text must stream")
	}
	if !NewRecordWriterFactory("jsonl", false, false).Streams() {
		t.Fatal("unsorted jsonl must stream")
	}
	if NewRecordWriterFactory("text", true, true).Streams() {
		t.Fatal("sorted output buffers")
	}
	if NewRecordWriterFactory("json", false, false).Streams() {
		t.Fatal("json array buffers")
	}
}
