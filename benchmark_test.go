package translator

import (
	"os"
	"path/filepath"
	"testing"
)

func BenchmarkDecode(b *testing.B) {
	data, err := os.ReadFile(filepath.Join("testdata", "meeting_point.yaml"))
	if err != nil {
		b.Fatalf("read: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(data, nil); err != nil {
			b.Fatalf("parse: %v", err)
		}
	}
}

func BenchmarkFormat(b *testing.B) {
	g := meetingPoint(&Allocator{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Format(g, nil); err != nil {
			b.Fatalf("format: %v", err)
		}
	}
}
